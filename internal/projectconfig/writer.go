package projectconfig

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"unicode"

	"github.com/appforge/appforge/internal/fsutil"
	"github.com/appforge/appforge/internal/model"
)

// WriteEntity serializes one entity to <base>/.appforge/<EntityName>.json,
// pretty-printed with a trailing newline. The file name is capitalized; the
// config directory is created when missing.
func WriteEntity(base string, entity *model.Entity) (string, error) {
	apps := entity.Applications
	if apps == nil {
		apps = []string{}
	}
	doc := map[string]any{
		"name":         entity.Name,
		"applications": apps,
	}
	fields := make([]map[string]any, 0, len(entity.Fields))
	for _, f := range entity.Fields {
		field := map[string]any{
			"fieldName": f.Name,
			"fieldType": f.Type,
		}
		if f.Required {
			field["required"] = true
		}
		fields = append(fields, field)
	}
	doc["fields"] = fields
	for k, v := range entity.Annotations {
		doc[k] = v
	}

	path := filepath.Join(base, ConfigDirName, capitalize(entity.Name)+".json")
	if err := writePrettyJSON(path, doc); err != nil {
		return "", fmt.Errorf("failed to write entity %s: %w", entity.Name, err)
	}
	return path, nil
}

// WriteApplication serializes one application's configuration to
// <base>/.yo-rc.json under the namespace key, then writes every one of its
// entities via WriteEntity. The base directory is created when missing.
func WriteApplication(base string, app *model.ApplicationWithEntities) error {
	cfg := map[string]any{
		"baseName":        app.Config.BaseName,
		"applicationType": app.Config.ApplicationType,
		"databaseType":    app.Config.DatabaseType,
		"clientFramework": app.Config.ClientFramework,
		"packageManager":  app.Config.PackageManager,
		"entities":        app.Config.Entities,
	}
	if app.Config.ServerPort != 0 {
		cfg["serverPort"] = app.Config.ServerPort
	}
	if app.Config.GeneratorVersion != "" {
		cfg["generatorVersion"] = app.Config.GeneratorVersion
	}
	if app.Config.CreationTimestamp != 0 {
		cfg["creationTimestamp"] = app.Config.CreationTimestamp
	}
	for k, v := range app.Config.Extra {
		cfg[k] = v
	}

	path := filepath.Join(base, SettingsFileName)
	if err := writePrettyJSON(path, map[string]any{NamespaceKey: cfg}); err != nil {
		return fmt.Errorf("failed to write application %s: %w", app.Config.BaseName, err)
	}

	for _, entity := range app.Entities {
		if _, err := WriteEntity(base, entity); err != nil {
			return err
		}
	}
	return nil
}

// WriteDeployment serializes one deployment's configuration to
// <base>/.yo-rc.json under the namespace key. The base directory is created
// when missing.
func WriteDeployment(base string, deployment *model.Deployment) error {
	cfg := map[string]any{
		"deploymentType": deployment.DeploymentType,
	}
	if len(deployment.AppFolders) > 0 {
		cfg["appsFolders"] = deployment.AppFolders
	}
	if deployment.KubernetesNamespace != "" {
		cfg["kubernetesNamespace"] = deployment.KubernetesNamespace
	}
	if deployment.ServiceDiscoveryType != "" {
		cfg["serviceDiscoveryType"] = deployment.ServiceDiscoveryType
	}
	if deployment.MessageBroker != "" {
		cfg["messageBroker"] = deployment.MessageBroker
	}
	if deployment.Monitoring != "" {
		cfg["monitoring"] = deployment.Monitoring
	}
	if deployment.DockerRepositoryName != "" {
		cfg["dockerRepositoryName"] = deployment.DockerRepositoryName
	}
	for k, v := range deployment.Extra {
		cfg[k] = v
	}

	path := filepath.Join(base, SettingsFileName)
	if err := writePrettyJSON(path, map[string]any{NamespaceKey: cfg}); err != nil {
		return fmt.Errorf("failed to write %s deployment: %w", deployment.DeploymentType, err)
	}
	return nil
}

// writePrettyJSON marshals doc with two-space indentation and a trailing
// newline. encoding/json sorts map keys, so output bytes are stable.
func writePrettyJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFile(path, append(data, '\n'))
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
