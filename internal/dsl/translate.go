package dsl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/appforge/appforge/internal/ctxlog"
	"github.com/appforge/appforge/internal/model"
)

// Defaults applied when neither the model nor the import options set a value.
const (
	defaultApplicationType = "monolith"
	defaultDatabaseType    = "postgresql"
	defaultClientFramework = "react"
	defaultPackageManager  = "npm"
)

// translate merges decoded file roots into a validated ImportState.
func (i *Importer) translate(ctx context.Context, roots []*fileRoot) (*model.ImportState, error) {
	logger := ctxlog.FromContext(ctx)

	var appBlocks []*applicationBlock
	var entityBlocks []*entityBlock
	var deploymentBlocks []*deploymentBlock
	for _, root := range roots {
		appBlocks = append(appBlocks, root.Applications...)
		entityBlocks = append(entityBlocks, root.Entities...)
		deploymentBlocks = append(deploymentBlocks, root.Deployments...)
	}

	entities, entityIndex, err := i.translateEntities(entityBlocks)
	if err != nil {
		return nil, err
	}
	apps, appIndex, err := i.translateApplications(appBlocks)
	if err != nil {
		return nil, err
	}
	if err := resolveOwnership(apps, appIndex, entities, entityIndex); err != nil {
		return nil, err
	}
	if i.opts.ApplicationName != "" && !i.opts.SkipFiltering {
		entities = filterForeignEntities(ctx, entities, i.opts.ApplicationName, appIndex)
	}
	deployments, err := translateDeployments(deploymentBlocks)
	if err != nil {
		return nil, err
	}

	state := &model.ImportState{
		Entities:                 entities,
		Applications:             apps,
		Deployments:              deployments,
		ApplicationsWithEntities: make(map[string]*model.ApplicationWithEntities, len(apps)),
	}
	for _, app := range apps {
		group := &model.ApplicationWithEntities{Config: app}
		for _, name := range app.Entities {
			group.Entities = append(group.Entities, entityIndex[name])
		}
		state.ApplicationNames = append(state.ApplicationNames, app.BaseName)
		state.ApplicationsWithEntities[app.BaseName] = group
	}

	logger.Debug("Model translation complete.",
		"applications", len(state.Applications),
		"entities", len(state.Entities),
		"deployments", len(state.Deployments))
	return state, nil
}

func (i *Importer) translateEntities(blocks []*entityBlock) ([]*model.Entity, map[string]*model.Entity, error) {
	var entities []*model.Entity
	index := make(map[string]*model.Entity, len(blocks))

	for _, block := range blocks {
		if _, exists := index[block.Name]; exists {
			return nil, nil, fmt.Errorf("duplicate entity %q in model", block.Name)
		}

		annotations, err := remainAttributesAsStrings(block.Remain, fmt.Sprintf("entity %q", block.Name))
		if err != nil {
			return nil, nil, err
		}

		entity := &model.Entity{
			Name:         block.Name,
			Applications: append([]string(nil), block.Applications...),
			Annotations:  annotations,
		}
		for _, f := range block.Fields {
			entity.Fields = append(entity.Fields, model.Field{
				Name:     f.Name,
				Type:     f.Type,
				Required: f.Required,
			})
		}

		entities = append(entities, entity)
		index[entity.Name] = entity
	}
	return entities, index, nil
}

func (i *Importer) translateApplications(blocks []*applicationBlock) ([]*model.ApplicationConfig, map[string]*model.ApplicationConfig, error) {
	var apps []*model.ApplicationConfig
	index := make(map[string]*model.ApplicationConfig, len(blocks))

	for _, block := range blocks {
		if _, exists := index[block.BaseName]; exists {
			return nil, nil, fmt.Errorf("duplicate application %q in model", block.BaseName)
		}

		extra, err := remainAttributesAsValues(block.Remain, fmt.Sprintf("application %q", block.BaseName))
		if err != nil {
			return nil, nil, err
		}

		app := &model.ApplicationConfig{
			BaseName:          block.BaseName,
			ApplicationType:   firstNonEmpty(block.ApplicationType, i.opts.ApplicationType, defaultApplicationType),
			DatabaseType:      firstNonEmpty(block.DatabaseType, i.opts.DatabaseType, defaultDatabaseType),
			ClientFramework:   firstNonEmpty(block.ClientFramework, defaultClientFramework),
			PackageManager:    firstNonEmpty(block.PackageManager, defaultPackageManager),
			ServerPort:        block.ServerPort,
			GeneratorVersion:  i.opts.GeneratorVersion,
			CreationTimestamp: i.opts.CreationTimestamp,
			Entities:          append([]string(nil), block.Entities...),
			Extra:             extra,
		}
		apps = append(apps, app)
		index[app.BaseName] = app
	}
	return apps, index, nil
}

// resolveOwnership merges the two ownership declarations (application.entities
// and entity.applications) into a single consistent view on both sides. An
// application may only claim entities present in the model; an entity may name
// an application outside the model, which means a project generated by an
// earlier run, and is kept as-is.
func resolveOwnership(
	apps []*model.ApplicationConfig,
	appIndex map[string]*model.ApplicationConfig,
	entities []*model.Entity,
	entityIndex map[string]*model.Entity,
) error {
	owners := make(map[string]map[string]bool) // entity name -> set of app names

	for _, app := range apps {
		for _, entityName := range app.Entities {
			if _, ok := entityIndex[entityName]; !ok {
				return fmt.Errorf("application %q references unknown entity %q", app.BaseName, entityName)
			}
			if owners[entityName] == nil {
				owners[entityName] = make(map[string]bool)
			}
			owners[entityName][app.BaseName] = true
		}
	}
	for _, entity := range entities {
		for _, appName := range entity.Applications {
			if owners[entity.Name] == nil {
				owners[entity.Name] = make(map[string]bool)
			}
			owners[entity.Name][appName] = true
		}
	}

	// Rewrite both sides deterministically: modeled applications in
	// declaration order, then out-of-model owners in the entity's own order.
	for _, entity := range entities {
		declared := entity.Applications
		entity.Applications = nil
		for _, app := range apps {
			if owners[entity.Name][app.BaseName] {
				entity.Applications = append(entity.Applications, app.BaseName)
			}
		}
		appended := make(map[string]bool, len(declared))
		for _, appName := range declared {
			if _, ok := appIndex[appName]; ok || appended[appName] {
				continue
			}
			appended[appName] = true
			entity.Applications = append(entity.Applications, appName)
		}
	}
	for _, app := range apps {
		app.Entities = app.Entities[:0]
		for _, entity := range entities {
			if owners[entity.Name][app.BaseName] {
				app.Entities = append(app.Entities, entity.Name)
			}
		}
	}
	return nil
}

// filterForeignEntities drops entities owned exclusively by applications
// outside this run: neither the application the import runs inside nor any
// application in the model. Force imports keep them (SkipFiltering).
func filterForeignEntities(ctx context.Context, entities []*model.Entity, currentApp string, appIndex map[string]*model.ApplicationConfig) []*model.Entity {
	logger := ctxlog.FromContext(ctx)

	kept := entities[:0]
	for _, entity := range entities {
		if ownedElsewhere(entity, currentApp, appIndex) {
			logger.Debug("Skipping entity owned by other applications.",
				"entity", entity.Name, "owners", entity.Applications)
			continue
		}
		kept = append(kept, entity)
	}
	return kept
}

func ownedElsewhere(entity *model.Entity, currentApp string, appIndex map[string]*model.ApplicationConfig) bool {
	if len(entity.Applications) == 0 {
		return false
	}
	for _, owner := range entity.Applications {
		if owner == currentApp {
			return false
		}
		if _, ok := appIndex[owner]; ok {
			return false
		}
	}
	return true
}

func translateDeployments(blocks []*deploymentBlock) ([]*model.Deployment, error) {
	var deployments []*model.Deployment
	for n, block := range blocks {
		if block.DeploymentType == "" {
			return nil, fmt.Errorf("deployment #%d has an empty deployment_type", n+1)
		}
		extra, err := remainAttributesAsValues(block.Remain, fmt.Sprintf("deployment %q", block.DeploymentType))
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, &model.Deployment{
			DeploymentType:       block.DeploymentType,
			AppFolders:           append([]string(nil), block.AppFolders...),
			KubernetesNamespace:  block.KubernetesNamespace,
			ServiceDiscoveryType: block.ServiceDiscoveryType,
			MessageBroker:        block.MessageBroker,
			Monitoring:           block.Monitoring,
			DockerRepositoryName: block.DockerRepositoryName,
			Extra:                extra,
		})
	}
	return deployments, nil
}

// remainAttributesAsValues evaluates leftover attributes of a block into
// native Go values.
func remainAttributesAsValues(body hcl.Body, blockDesc string) (map[string]any, error) {
	// Native syntax bodies report nested blocks as a JustAttributes error even
	// when the typed schema already consumed them (an entity's field blocks);
	// the attribute set returned alongside is still the leftover attributes,
	// so for syntax bodies the block diagnostic is dropped.
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		if _, syntax := body.(*hclsyntax.Body); !syntax {
			return nil, fmt.Errorf("invalid content in %s: %w", blockDesc, diags)
		}
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for %s in %s: %w", name, blockDesc, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("unsupported value for %s in %s: %w", name, blockDesc, err)
		}
		values[name] = goVal
	}
	return values, nil
}

// remainAttributesAsStrings is remainAttributesAsValues restricted to scalar
// values, rendered as strings.
func remainAttributesAsStrings(body hcl.Body, blockDesc string) (map[string]string, error) {
	values, err := remainAttributesAsValues(body, blockDesc)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for name, v := range values {
		switch typed := v.(type) {
		case string:
			out[name] = typed
		case bool, int64, float64:
			out[name] = fmt.Sprintf("%v", typed)
		default:
			return nil, fmt.Errorf("annotation %s in %s must be a scalar", name, blockDesc)
		}
	}
	return out, nil
}

// ctyToGo converts a statically-known cty value into its native Go form.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, fmt.Errorf("value must be known and non-null")
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		if i, acc := val.AsBigFloat().Int64(); acc == 0 { // exact integer
			return i, nil
		}
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			goElem, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, goElem)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			goElem, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = goElem
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
