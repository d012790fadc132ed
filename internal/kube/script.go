// Package kube renders the deployment script asset for kubernetes
// deployments: an ordered sequence of manifest-apply commands, written into
// the deployment's output directory.
package kube

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/appforge/appforge/internal/fsutil"
	"github.com/appforge/appforge/internal/model"
)

// ScriptFileName is the rendered apply script inside a deployment directory.
const ScriptFileName = "kubectl-apply.sh"

//go:embed apply.sh.tmpl
var scriptTemplate string

// scriptData is the template input derived from one deployment.
type scriptData struct {
	Namespace     string
	UseNamespace  bool
	Registry      string
	MessageBroker string
	Monitoring    string
	AppFolders    []string
}

// RenderScript produces the apply-script body for a deployment.
func RenderScript(deployment *model.Deployment) ([]byte, error) {
	tmpl, err := template.New(ScriptFileName).Parse(scriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse apply-script template: %w", err)
	}

	data := scriptData{
		Namespace:     deployment.KubernetesNamespace,
		UseNamespace:  deployment.KubernetesNamespace != "" && deployment.KubernetesNamespace != "default",
		Registry:      deployment.ServiceDiscoveryType,
		MessageBroker: deployment.MessageBroker,
		Monitoring:    deployment.Monitoring,
		AppFolders:    deployment.AppFolders,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render apply script: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteScript renders the apply script into dir and marks it executable.
func WriteScript(dir string, deployment *model.Deployment) (string, error) {
	body, err := RenderScript(deployment)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ScriptFileName)
	if err := fsutil.WriteFile(path, body); err != nil {
		return "", err
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	return path, nil
}
