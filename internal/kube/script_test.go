package kube

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/model"
)

func TestRenderScriptFullStack(t *testing.T) {
	t.Parallel()

	body, err := RenderScript(&model.Deployment{
		DeploymentType:       "kubernetes",
		AppFolders:           []string{"store", "blog"},
		KubernetesNamespace:  "shop",
		ServiceDiscoveryType: "eureka",
		MessageBroker:        "kafka",
		Monitoring:           "prometheus",
	})
	require.NoError(t, err)
	script := string(body)

	assert.Contains(t, script, "kubectl apply -f namespace.yml")
	assert.Contains(t, script, "kubectl apply -f registry/")
	assert.Contains(t, script, "kubectl apply -f messagebroker/")
	assert.Contains(t, script, "until [ $(kubectl get crd prometheuses.monitoring.coreos.com")
	assert.Contains(t, script, "kubectl apply -f store/")
	assert.Contains(t, script, "kubectl apply -f blog/")

	// Dependency order: registry before broker before monitoring before apps.
	registryAt := indexOf(t, script, "registry/")
	brokerAt := indexOf(t, script, "messagebroker/")
	appAt := indexOf(t, script, "store/")
	assert.Less(t, registryAt, brokerAt)
	assert.Less(t, brokerAt, appAt)
}

func TestRenderScriptMinimal(t *testing.T) {
	t.Parallel()

	body, err := RenderScript(&model.Deployment{
		DeploymentType:      "kubernetes",
		AppFolders:          []string{"store"},
		KubernetesNamespace: "default",
	})
	require.NoError(t, err)
	script := string(body)

	// The default namespace needs no namespace manifest, and the CRD wait loop
	// only appears with prometheus monitoring.
	assert.NotContains(t, script, "namespace.yml")
	assert.NotContains(t, script, "registry/")
	assert.NotContains(t, script, "until [")
	assert.Contains(t, script, "kubectl apply -f store/")
}

func TestWriteScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteScript(dir, &model.Deployment{
		DeploymentType: "kubernetes",
		AppFolders:     []string{"store"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ScriptFileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected script to contain %q", needle)
	return idx
}
