package projectconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SettingsFileName is the persisted configuration file read at startup and
	// written per generated application.
	SettingsFileName = ".yo-rc.json"

	// NamespaceKey is the fixed top-level key holding this generator's settings
	// inside the persisted configuration file.
	NamespaceKey = "generator-appforge"

	// ConfigDirName is the per-project directory holding entity config files.
	ConfigDirName = ".appforge"
)

// Settings is the subset of persisted application settings the orchestrator
// consults when re-running an import inside an existing project.
type Settings struct {
	BaseName        string `json:"baseName"`
	ApplicationType string `json:"applicationType"`
	DatabaseType    string `json:"databaseType"`
	ClientFramework string `json:"clientFramework"`
	PackageManager  string `json:"packageManager"`
}

// LoadSettings reads the persisted configuration file in dir, if present, and
// returns the generator's namespaced settings. It returns (nil, nil) when the
// file or the namespace key is absent: fresh-project mode.
func LoadSettings(dir string) (*Settings, error) {
	raw, err := os.ReadFile(filepath.Join(dir, SettingsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFileName, err)
	}

	var file map[string]json.RawMessage
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFileName, err)
	}

	namespaced, ok := file[NamespaceKey]
	if !ok {
		return nil, nil
	}

	var settings Settings
	if err := json.Unmarshal(namespaced, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s settings in %s: %w", NamespaceKey, SettingsFileName, err)
	}
	return &settings, nil
}
