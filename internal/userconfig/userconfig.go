// Package userconfig loads the optional per-user configuration file that
// supplies defaults for CLI options: ./appforge.ini first, then
// $HOME/.appforge/appforge.ini.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// FileName is the user configuration file name.
const FileName = "appforge.ini"

// UserConfig carries option defaults read from the user's rc file.
type UserConfig struct {
	LogLevel        string
	LogFormat       string
	GeneratorBin    string
	PackageManager  string
	DisableInsights bool
}

// defaults returns the built-in configuration used when no rc file exists.
func defaults() *UserConfig {
	return &UserConfig{
		LogLevel:     "info",
		LogFormat:    "text",
		GeneratorBin: "appforge-gen",
	}
}

// Load reads the first rc file found, falling back to built-in defaults when
// none exists. A present-but-broken rc file is an error.
func Load() (*UserConfig, error) {
	path := findConfigFile()
	if path == "" {
		return defaults(), nil
	}
	return loadFile(path)
}

func loadFile(path string) (*UserConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg := defaults()
	logSection := file.Section("log")
	if v := logSection.Key("level").String(); v != "" {
		cfg.LogLevel = v
	}
	if v := logSection.Key("format").String(); v != "" {
		cfg.LogFormat = v
	}

	generatorSection := file.Section("generator")
	if v := generatorSection.Key("bin").String(); v != "" {
		cfg.GeneratorBin = v
	}
	if v := generatorSection.Key("package_manager").String(); v != "" {
		cfg.PackageManager = v
	}

	cfg.DisableInsights = file.Section("insights").Key("disabled").MustBool(false)
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".appforge", FileName))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
