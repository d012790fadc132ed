package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkDir is the directory the import operates in. Empty means the
	// current directory.
	WorkDir string

	// ModelPaths are .afm files or directories to import. InlineContent,
	// when non-empty, is imported instead of any path.
	ModelPaths    []string
	InlineContent string

	Interactive    bool
	InteractiveSet bool

	Force             bool
	SkipInstall       bool
	SkipClient        bool
	JSONOnly          bool
	IgnoreApplication bool
	IgnoreDeployments bool

	GeneratorBin     string
	GeneratorVersion string
	PackageManager   string

	CreationTimestamp int64

	LogFormat       string
	LogLevel        string
	DisableInsights bool
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ModelPaths) == 0 && cfg.InlineContent == "" {
		return nil, errors.New("at least one model path or inline model content is required")
	}
	if cfg.GeneratorBin == "" {
		cfg.GeneratorBin = "appforge-gen"
	}

	return &cfg, nil
}
