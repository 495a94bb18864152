// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"

	"github.com/yaklabco/brackettree/pkg/config"
	"github.com/yaklabco/brackettree/pkg/fsutil"
)

// DefaultConfigFile is the file name written by WriteConfig callers such as init.
const DefaultConfigFile = ".brackettree.yml"

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means the process
	// working directory.
	WorkingDir string

	// ExplicitPath comes from --config and outranks every discovered file.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and takes precedence over everything else.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files applied, lowest precedence first.
	LoadedFrom []string

	// Warnings are messages for valid but questionable settings.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (BRACKETTREE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.brackettree.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/brackettree/config.yaml)
//  6. System config (/etc/brackettree/config.yaml)
//  7. Defaults
//
// Each file is validated on its own so errors name the file they came from.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	paths, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range fileLayers(paths, opts) {
		layerCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if err := ValidateWithFile(layerCfg, layer.path).Err(); err != nil {
			return nil, err
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

type fileLayer struct {
	name string
	path string
}

// fileLayers lists the config files Load applies, lowest precedence first.
func fileLayers(paths *ConfigPaths, opts LoadOptions) []fileLayer {
	candidates := []struct {
		fileLayer
		skip bool
	}{
		{fileLayer{"system", paths.System}, opts.IgnoreSystemConfig},
		{fileLayer{"user", paths.User}, opts.IgnoreUserConfig},
		{fileLayer{"project", paths.Project}, opts.IgnoreProjectConfig},
		{fileLayer{"explicit", paths.Explicit}, false},
	}

	layers := make([]fileLayer, 0, len(candidates))
	for _, c := range candidates {
		if c.path != "" && !c.skip {
			layers = append(layers, c.fileLayer)
		}
	}
	return layers
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes a configuration to a YAML file with a descriptive header.
// It reports whether the file changed. An existing file keeps its permissions.
func WriteConfig(ctx context.Context, cfg *config.Config, path string) (bool, error) {
	content, err := cfg.ToYAMLWithHeader()
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
	if err != nil {
		return false, fmt.Errorf("write file: %w", err)
	}

	return written, nil
}
