package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/configloader"
	"github.com/yaklabco/brackettree/internal/logging"
	"github.com/yaklabco/brackettree/pkg/config"
	"github.com/yaklabco/brackettree/pkg/reporter"
)

// errConfigLoad wraps every configuration loading failure.
var errConfigLoad = errors.New("failed to load configuration")

// treeFlags are shared by commands that assemble trees.
type treeFlags struct {
	format     string
	openPolicy string
	coalesce   bool
	compact    bool
}

func addTreeFlags(cmd *cobra.Command, flags *treeFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().StringVar(&flags.openPolicy, "open-policy", "",
		"unmatched opening brackets become: bracket, text")
	cmd.Flags().BoolVar(&flags.coalesce, "coalesce", true, "merge adjacent text tokens")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
}

// cliConfig converts explicitly set flags into the highest-precedence config layer.
func (f *treeFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		OpenPolicy: config.OpenPolicy(f.openPolicy),
		Format:     config.OutputFormat(f.format),
	}
	if cmd.Flags().Changed("coalesce") {
		coalesce := f.coalesce
		cfg.CoalesceText = &coalesce
	}
	return cfg
}

// loadConfig resolves the final configuration for a command.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfigFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldOpenPolicy, cfg.OpenPolicy,
		logging.FieldCoalesceText, cfg.Coalesce(),
		logging.FieldMaxScopes, cfg.MaxScopes,
		logging.FieldPairsOnly, cfg.PairsOnly,
		logging.FieldFormat, cfg.Format,
	)

	return cfg, nil
}

// newReporter builds the reporter for the resolved configuration.
func newReporter(cmd *cobra.Command, cfg *config.Config, opts reporter.Options) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, errors.Join(ErrInvalidUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	opts.Writer = cmd.OutOrStdout()
	opts.Format = format
	opts.Color = colorMode

	rep, err := reporter.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// commandLogger returns the logger carried by the command's context.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(commandContext(cmd))
}
