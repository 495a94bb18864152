package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/configloader"
	"github.com/yaklabco/brackettree/internal/logging"
	"github.com/yaklabco/brackettree/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:     "init",
		GroupID: groupSetup,
		Short:   "Initialize a new brackettree configuration file",
		Long: `Create a new .brackettree.yml configuration file in the current directory
with the default settings and a short description of each option.

Examples:
  brackettree init                       Create .brackettree.yml
  brackettree init --output custom.yml   Write to a custom file path
  brackettree init --force               Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	written, err := configloader.WriteConfig(commandContext(cmd), config.NewConfig(), absPath)
	if err != nil {
		return err
	}
	if !written {
		logger.Info("configuration file already up to date", logging.FieldPath, flags.output)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("environment variables override the file", "prefix", "BRACKETTREE_")

	return nil
}
