package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with the default settings to ~/.config/nattd/config.yaml,
or to the path given with --config.

Examples:
  nattd init                          # Default location
  nattd init --config ./nattd.yaml    # Custom location
  nattd init --force                  # Overwrite an existing file`,
		Args: cobra.NoArgs,
		// An existing config may be invalid; init must still be able to replace it
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logging.Setup(a.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, a, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, force bool) error {
	path, err := globalconfig.ExpandPath(a.resolvedConfigPath())
	if err != nil {
		return err
	}

	exists, err := globalconfig.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := globalconfig.NewConfig().Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to: %s\n", path)
	return nil
}
