// Package main provides the nattd CLI for generating Fedora post-install scripts.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for nattd
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "nattd",
		Short: "Fedora post-install script generator",
		Long: `nattd generates a shell script that sets up a fresh Fedora installation
from a catalog of settings and applications.

It supports:
  - Interactive selection of settings, applications and customizations
  - Non-interactive builds from selection lists, files and saved profiles
  - Quiet or verbose scripts
  - Markdown summaries of what a script will do`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/nattd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "Catalog file (default: embedded catalog)")
	rootCmd.PersistentFlags().StringVar(&a.templatePath, "template", "", "Script template file (default: embedded template)")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newBuildCmd(a),
		newPreviewCmd(a),
		newSummaryCmd(a),
		newCatalogCmd(a),
		newValidateCmd(a),
		newProfilesCmd(a),
		newInitCmd(a),
		newDoctorCmd(),
	)

	return rootCmd
}
