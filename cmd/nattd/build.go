package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/generator"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
)

// newBuildCmd creates the build subcommand
func newBuildCmd(a *app) *cobra.Command {
	var (
		source sourceFlags
		output string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "build [selection...]",
		Short: "Build a script without prompts",
		Long: `Build a script from selections given as arguments, a build file or a profile.

Selections are written as category/subcategory/entry, optionally followed by
:installation_type. Entries of single-group categories may be written as
category/entry.

Examples:
  nattd build essential_apps/git internet_apps/browsers/brave:flatpak
  nattd build -p Essentials -i set_hostname=desk system_config/recommended_settings/set_hostname
  nattd build -f laptop.yaml --stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, a, &source, args, output, stdout)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to <output_dir>/<distro>_things_to_do.sh)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the script to stdout instead of a file")

	return cmd
}

// runBuild compiles the selections and writes the full script.
func runBuild(cmd *cobra.Command, a *app, source *sourceFlags, args []string, output string, stdout bool) error {
	cfg, err := source.load(a, args)
	if err != nil {
		return err
	}

	b, err := a.prepare(cfg)
	if err != nil {
		return fmt.Errorf("invalid build configuration: %w", err)
	}

	template, err := a.loadTemplate()
	if err != nil {
		return err
	}

	res := b.compiler.Compile(b.tree)
	printNotices(cmd.ErrOrStderr(), res)
	content := res.Render(template)

	if stdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	path, err := a.outputPath(output, b.tree.Distro)
	if err != nil {
		return err
	}
	if err := generator.WriteScript(path, content); err != nil {
		return err
	}
	logging.Debug("script written", "path", path, "selected", b.tree.SelectedCount(), "mode", res.Mode)

	printInstructions(cmd.OutOrStdout(), path)
	return nil
}
