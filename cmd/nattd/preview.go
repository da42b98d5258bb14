package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/generator"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

// newPreviewCmd creates the preview subcommand
func newPreviewCmd(a *app) *cobra.Command {
	var (
		source sourceFlags
		pager  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview [selection...]",
		Short: "Show the generated sections without the template",
		Long: `Print the sections a build would produce, between placeholder lines for
the script header and footer. With --pager the preview opens in a scrollable
view where the full script can be copied or written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, a, &source, args, pager, output)
		},
	}

	source.register(cmd)
	cmd.Flags().BoolVar(&pager, "pager", false, "Open the preview in an interactive pager")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Script path used when writing from the pager")

	return cmd
}

// runPreview compiles the selections and prints the section preview.
func runPreview(cmd *cobra.Command, a *app, source *sourceFlags, args []string, pager bool, output string) error {
	cfg, err := source.load(a, args)
	if err != nil {
		return err
	}

	b, err := a.prepare(cfg)
	if err != nil {
		return fmt.Errorf("invalid build configuration: %w", err)
	}

	res := b.compiler.Compile(b.tree)
	printNotices(cmd.ErrOrStderr(), res)

	if !pager || !isTerminal(cmd.OutOrStdout()) {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Preview())
		return err
	}

	template, err := a.loadTemplate()
	if err != nil {
		return err
	}
	content := res.Render(template)

	action, err := tui.RunPreview("Script Preview", res.Preview(), content)
	if err != nil {
		return err
	}
	if action != tui.ActionWrite {
		return nil
	}

	path, err := a.outputPath(output, b.tree.Distro)
	if err != nil {
		return err
	}
	if err := generator.WriteScript(path, content); err != nil {
		return err
	}
	printInstructions(cmd.OutOrStdout(), path)
	return nil
}
