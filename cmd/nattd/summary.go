package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/generator"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

// newSummaryCmd creates the summary subcommand
func newSummaryCmd(a *app) *cobra.Command {
	var (
		source sourceFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "summary [selection...]",
		Short: "Describe what a script would do",
		Long: `Print a Markdown summary of a build: the settings, every selected entry,
automatic selections and warnings. On a terminal the summary is rendered;
otherwise the raw Markdown is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, a, &source, args, output)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the Markdown summary to a file")

	return cmd
}

// runSummary compiles the selections and prints or writes their summary.
func runSummary(cmd *cobra.Command, a *app, source *sourceFlags, args []string, output string) error {
	cfg, err := source.load(a, args)
	if err != nil {
		return err
	}

	b, err := a.prepare(cfg)
	if err != nil {
		return fmt.Errorf("invalid build configuration: %w", err)
	}

	res := b.compiler.Compile(b.tree)
	data := generator.BuildSummaryData(b.tree, res)

	if output != "" {
		if err := generator.GenerateSummary(data, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Summary written to %s\n", tui.SuccessStyle.Render("✓"), output)
		return nil
	}

	markdown, err := generator.RenderSummary(cmd.Context(), data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		if rendered, err := generator.RenderTerminal(markdown, 0); err == nil {
			markdown = rendered
		}
	}
	_, err = fmt.Fprint(out, markdown)
	return err
}
