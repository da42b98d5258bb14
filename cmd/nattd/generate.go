package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/config"
	"github.com/jaspreet-dot-casa/nattd/pkg/generator"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

type generateOptions struct {
	profile     string
	mode        string
	output      string
	saveProfile string
	saveConfig  string
}

// newGenerateCmd creates the generate subcommand
func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Interactive script generator",
		Long: `Launch the interactive form to pick settings and applications, review the
generated sections and write the script.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Preselect the entries of a profile")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Output mode: quiet or verbose (skips the question)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path (defaults to <output_dir>/<distro>_things_to_do.sh)")
	cmd.Flags().StringVar(&opts.saveProfile, "save-profile", "", "Save the choices as a profile with this name")
	cmd.Flags().StringVar(&opts.saveConfig, "save-config", "", "Save the choices as a build file")

	return cmd
}

// runGenerate launches the interactive form for script generation.
func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	out := cmd.OutOrStdout()

	formOpts := &tui.FormOptions{
		SkipOutputMode:    opts.mode != "",
		SkipProfilePrompt: opts.saveProfile != "",
	}
	if opts.profile != "" {
		source := sourceFlags{profile: opts.profile}
		initial, err := source.load(a, nil)
		if err != nil {
			return err
		}
		formOpts.Initial = initial.ToFormResult()
	}

	c, err := a.newCompiler("")
	if err != nil {
		return err
	}
	tree := selection.New(a.loadCatalog(a.cfg.Distro))

	result, err := tui.RunForm(tree, c.Specials(), formOpts)
	if err != nil {
		return err
	}
	if opts.mode != "" {
		result.OutputMode = opts.mode
	}
	profileName := opts.saveProfile
	if profileName == "" {
		profileName = result.ProfileName
	}

	cfg := config.NewBuildConfigFromFormResult(tree.Distro, result)
	b, err := a.prepare(cfg)
	if err != nil {
		return fmt.Errorf("invalid selections: %w", err)
	}

	res := b.compiler.Compile(b.tree)

	// Display summary
	fmt.Fprintln(out, tui.TitleStyle.Render("Script Summary"))
	fmt.Fprintf(out, "  Selected:  %d entries\n", b.tree.SelectedCount())
	fmt.Fprintf(out, "  Mode:      %s\n", res.Mode)
	if res.HostnameSet {
		fmt.Fprintf(out, "  Hostname:  %s\n", res.Hostname)
	}
	printNotices(out, res)

	if opts.saveConfig != "" {
		if err := config.WriteFile(opts.saveConfig, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Build file saved to %s\n", tui.SuccessStyle.Render("✓"), opts.saveConfig)
	}
	if profileName != "" {
		p, err := a.profileStore().Put(cfg.ToProfile(profileName, ""))
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Fprintf(out, "%s Profile %q saved\n", tui.SuccessStyle.Render("✓"), p.Name)
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
		fmt.Fprintln(out, "\nNo script written.")
		return nil
	}

	path, err := a.outputPath(opts.output, b.tree.Distro)
	if err != nil {
		return err
	}
	if err := generator.WriteScript(path, content); err != nil {
		return err
	}
	printInstructions(out, path)
	return nil
}
