package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// buildModeOptions creates the output mode choices.
func buildModeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Quiet - hide routine command output", string(compiler.Quiet)),
		huh.NewOption("Verbose - show all command output", string(compiler.Verbose)),
	}
}

// buildEntryOptions creates huh options for every entry of a category.
// Option values are full entry paths.
func buildEntryOptions(c *selection.Category, selected map[string]bool) []huh.Option[string] {
	var options []huh.Option[string]

	for _, sub := range c.Subcategories {
		for _, e := range sub.Entries {
			label := e.Name()
			if len(c.Subcategories) > 1 {
				label = fmt.Sprintf("%s: %s", sub.Name, label)
			}
			if e.Description() != "" {
				label = fmt.Sprintf("%s - %s", label, e.Description())
			}
			options = append(options, huh.NewOption(label, e.Path).Selected(selected[e.Path]))
		}
	}

	return options
}

// buildTypeOptions creates huh options for an entry's installation types.
func buildTypeOptions(e *selection.Entry) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(e.Def.InstallationTypes))
	for _, it := range e.Def.InstallationTypes {
		label := it.Name
		if label == "" {
			label = it.Key
		}
		options = append(options, huh.NewOption(label, it.Key))
	}
	return options
}

// buildSelectionForm creates the first form: output mode and one
// multi-select per category.
func buildSelectionForm(tree *selection.Tree, state *formState, opts *FormOptions) *huh.Form {
	var groups []*huh.Group

	if !opts.SkipOutputMode {
		groups = append(groups,
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Output Mode").
					Description("How much command output should the script show?").
					Options(buildModeOptions()...).
					Value(&state.mode),
			).Title("Output").Description("Choose the script output mode"),
		)
	}

	for _, c := range tree.Categories {
		options := buildEntryOptions(c, state.selected)
		if len(options) == 0 {
			continue
		}
		groups = append(groups,
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title(c.Name).
					Description("Space to toggle, enter to continue").
					Options(options...).
					Value(state.picks[c.Key]),
			).Title(c.Name),
		)
	}

	return huh.NewForm(groups...).
		WithTheme(Theme()).
		WithShowHelp(true).
		WithShowErrors(true)
}

// buildDetailsForm creates the second form: installation types and inputs
// for the chosen entries, the custom script and the optional profile name.
func buildDetailsForm(tree *selection.Tree, state *formState, specials compiler.Specials, opts *FormOptions) *huh.Form {
	var typeFields []huh.Field
	var inputFields []huh.Field

	for _, path := range state.chosen() {
		e := tree.Find(path)
		if e == nil {
			continue
		}

		if e.Def.HasInstallationTypes() {
			v := state.typeValue(e)
			typeFields = append(typeFields,
				huh.NewSelect[string]().
					Title(e.Name()).
					Description("Installation method").
					Options(buildTypeOptions(e)...).
					Value(v),
			)
		}

		if sp, ok := specials.Lookup(e.Key()); ok {
			v := state.inputValue(e.Key())
			inputFields = append(inputFields,
				huh.NewInput().
					Title(sp.Prompt).
					Description(sp.Rule).
					Placeholder(sp.Default).
					Value(v).
					Validate(validateSpecial(sp)),
			)
		}
	}

	var groups []*huh.Group
	if len(typeFields) > 0 {
		groups = append(groups, huh.NewGroup(typeFields...).
			Title("Installation Methods").
			Description("Choose how each application is installed"))
	}
	if len(inputFields) > 0 {
		groups = append(groups, huh.NewGroup(inputFields...).
			Title("Settings").
			Description("Leave empty to use the default"))
	}
	groups = append(groups,
		huh.NewGroup(
			huh.NewText().
				Title("Custom Script").
				Description("Commands appended to the end of the script").
				Value(&state.custom).
				Lines(5).
				CharLimit(10000),
		).Title("Custom Script"),
	)

	if !opts.SkipProfilePrompt {
		groups = append(groups,
			huh.NewGroup(
				huh.NewConfirm().
					Title("Save these choices as a profile?").
					Value(&state.saveProfile),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Profile name").
					Value(&state.profileName).
					Validate(validateRequired("Profile name")),
			).WithHideFunc(func() bool { return !state.saveProfile }),
		)
	}

	return huh.NewForm(groups...).
		WithTheme(Theme()).
		WithShowHelp(true).
		WithShowErrors(true)
}
