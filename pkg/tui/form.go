package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// formState holds the values bound to the form fields.
type formState struct {
	mode     string
	picks    map[string]*[]string // category key -> chosen paths
	selected map[string]bool      // preselected paths
	types    map[string]*string   // path -> installation type
	inputs   map[string]*string   // entry key -> input
	custom   string
	order    []string // every path in tree order

	saveProfile bool
	profileName string
}

// newFormState prepares form values from the initial result.
func newFormState(tree *selection.Tree, opts *FormOptions) *formState {
	s := &formState{
		mode:     string(compiler.Quiet),
		picks:    make(map[string]*[]string),
		selected: make(map[string]bool),
		types:    make(map[string]*string),
		inputs:   make(map[string]*string),
		custom:   DefaultCustomScript,
	}

	for _, c := range tree.Categories {
		s.picks[c.Key] = &[]string{}
	}
	tree.Walk(func(_ *selection.Category, _ *selection.Subcategory, e *selection.Entry) {
		s.order = append(s.order, e.Path)
	})

	initial := opts.Initial
	if initial == nil {
		return s
	}

	if initial.OutputMode != "" {
		s.mode = initial.OutputMode
	}
	if initial.CustomScript != "" {
		s.custom = initial.CustomScript
	}

	for _, sel := range initial.Selections {
		path, installationType := selection.ParseSelection(sel)
		e := tree.Find(path)
		if e == nil {
			continue
		}
		if s.selected[e.Path] {
			continue
		}
		s.selected[e.Path] = true
		category, _, _ := strings.Cut(e.Path, "/")
		*s.picks[category] = append(*s.picks[category], e.Path)
		if installationType != "" {
			v := installationType
			s.types[e.Path] = &v
		}
	}
	for key, value := range initial.Inputs {
		v := value
		s.inputs[key] = &v
	}

	return s
}

// chosen returns the picked paths in tree order.
func (s *formState) chosen() []string {
	picked := make(map[string]bool)
	for _, paths := range s.picks {
		for _, p := range *paths {
			picked[p] = true
		}
	}

	var out []string
	for _, p := range s.order {
		if picked[p] {
			out = append(out, p)
		}
	}
	return out
}

// typeValue returns the bound installation type, defaulting to the first
// variant.
func (s *formState) typeValue(e *selection.Entry) *string {
	v, ok := s.types[e.Path]
	if !ok || !slices.Contains(e.Def.InstallationTypeKeys(), *v) {
		def := e.Def.DefaultInstallationType()
		v = &def
		s.types[e.Path] = v
	}
	return v
}

// inputValue returns the bound input for an entry key.
func (s *formState) inputValue(key string) *string {
	v, ok := s.inputs[key]
	if !ok {
		v = new(string)
		s.inputs[key] = v
	}
	return v
}

// result converts the bound values into a FormResult.
func (s *formState) result(tree *selection.Tree, specials compiler.Specials) *FormResult {
	result := &FormResult{
		OutputMode:   s.mode,
		Inputs:       make(map[string]string),
		CustomScript: s.custom,
	}
	if s.saveProfile {
		result.ProfileName = strings.TrimSpace(s.profileName)
	}

	for _, path := range s.chosen() {
		e := tree.Find(path)
		if e == nil {
			continue
		}
		installationType := ""
		if v, ok := s.types[path]; ok && e.Def.HasInstallationTypes() {
			installationType = *v
		}
		result.Selections = append(result.Selections, selection.FormatSelection(path, installationType))

		if _, ok := specials.Lookup(e.Key()); ok {
			if v, ok := s.inputs[e.Key()]; ok && *v != "" {
				result.Inputs[e.Key()] = *v
			}
		}
	}

	return result
}

// RunForm executes the interactive forms and returns the result.
func RunForm(tree *selection.Tree, specials compiler.Specials, opts *FormOptions) (*FormResult, error) {
	if opts == nil {
		opts = &FormOptions{}
	}
	state := newFormState(tree, opts)

	// Step 1: output mode and selections
	if err := buildSelectionForm(tree, state, opts).Run(); err != nil {
		return nil, fmt.Errorf("form cancelled: %w", err)
	}

	// Step 2: installation types, inputs and custom script
	if err := buildDetailsForm(tree, state, specials, opts).Run(); err != nil {
		return nil, fmt.Errorf("form cancelled: %w", err)
	}

	result := state.result(tree, specials)
	if HasWindowsFonts(result.Selections) {
		fmt.Printf("\n%s %s\n\n", WarningStyle.Render("⚠"), WindowsFontsWarning)
	}

	return result, nil
}
