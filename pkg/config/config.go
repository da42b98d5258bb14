// Package config handles build configuration: the selections a script is
// generated from.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/profiles"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

// BuildConfig represents everything needed to compile one script.
type BuildConfig struct {
	Distro     string `yaml:"distro,omitempty"`
	OutputMode string `yaml:"output_mode,omitempty"`

	// Selections are "category/subcategory/entry[:installation_type]"
	// strings; "category/entry" is accepted when unambiguous
	Selections []string `yaml:"selections"`

	// Inputs holds special entry values keyed by entry key
	Inputs map[string]string `yaml:"inputs,omitempty"`

	CustomScript string `yaml:"custom_script,omitempty"`
}

// NewBuildConfigFromFormResult creates a BuildConfig from the TUI form result.
func NewBuildConfigFromFormResult(distro string, result *tui.FormResult) *BuildConfig {
	return &BuildConfig{
		Distro:       distro,
		OutputMode:   result.OutputMode,
		Selections:   slices.Clone(result.Selections),
		Inputs:       maps.Clone(result.Inputs),
		CustomScript: result.CustomScript,
	}
}

// FromProfile creates a BuildConfig from a saved profile.
func FromProfile(p profiles.Profile) *BuildConfig {
	return &BuildConfig{
		Distro:       p.Distro,
		OutputMode:   p.OutputMode,
		Selections:   slices.Clone(p.Selections),
		Inputs:       maps.Clone(p.Inputs),
		CustomScript: p.CustomScript,
	}
}

// ToProfile creates an unsaved profile from the configuration.
func (c *BuildConfig) ToProfile(name, description string) profiles.Profile {
	return profiles.Profile{
		Name:         name,
		Description:  description,
		Distro:       c.Distro,
		OutputMode:   c.OutputMode,
		Selections:   slices.Clone(c.Selections),
		Inputs:       maps.Clone(c.Inputs),
		CustomScript: c.CustomScript,
	}
}

// ToFormResult converts the configuration into initial form values.
func (c *BuildConfig) ToFormResult() *tui.FormResult {
	return &tui.FormResult{
		OutputMode:   c.OutputMode,
		Selections:   slices.Clone(c.Selections),
		Inputs:       maps.Clone(c.Inputs),
		CustomScript: c.CustomScript,
	}
}

// Mode parses the output mode, falling back to def when unset.
func (c *BuildConfig) Mode(def compiler.OutputMode) (compiler.OutputMode, error) {
	if c.OutputMode == "" {
		return def, nil
	}
	return compiler.ParseOutputMode(c.OutputMode)
}

// ApplyTo records the configuration on a fresh selection tree. Entries with
// installation types and no explicit type get their first variant. Every
// problem is reported; valid selections are applied regardless.
func (c *BuildConfig) ApplyTo(tree *selection.Tree, specials compiler.Specials) error {
	var errs []error

	for _, s := range c.Selections {
		path, installationType := selection.ParseSelection(s)
		if path == "" {
			continue
		}
		if err := tree.Select(path, installationType); err != nil {
			errs = append(errs, fmt.Errorf("selection %q: %w", s, err))
		}
	}

	for _, key := range slices.Sorted(maps.Keys(c.Inputs)) {
		sp, ok := specials.Lookup(key)
		if !ok {
			errs = append(errs, fmt.Errorf("input %q: entry takes no input", key))
			continue
		}
		entries := tree.FindByKey(key)
		if len(entries) == 0 {
			errs = append(errs, fmt.Errorf("input %q: %w", key, selection.ErrUnknownEntry))
			continue
		}
		for _, e := range entries {
			e.SetInput(sp.Field, c.Inputs[key])
		}
	}

	tree.CustomScript = c.CustomScript

	return errors.Join(errs...)
}
