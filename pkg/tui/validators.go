package tui

import (
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// WindowsFontsType is the font variant that needs a Windows license.
const WindowsFontsType = "windows"

// WindowsFontsWarning is shown when the Windows fonts variant is chosen.
const WindowsFontsWarning = "The Windows fonts method requires a valid Windows license. " +
	"See https://learn.microsoft.com/en-us/typography/fonts/font-faq"

// validateRequired returns a validator that ensures a field is not empty.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateSpecial returns a validator for a special entry's input. Empty
// input is accepted; the build falls back to the default.
func validateSpecial(sp compiler.Special) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" || sp.Validate == nil {
			return nil
		}
		if _, err := sp.Validate(s); err != nil {
			return fmt.Errorf("%s (expected %s)", err, sp.Rule)
		}
		return nil
	}
}

// HasWindowsFonts reports whether any selection chose the Windows fonts
// variant.
func HasWindowsFonts(selections []string) bool {
	for _, s := range selections {
		if _, installationType := selection.ParseSelection(s); installationType == WindowsFontsType {
			return true
		}
	}
	return false
}
