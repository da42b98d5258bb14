package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/pkg/validation"
)

// Special describes an entry that needs user input besides being selected.
type Special struct {
	// Key is the entry key (e.g., "set_hostname")
	Key string

	// Field is the input the entry carries
	Field selection.Field

	// Prompt is shown when asking for the value
	Prompt string

	// Default is used when the input is empty or invalid
	Default string

	// Rule describes valid input
	Rule string

	// Validate returns the normalized value or an error
	Validate func(string) (string, error)

	// AppendTo, when set, appends the value as an argument to commands
	// containing this text
	AppendTo string

	// Token, when set, is replaced in command text by the value plus Unit
	Token string
	Unit  string
}

// Specials is the table of special entries, consulted by the compiler and
// by the input layer.
type Specials []Special

// Special entry keys.
const (
	SpecialHostname = "set_hostname"
	SpecialSwapSize = "extra_swap_space"
)

const (
	DefaultHostname = "fedora"
	DefaultSwapSize = "8"
)

// DefaultSpecials returns the built-in table.
func DefaultSpecials() Specials {
	return Specials{
		{
			Key:     SpecialHostname,
			Field:   selection.FieldName,
			Prompt:  "Enter the new hostname",
			Default: DefaultHostname,
			Rule:    validation.HostnameRule,
			Validate: func(s string) (string, error) {
				if err := validation.ValidateHostname(s); err != nil {
					return "", err
				}
				return strings.TrimSpace(s), nil
			},
			AppendTo: "hostnamectl set-hostname",
		},
		{
			Key:     SpecialSwapSize,
			Field:   selection.FieldSize,
			Prompt:  "Swap file size in GiB",
			Default: DefaultSwapSize,
			Rule:    validation.SwapSizeRule,
			Validate: func(s string) (string, error) {
				n, err := validation.ValidateSwapSize(s)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(n), nil
			},
			Token: "SELECTEDSWAPSIZE",
			Unit:  "G",
		},
	}
}

// Lookup returns the special entry with the given key.
func (s Specials) Lookup(key string) (Special, bool) {
	for _, sp := range s {
		if sp.Key == key {
			return sp, true
		}
	}
	return Special{}, false
}

// WithDefault returns a copy of the table with the default for key
// replaced. An empty or invalid value leaves the table unchanged.
func (s Specials) WithDefault(key, value string) (Specials, error) {
	out := make(Specials, len(s))
	copy(out, s)
	for i := range out {
		if out[i].Key != key || value == "" {
			continue
		}
		normalized, err := out[i].Validate(value)
		if err != nil {
			return s, fmt.Errorf("default for %s: %w", key, err)
		}
		out[i].Default = normalized
	}
	return out, nil
}

// Resolve validates an entered value. It returns the value to use and, when
// the default was substituted, a message naming the default and the rule.
func (sp Special) Resolve(entered string) (value string, fallback string) {
	if strings.TrimSpace(entered) == "" {
		return sp.Default, fmt.Sprintf("no value entered, using default %q (expected %s)", sp.Default, sp.Rule)
	}
	if sp.Validate == nil {
		return entered, ""
	}
	v, err := sp.Validate(entered)
	if err != nil {
		return sp.Default, fmt.Sprintf("%q is invalid, using default %q (expected %s)", entered, sp.Default, sp.Rule)
	}
	return v, ""
}

// Replacement returns the text substituted for the special's token.
func (sp Special) Replacement(value string) string {
	return value + sp.Unit
}
