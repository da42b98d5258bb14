// Package validation provides input, catalog and template validation for nattd.
package validation

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/script"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in a catalog or template.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Rules shown to the user when an input is rejected.
const (
	HostnameRule = "1-253 characters, dot-separated labels of 1-63 letters, digits or hyphens, no label starting or ending with a hyphen"
	SwapSizeRule = "a whole number of GiB between 1 and 32"
)

const (
	MinSwapSize = 1
	MaxSwapSize = 32
)

var hostnameLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// ValidateHostname checks a hostname against RFC 1123 label rules.
func ValidateHostname(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("hostname is required: must be %s", HostnameRule)
	}
	if len(s) > 253 {
		return fmt.Errorf("invalid hostname: must be %s", HostnameRule)
	}

	for _, label := range strings.Split(s, ".") {
		if !hostnameLabelRegex.MatchString(label) {
			return fmt.Errorf("invalid hostname %q: must be %s", s, HostnameRule)
		}
	}

	return nil
}

// ValidateSwapSize parses a swap size in GiB and checks its range.
func ValidateSwapSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("swap size is required: must be %s", SwapSizeRule)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinSwapSize || n > MaxSwapSize {
		return 0, fmt.Errorf("invalid swap size %q: must be %s", s, SwapSizeRule)
	}
	return n, nil
}

// Validator validates catalogs and script templates.
type Validator struct {
	// Source names the catalog in reported issues
	Source string
}

// NewValidator creates a new Validator.
func NewValidator(source string) *Validator {
	return &Validator{Source: source}
}

// ValidateAll validates a catalog and a template and returns the result.
func (v *Validator) ValidateAll(cat *catalog.Catalog, templatePath string) *Result {
	result := &Result{Issues: []Issue{}}

	result.Issues = append(result.Issues, v.ValidateCatalog(cat)...)
	result.Issues = append(result.Issues, v.ValidateTemplateFile(templatePath)...)

	return result
}

// ValidateCatalog checks that every entry resolves a command form and that
// names are unique within their group.
func (v *Validator) ValidateCatalog(cat *catalog.Catalog) []Issue {
	issues := []Issue{}

	if cat == nil || cat.IsEmpty() {
		issues = append(issues, Issue{
			File:     v.Source,
			Message:  "catalog has no entries",
			Severity: SeverityError,
		})
		return issues
	}

	for _, key := range cat.Keys() {
		name, err := cat.CategoryName(key)
		if err != nil {
			issues = append(issues, Issue{
				File:     v.Source,
				Field:    key,
				Message:  err.Error(),
				Severity: SeverityError,
			})
			continue
		}
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{
				File:     v.Source,
				Field:    key,
				Message:  "category has no display name",
				Severity: SeverityWarning,
			})
		}
	}

	for _, c := range cat.Categories {
		for _, sub := range c.Subcategories {
			names := make(map[string]bool)
			for _, entry := range sub.Entries {
				path := c.Key + "/" + sub.Key + "/" + entry.Key

				if names[entry.Name] {
					issues = append(issues, Issue{
						File:     v.Source,
						Field:    path,
						Message:  fmt.Sprintf("duplicate name %q in %s", entry.Name, sub.Name),
						Severity: SeverityError,
					})
				}
				names[entry.Name] = true

				issues = append(issues, v.validateEntry(path, entry)...)
			}
		}
	}

	return issues
}

func (v *Validator) validateEntry(path string, entry catalog.Entry) []Issue {
	issues := []Issue{}

	if !entry.HasInstallationTypes() {
		if entry.Command.IsEmpty() {
			issues = append(issues, Issue{
				File:     v.Source,
				Field:    path,
				Message:  "entry has no command and no installation types",
				Severity: SeverityError,
			})
		}
		return issues
	}

	for _, it := range entry.InstallationTypes {
		if it.Command.IsEmpty() {
			issues = append(issues, Issue{
				File:     v.Source,
				Field:    path + ":" + it.Key,
				Message:  fmt.Sprintf("installation type %q has no command", it.Key),
				Severity: SeverityError,
			})
		}
	}

	if !entry.Command.IsEmpty() {
		issues = append(issues, Issue{
			File:     v.Source,
			Field:    path,
			Message:  "plain command is ignored when installation types are present",
			Severity: SeverityWarning,
		})
	}

	return issues
}

// ValidateTemplateFile validates the template at path, or the embedded
// template when path is empty.
func (v *Validator) ValidateTemplateFile(path string) []Issue {
	name := path
	if name == "" {
		name = "embedded template"
	}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return []Issue{{
				File:     name,
				Message:  "template file not found",
				Severity: SeverityError,
			}}
		}
	}

	text, err := script.Load(path)
	if err != nil {
		return []Issue{{
			File:     name,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}

	return ValidateTemplate(name, text)
}

// ValidateTemplate checks that a template carries every section placeholder.
func ValidateTemplate(name, text string) []Issue {
	issues := []Issue{}

	for _, section := range script.Sections {
		if !strings.Contains(text, script.Placeholder(section)) {
			issues = append(issues, Issue{
				File:     name,
				Field:    section,
				Message:  fmt.Sprintf("missing placeholder %s", script.Placeholder(section)),
				Severity: SeverityError,
			})
		}
	}

	if !strings.Contains(text, script.HostnameToken) {
		issues = append(issues, Issue{
			File:     name,
			Field:    "hostname",
			Message:  fmt.Sprintf("template never uses %s", script.HostnameToken),
			Severity: SeverityWarning,
		})
	}

	if !strings.HasPrefix(text, "#!") {
		issues = append(issues, Issue{
			File:     name,
			Message:  "template has no shebang line",
			Severity: SeverityWarning,
		})
	}

	return issues
}
