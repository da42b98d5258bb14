// Package utils holds small helpers shared by the CLI and the profile store.
package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxProfileNameLength is the maximum length for a profile name.
	MaxProfileNameLength = 50
	// MinProfileNameLength is the minimum length for a profile name.
	MinProfileNameLength = 1
)

// validProfileNamePattern matches alphanumeric, hyphens, underscores, and spaces.
var validProfileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_\s]*$`)

// multipleSpacesPattern matches one or more consecutive whitespace characters.
var multipleSpacesPattern = regexp.MustCompile(`\s+`)

// ValidateProfileName validates a profile name.
func ValidateProfileName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxProfileNameLength {
		return fmt.Errorf("profile name cannot exceed %d characters", MaxProfileNameLength)
	}

	// Check for path traversal attempts before regex check
	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("profile name contains invalid characters")
	}

	if !validProfileNamePattern.MatchString(name) {
		return fmt.Errorf("profile name can only contain letters, numbers, hyphens, underscores, and spaces")
	}

	return nil
}

// SanitizeProfileName cleans up a profile name for safe use.
func SanitizeProfileName(name string) string {
	name = strings.TrimSpace(name)

	// Replace multiple spaces with single space
	name = multipleSpacesPattern.ReplaceAllString(name, " ")

	if utf8.RuneCountInString(name) > MaxProfileNameLength {
		runes := []rune(name)
		name = strings.TrimSpace(string(runes[:MaxProfileNameLength]))
	}

	return name
}
