package compiler

import (
	"fmt"
	"strings"
)

// OutputMode controls whether routine command output is discarded.
type OutputMode string

const (
	Quiet   OutputMode = "quiet"
	Verbose OutputMode = "verbose"
)

// QuietRedirect is appended to suppressed commands in Quiet mode.
const QuietRedirect = " > /dev/null 2>&1"

// visiblePrefixes are commands whose output is meant for the user.
var visiblePrefixes = []string{"generate_log", "echo", "printf", "read", "prompt_"}

// heredocMarker anywhere in a command keeps it visible; redirecting a
// heredoc line would corrupt it.
const heredocMarker = "EOF"

// ParseOutputMode parses "quiet" or "verbose", case-insensitively.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case Quiet:
		return Quiet, nil
	case Verbose:
		return Verbose, nil
	default:
		return "", fmt.Errorf("output mode must be %q or %q, got %q", Quiet, Verbose, s)
	}
}

// String returns the mode name.
func (m OutputMode) String() string { return string(m) }

// ShouldSuppress reports whether a command's output may be discarded.
func ShouldSuppress(cmd string) bool {
	if strings.Contains(cmd, heredocMarker) {
		return false
	}
	trimmed := strings.TrimLeft(cmd, " \t")
	for _, prefix := range visiblePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}
	return true
}

// ApplyMode appends QuietRedirect to suppressible commands in Quiet mode.
// The command is never parsed.
func ApplyMode(cmd string, mode OutputMode) string {
	if mode != Quiet || !ShouldSuppress(cmd) {
		return cmd
	}
	return cmd + QuietRedirect
}
