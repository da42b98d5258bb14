// Package doctor checks whether the current machine can run generated
// scripts and use every nattd feature.
package doctor

// CheckStatus represents the status of a check.
type CheckStatus int

const (
	// StatusOK indicates the tool is installed and working.
	StatusOK CheckStatus = iota
	// StatusMissing indicates the tool is not installed.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the check found issues but scripts may still work.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "dnf", "flatpak"
	Name        string      // Display name
	Description string      // Why nattd needs it
	Status      CheckStatus // Current status
	Message     string      // Status message (version info, error, etc.)
	FixCommand  *FixCommand // How to fix if missing (nil if not fixable)
}

// FixCommand describes how to fix a missing tool.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Shell command to run
	Sudo        bool   // Whether the command requires sudo
}

// CheckGroup represents a group of related checks.
type CheckGroup struct {
	ID          string  // Unique identifier, e.g., "script", "clipboard"
	Name        string  // Display name
	Description string  // What this group is for
	Checks      []Check // Individual checks in this group
}

// GroupID constants for check groups.
const (
	GroupScript    = "script"
	GroupClipboard = "clipboard"
)

// CheckID constants for individual checks.
const (
	IDOSRelease = "os-release"
	IDBash      = "bash"
	IDSudo      = "sudo"
	IDDnf       = "dnf"
	IDFlatpak   = "flatpak"
	IDClipboard = "clipboard"
)

// OSReleasePath is where the running distribution is described.
const OSReleasePath = "/etc/os-release"
