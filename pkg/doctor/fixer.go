package doctor

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrNoFix is returned when a check has no fix command.
var ErrNoFix = errors.New("no fix command available")

// fixCommands defines the fix command for each tool.
var fixCommands = map[string]*FixCommand{
	IDSudo: {
		Description: "Install with dnf as root",
		Command:     "su -c 'dnf -y install sudo'",
	},
	IDFlatpak: {
		Description: "Install via dnf",
		Command:     "sudo dnf -y install flatpak",
		Sudo:        true,
	},
	IDClipboard: {
		Description: "Install the Wayland clipboard tools",
		Command:     "sudo dnf -y install wl-clipboard",
		Sudo:        true,
	},
}

// GetFixCommand returns the fix command for a tool, or nil.
func GetFixCommand(toolID string) *FixCommand {
	return fixCommands[toolID]
}

// Fixer provides functionality to run fix commands.
type Fixer struct {
	executor CommandExecutor

	// copy is replaced in tests
	copy func(string) error
}

// NewFixer creates a new Fixer.
func NewFixer() *Fixer {
	return NewFixerWithExecutor(&RealExecutor{})
}

// NewFixerWithExecutor creates a new Fixer with a custom executor.
func NewFixerWithExecutor(exec CommandExecutor) *Fixer {
	return &Fixer{
		executor: exec,
		copy:     clipboard.WriteAll,
	}
}

// RunFix executes a fix command through the shell.
func (f *Fixer) RunFix(fix *FixCommand) error {
	if fix == nil {
		return ErrNoFix
	}

	output, err := f.executor.CombinedOutput("sh", "-c", fix.Command)
	if err != nil {
		return fmt.Errorf("fix failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// CopyToClipboard copies the fix command to the clipboard.
func (f *Fixer) CopyToClipboard(fix *FixCommand) error {
	if fix == nil {
		return ErrNoFix
	}
	return f.copy(fix.Command)
}
