package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

var (
	// ErrNoCommand is returned when an entry resolves no command form.
	ErrNoCommand = errors.New("no command")
	// ErrUnknownInstallationType is returned when the chosen variant is not
	// declared by the entry.
	ErrUnknownInstallationType = errors.New("unknown installation type")
)

// Extract returns an entry's command list. A chosen installation type
// takes precedence over the plain command; an unknown type is an error and
// never falls back to the plain command. Each string in subst is replaced
// by its value in every command. Blank commands are dropped.
func Extract(e *selection.Entry, subst map[string]string) ([]string, error) {
	source := []string(e.Def.Command)

	if e.InstallationType != "" {
		it, ok := e.Def.InstallationType(e.InstallationType)
		if !ok {
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownInstallationType,
				e.InstallationType, strings.Join(e.Def.InstallationTypeKeys(), ", "))
		}
		source = it.Command
	}

	cmds := make([]string, 0, len(source))
	for _, cmd := range source {
		if strings.TrimSpace(cmd) == "" {
			continue
		}
		for token, value := range subst {
			if strings.Contains(cmd, token) {
				cmd = strings.ReplaceAll(cmd, token, value)
			}
		}
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		if e.Def.HasInstallationTypes() && e.InstallationType == "" {
			return nil, fmt.Errorf("%w: no installation type chosen (available: %s)", ErrNoCommand,
				strings.Join(e.Def.InstallationTypeKeys(), ", "))
		}
		return nil, ErrNoCommand
	}
	return cmds, nil
}
