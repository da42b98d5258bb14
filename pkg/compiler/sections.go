package compiler

import (
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// HostnameFallback is substituted for {hostname} when no hostname entry is
// selected, so the script names the machine's current hostname.
const HostnameFallback = "$(hostname)"

// systemUpgradeCommands is the fixed preamble run before anything else.
var systemUpgradeCommands = []string{
	"generate_log \"Performing initial setup steps:\n" +
		"   1. Installing dnf-plugins-core\n" +
		"   2. Enabling Flathub repo\n" +
		"   3. Performing system upgrade\n" +
		"Please be patient. This may take a while.\"\n",
	"dnf -y install dnf-plugins-core",
	"flatpak remote-add --if-not-exists flathub https://dl.flathub.org/repo/flathub.flatpakrepo",
	"dnf -y upgrade",
}

// build holds the state of one compilation.
type build struct {
	c    *Compiler
	tree *selection.Tree

	// subst maps special tokens to their replacement text
	subst map[string]string
	// values holds the resolved special values by entry key
	values map[string]string

	hostname    string
	hostnameSet bool
	warnings    []Warning
}

func (c *Compiler) newBuild(tree *selection.Tree) *build {
	b := &build{
		c:      c,
		tree:   tree,
		subst:  make(map[string]string),
		values: make(map[string]string),
	}
	b.resolveSpecials()
	return b
}

func (b *build) warn(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, w := range b.warnings {
		if w.Path == path && w.Message == msg {
			return
		}
	}
	b.warnings = append(b.warnings, Warning{Path: path, Message: msg})
	b.c.logger.Warn(msg, "path", path)
}

// resolveSpecials validates the input of every selected special entry.
// Unselected specials resolve to their default silently.
func (b *build) resolveSpecials() {
	for _, sp := range b.c.specials {
		value := sp.Default
		for _, e := range b.tree.FindByKey(sp.Key) {
			if !e.Selected {
				continue
			}
			v, fallback := sp.Resolve(e.Input(sp.Field))
			if fallback != "" {
				b.warn(e.Path, "%s: %s", sp.Prompt, fallback)
			}
			value = v
			if sp.Key == SpecialHostname {
				b.hostnameSet = true
			}
			break
		}

		b.values[sp.Key] = value
		if sp.Token != "" {
			b.subst[sp.Token] = sp.Replacement(value)
		}
	}

	b.hostname = HostnameFallback
	if b.hostnameSet {
		b.hostname = b.values[SpecialHostname]
	}
}

// commands extracts an entry's commands with special handling and the
// output mode applied. It returns nil and records a warning when the entry
// has nothing to run.
func (b *build) commands(e *selection.Entry) []string {
	cmds, err := Extract(e, b.subst)
	if err != nil {
		b.warn(e.Path, "skipping %s: %v", e.Name(), err)
		return nil
	}

	sp, special := b.c.specials.Lookup(e.Key())
	out := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if special && sp.AppendTo != "" && strings.Contains(cmd, sp.AppendTo) {
			cmd += " " + b.values[sp.Key]
		}
		out = append(out, ApplyMode(cmd, b.c.mode))
	}
	return out
}

func (b *build) systemUpgrade() string {
	lines := make([]string, len(systemUpgradeCommands))
	for i, cmd := range systemUpgradeCommands {
		lines[i] = ApplyMode(cmd, b.c.mode)
	}
	return strings.Join(lines, "\n")
}

// systemConfig renders each selected system configuration entry as its
// description comment, its commands and a blank line.
func (b *build) systemConfig() string {
	c := b.tree.Category(catalog.CategorySystemConfig)
	if c == nil {
		return ""
	}

	var lines []string
	for _, sub := range c.Subcategories {
		for _, e := range sub.Entries {
			if !e.Selected {
				continue
			}
			cmds := b.commands(e)
			if cmds == nil {
				continue
			}
			comment := e.Description()
			if comment == "" {
				comment = e.Name()
			}
			lines = append(lines, "# "+comment)
			lines = append(lines, cmds...)
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func (b *build) appInstall() string {
	return b.install(func(key string) bool {
		return key != catalog.CategorySystemConfig && key != catalog.CategoryCustomization
	})
}

func (b *build) customization() string {
	return b.install(func(key string) bool {
		return key == catalog.CategoryCustomization
	})
}

// install renders selected entries of the categories accepted by include,
// grouped under one header per subcategory. Each entry is wrapped in a
// pair of log messages. Subcategories with nothing to run are omitted.
func (b *build) install(include func(categoryKey string) bool) string {
	var lines []string
	for _, c := range b.tree.Categories {
		if !include(c.Key) {
			continue
		}
		for _, sub := range c.Subcategories {
			var block []string
			for _, e := range sub.Entries {
				if !e.Selected {
					continue
				}
				cmds := b.commands(e)
				if cmds == nil {
					continue
				}
				name := logArg(e.Name())
				block = append(block, ApplyMode(fmt.Sprintf("generate_log \"Installing %s...\"", name), b.c.mode))
				block = append(block, cmds...)
				block = append(block, ApplyMode(fmt.Sprintf("generate_log \"%s installed successfully.\"", name), b.c.mode))
			}
			if len(block) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("# Install %s applications", sub.Name))
			lines = append(lines, block...)
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func (b *build) customScript() string {
	return strings.TrimSpace(b.tree.CustomScript)
}

var logArgReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// logArg escapes text for use inside a double-quoted shell string.
func logArg(s string) string {
	return logArgReplacer.Replace(s)
}
