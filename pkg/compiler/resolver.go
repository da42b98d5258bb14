package compiler

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// Rule forces entries on when any entry matching When is selected.
// Paths use the selection path forms; a trailing "/*" matches every entry
// below the prefix.
type Rule struct {
	Name   string
	When   []string
	Force  []string
	Notice string
}

// Forced records one selection made by the resolver.
type Forced struct {
	Path    string
	Name    string
	Rule    string
	Trigger string
	Notice  string
}

// DefaultRules returns the built-in dependency rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "rpmfusion-for-codecs",
			When:   []string{"system_config/multimedia_codecs/*"},
			Force:  []string{"system_config/useful_repos/enable_rpmfusion"},
			Notice: "RPM Fusion has been automatically selected due to codec choices",
		},
		{
			Name:   "nvidia-driver-for-nvidia-codecs",
			When:   []string{"system_config/multimedia_codecs/install_nvidia_codecs"},
			Force:  []string{"system_config/useful_repos/enable_nvidia_driver"},
			Notice: "The NVIDIA driver repository has been automatically selected due to NVIDIA codec choices",
		},
	}
}

// Resolver applies dependency rules to a selection tree.
type Resolver struct {
	rules  []Rule
	logger *log.Logger
}

// NewResolver creates a resolver. Nil rules use DefaultRules.
func NewResolver(rules []Rule, logger *log.Logger) *Resolver {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Resolver{rules: rules, logger: logging.OrDefault(logger)}
}

// Rules returns the rules in use.
func (r *Resolver) Rules() []Rule {
	return r.rules
}

// Resolve applies the rules in place and returns the same tree.
func (r *Resolver) Resolve(tree *selection.Tree) *selection.Tree {
	r.Apply(tree)
	return tree
}

// Apply selects rule targets until no rule changes anything and reports
// what it selected. It only ever turns selections on. Paths missing from
// the tree count as not selected.
func (r *Resolver) Apply(tree *selection.Tree) []Forced {
	var forced []Forced

	for changed := true; changed; {
		changed = false
		for _, rule := range r.rules {
			trigger := firstSelected(tree, rule.When)
			if trigger == nil {
				continue
			}
			for _, path := range rule.Force {
				target := tree.Find(path)
				if target == nil {
					r.logger.Debug("dependency target not in catalog", "rule", rule.Name, "path", path)
					continue
				}
				if target.Selected {
					continue
				}

				target.Selected = true
				if target.Def.HasInstallationTypes() && target.InstallationType == "" {
					target.InstallationType = target.Def.DefaultInstallationType()
				}
				changed = true

				forced = append(forced, Forced{
					Path:    target.Path,
					Name:    target.Name(),
					Rule:    rule.Name,
					Trigger: trigger.Path,
					Notice:  rule.Notice,
				})
				r.logger.Debug("dependency forced", "rule", rule.Name, "entry", target.Path, "trigger", trigger.Path)
			}
		}
	}

	return forced
}

// firstSelected returns the first selected entry matching any pattern.
func firstSelected(tree *selection.Tree, patterns []string) *selection.Entry {
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			var found *selection.Entry
			tree.Walk(func(_ *selection.Category, _ *selection.Subcategory, e *selection.Entry) {
				if found == nil && e.Selected && strings.HasPrefix(e.Path, prefix+"/") {
					found = e
				}
			})
			if found != nil {
				return found
			}
			continue
		}
		if e := tree.Find(pattern); e != nil && e.Selected {
			return e
		}
	}
	return nil
}
