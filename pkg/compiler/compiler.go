// Package compiler turns a selection tree into shell script text.
//
// A build runs the dependency resolver to a fixed point, resolves the
// special inputs, renders each section and assembles either a preview or a
// full script from a template. Nothing in a build fails: recoverable
// problems are returned as warnings on the Result.
package compiler

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/script"
)

// Warning is a recoverable problem found during a build.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// Options configures a Compiler.
type Options struct {
	Mode OutputMode

	// Rules replaces the built-in dependency rules when non-nil
	Rules []Rule

	// Specials replaces the built-in special-entry table when non-nil
	Specials Specials

	Logger *log.Logger
}

// Compiler builds scripts for one output mode.
type Compiler struct {
	mode     OutputMode
	resolver *Resolver
	specials Specials
	logger   *log.Logger
}

// New creates a compiler. An empty mode defaults to Verbose.
func New(opts Options) *Compiler {
	logger := logging.OrDefault(opts.Logger)

	mode := opts.Mode
	if mode == "" {
		mode = Verbose
	}
	specials := opts.Specials
	if specials == nil {
		specials = DefaultSpecials()
	}

	return &Compiler{
		mode:     mode,
		resolver: NewResolver(opts.Rules, logger),
		specials: specials,
		logger:   logger,
	}
}

// Mode returns the output mode.
func (c *Compiler) Mode() OutputMode { return c.mode }

// Specials returns the special-entry table.
func (c *Compiler) Specials() Specials { return c.specials }

// Resolver returns the dependency resolver.
func (c *Compiler) Resolver() *Resolver { return c.resolver }

// Compile resolves dependencies on tree in place and renders every section.
func (c *Compiler) Compile(tree *selection.Tree) *Result {
	forced := c.resolver.Apply(tree)
	b := c.newBuild(tree)

	res := &Result{
		Mode:     c.mode,
		Forced:   forced,
		Sections: make(map[string]string, len(script.Sections)),
	}

	res.Sections[script.SectionSystemUpgrade] = b.systemUpgrade()
	res.Sections[script.SectionSystemConfig] = b.systemConfig()
	res.Sections[script.SectionAppInstall] = b.appInstall()
	res.Sections[script.SectionCustomization] = b.customization()
	res.Sections[script.SectionCustomScript] = b.customScript()

	res.Hostname = b.hostname
	res.HostnameSet = b.hostnameSet
	res.Values = b.values
	res.Warnings = b.warnings

	c.logger.Debug("script compiled",
		"mode", c.mode,
		"selected", tree.SelectedCount(),
		"forced", len(forced),
		"warnings", len(b.warnings))

	return res
}

// Preview compiles tree and returns the preview text.
func (c *Compiler) Preview(tree *selection.Tree) string {
	return c.Compile(tree).Preview()
}

// Render compiles tree and substitutes the result into template.
func (c *Compiler) Render(tree *selection.Tree, template string) string {
	return c.Compile(tree).Render(template)
}
