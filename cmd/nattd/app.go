package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/config"
	"github.com/jaspreet-dot-casa/nattd/pkg/generator"
	"github.com/jaspreet-dot-casa/nattd/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/profiles"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
	"github.com/jaspreet-dot-casa/nattd/script"
)

// app holds the state shared by all commands: persistent flags and the
// loaded user configuration.
type app struct {
	verbose      bool
	configPath   string
	catalogPath  string
	templatePath string

	cfg *globalconfig.Config
}

// load reads the user configuration and applies flag overrides.
func (a *app) load() error {
	logging.Setup(a.verbose)

	cfg, err := globalconfig.NewLoader().Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	if a.templatePath != "" {
		cfg.TemplatePath = a.templatePath
	}
	a.cfg = cfg

	logging.Debug("config loaded", "path", a.resolvedConfigPath(), "catalog", cfg.CatalogPath, "template", cfg.TemplatePath)
	return nil
}

func (a *app) resolvedConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return globalconfig.GetConfigPath()
}

// profileStore returns the profile store kept next to the config file.
func (a *app) profileStore() *profiles.Store {
	path, err := globalconfig.ExpandPath(a.resolvedConfigPath())
	if err != nil {
		return profiles.NewStore()
	}
	return profiles.NewStoreWithDir(filepath.Dir(path))
}

// loadCatalog loads the configured catalog. A missing or broken catalog
// degrades to an empty one.
func (a *app) loadCatalog(distro string) *catalog.Catalog {
	if distro == "" {
		distro = a.cfg.Distro
	}
	path, err := globalconfig.ExpandPath(a.cfg.CatalogPath)
	if err != nil {
		path = a.cfg.CatalogPath
	}
	return catalog.NewLoader(nil).LoadOrEmpty(distro, path)
}

// loadTemplate reads the configured script template.
func (a *app) loadTemplate() (string, error) {
	path, err := globalconfig.ExpandPath(a.cfg.TemplatePath)
	if err != nil {
		return "", err
	}
	return script.Load(path)
}

// newCompiler creates a compiler for mode with the configured rules and
// special-entry defaults.
func (a *app) newCompiler(mode compiler.OutputMode) (*compiler.Compiler, error) {
	specials, err := a.cfg.Specials()
	if err != nil {
		return nil, err
	}
	return compiler.New(compiler.Options{
		Mode:     mode,
		Rules:    a.cfg.Rules(),
		Specials: specials,
	}), nil
}

// build holds everything one build needs.
type build struct {
	cfg      *config.BuildConfig
	tree     *selection.Tree
	compiler *compiler.Compiler
}

// prepare loads the catalog, applies cfg to a fresh tree and creates the
// compiler for the requested output mode.
func (a *app) prepare(cfg *config.BuildConfig) (*build, error) {
	if cfg.Distro == "" {
		cfg.Distro = a.cfg.Distro
	}

	mode, err := a.cfg.Mode()
	if err != nil {
		return nil, err
	}
	mode, err = cfg.Mode(mode)
	if err != nil {
		return nil, err
	}

	c, err := a.newCompiler(mode)
	if err != nil {
		return nil, err
	}

	tree := selection.New(a.loadCatalog(cfg.Distro))
	if err := cfg.ApplyTo(tree, c.Specials()); err != nil {
		return nil, err
	}

	return &build{cfg: cfg, tree: tree, compiler: c}, nil
}

// sourceFlags are the flags that say which selections to build from.
type sourceFlags struct {
	file         string
	profile      string
	mode         string
	inputs       map[string]string
	customScript string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Build configuration file (YAML)")
	cmd.Flags().StringVarP(&s.profile, "profile", "p", "", "Start from a saved or built-in profile")
	cmd.Flags().StringVarP(&s.mode, "mode", "m", "", "Output mode: quiet or verbose")
	cmd.Flags().StringToStringVarP(&s.inputs, "input", "i", nil, "Entry input as key=value (e.g. set_hostname=desk)")
	cmd.Flags().StringVar(&s.customScript, "custom-script", "", "Commands appended to the end of the script")
}

// load combines the profile, the file and the positional selections, in
// that order, into one build configuration.
func (s *sourceFlags) load(a *app, args []string) (*config.BuildConfig, error) {
	cfg := &config.BuildConfig{}

	if s.profile != "" {
		store := a.profileStore()
		p, err := store.Get(s.profile)
		if err != nil {
			return nil, err
		}
		if err := store.Touch(p.ID); err != nil {
			logging.Warn("could not record profile use", "profile", p.Name, "err", err)
		}
		cfg = config.FromProfile(p)
	}

	if s.file != "" {
		fromFile, err := config.ReadFile(s.file)
		if err != nil {
			return nil, err
		}
		merge(cfg, fromFile)
	}

	cfg.Selections = append(cfg.Selections, args...)
	if s.mode != "" {
		cfg.OutputMode = s.mode
	}
	if len(s.inputs) > 0 && cfg.Inputs == nil {
		cfg.Inputs = make(map[string]string, len(s.inputs))
	}
	for k, v := range s.inputs {
		cfg.Inputs[k] = v
	}
	if s.customScript != "" {
		cfg.CustomScript = s.customScript
	}

	return cfg, nil
}

// merge adds src on top of dst. Selections accumulate; other values
// replace.
func merge(dst, src *config.BuildConfig) {
	if src.Distro != "" {
		dst.Distro = src.Distro
	}
	if src.OutputMode != "" {
		dst.OutputMode = src.OutputMode
	}
	dst.Selections = append(dst.Selections, src.Selections...)
	if len(src.Inputs) > 0 && dst.Inputs == nil {
		dst.Inputs = make(map[string]string, len(src.Inputs))
	}
	for k, v := range src.Inputs {
		dst.Inputs[k] = v
	}
	if src.CustomScript != "" {
		dst.CustomScript = src.CustomScript
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printNotices prints forced selections and warnings from a build.
func printNotices(w io.Writer, res *compiler.Result) {
	for _, f := range res.Forced {
		msg := fmt.Sprintf("%s has been automatically selected (required by %s)", f.Name, f.Trigger)
		if f.Notice != "" {
			msg = f.Notice
		}
		fmt.Fprintf(w, "%s %s\n", tui.InfoStyle.Render("ℹ"), msg)
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "%s %s\n", tui.WarningStyle.Render("⚠"), warning.String())
	}
}

// printInstructions prints how to run the written script.
func printInstructions(w io.Writer, path string) {
	fmt.Fprintf(w, "\n%s Script written to %s\n", tui.SuccessStyle.Render("✓"), path)
	fmt.Fprintln(w, "\nTo run it:")
	for _, line := range generator.RunInstructions(path) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// outputPath resolves the script path from a flag value and the configured
// output directory.
func (a *app) outputPath(flag, distro string) (string, error) {
	path := flag
	if path == "" {
		path = filepath.Join(a.cfg.OutputDir, generator.DefaultFileName(distro))
	}
	expanded, err := globalconfig.ExpandPath(path)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(flag, string(filepath.Separator)) {
		expanded = filepath.Join(expanded, generator.DefaultFileName(distro))
	}
	return expanded, nil
}
