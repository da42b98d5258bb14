package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/profiles"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

const sampleConfig = `
distro: fedora
output_mode: quiet
selections:
  - system_config/recommended_settings/set_hostname
  - internet_apps/browsers/brave:flatpak
  - essential_apps/git
inputs:
  set_hostname: workstation
  extra_swap_space: "16"
custom_script: |
  echo done
`

func embeddedTree(t *testing.T) *selection.Tree {
	t.Helper()
	cat, err := catalog.NewLoader(logging.Discard()).LoadEmbedded("fedora")
	require.NoError(t, err)
	return selection.New(cat)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "fedora", cfg.Distro)
	assert.Equal(t, "quiet", cfg.OutputMode)
	assert.Len(t, cfg.Selections, 3)
	assert.Equal(t, "workstation", cfg.Inputs["set_hostname"])
	assert.Equal(t, "echo done\n", cfg.CustomScript)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("selection:\n  - essential_apps/git\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Selections)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "build.yaml")

	cfg := &BuildConfig{
		Distro:     "fedora",
		OutputMode: "verbose",
		Selections: []string{"gaming_apps/launchers/steam:dnf"},
		Inputs:     map[string]string{"extra_swap_space": "4"},
	}
	require.NoError(t, WriteFile(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# nattd build configuration"))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyTo(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	tree := embeddedTree(t)
	require.NoError(t, cfg.ApplyTo(tree, compiler.DefaultSpecials()))

	assert.Equal(t, 3, tree.SelectedCount())
	assert.Equal(t, "workstation", tree.Find("system_config/recommended_settings/set_hostname").EnteredName)
	assert.Equal(t, "16", tree.Find("advanced_settings/system_settings/extra_swap_space").EnteredSize)
	assert.Equal(t, "flatpak", tree.Find("internet_apps/browsers/brave").InstallationType)
	assert.Equal(t, "echo done\n", tree.CustomScript)
}

func TestApplyToDefaultsInstallationType(t *testing.T) {
	cfg := &BuildConfig{Selections: []string{"gaming_apps/launchers/steam"}}
	tree := embeddedTree(t)
	require.NoError(t, cfg.ApplyTo(tree, compiler.DefaultSpecials()))

	steam := tree.Find("gaming_apps/launchers/steam")
	assert.Equal(t, steam.Def.DefaultInstallationType(), steam.InstallationType)
}

func TestApplyToReportsEveryProblem(t *testing.T) {
	cfg := &BuildConfig{
		Selections: []string{
			"essential_apps/git",
			"essential_apps/nope",
			"internet_apps/browsers/brave:snap",
		},
		Inputs: map[string]string{"git": "x", "set_hostname": "box"},
	}
	tree := embeddedTree(t)

	err := cfg.ApplyTo(tree, compiler.DefaultSpecials())
	require.Error(t, err)
	assert.True(t, errors.Is(err, selection.ErrUnknownEntry))
	assert.True(t, errors.Is(err, selection.ErrUnknownInstallationType))
	assert.Contains(t, err.Error(), `input "git"`)

	// Valid parts still apply
	assert.True(t, tree.Find("essential_apps/git").Selected)
	assert.Equal(t, "box", tree.Find("system_config/set_hostname").EnteredName)
}

func TestMode(t *testing.T) {
	mode, err := (&BuildConfig{}).Mode(compiler.Quiet)
	require.NoError(t, err)
	assert.Equal(t, compiler.Quiet, mode)

	mode, err = (&BuildConfig{OutputMode: "Verbose"}).Mode(compiler.Quiet)
	require.NoError(t, err)
	assert.Equal(t, compiler.Verbose, mode)

	_, err = (&BuildConfig{OutputMode: "loud"}).Mode(compiler.Quiet)
	assert.Error(t, err)
}

func TestNewBuildConfigFromFormResult(t *testing.T) {
	result := &tui.FormResult{
		OutputMode:   "quiet",
		Selections:   []string{"essential_apps/essential_apps/git"},
		Inputs:       map[string]string{"set_hostname": "box"},
		CustomScript: tui.DefaultCustomScript,
	}

	cfg := NewBuildConfigFromFormResult("fedora", result)

	assert.Equal(t, "fedora", cfg.Distro)
	assert.Equal(t, result.Selections, cfg.Selections)
	assert.Equal(t, result.Inputs, cfg.Inputs)
	assert.Equal(t, tui.DefaultCustomScript, cfg.CustomScript)
	assert.Equal(t, result, cfg.ToFormResult())

	// Copies, not aliases
	cfg.Selections[0] = "changed"
	assert.Equal(t, "essential_apps/essential_apps/git", result.Selections[0])
}

func TestProfileRoundTrip(t *testing.T) {
	cfg := &BuildConfig{
		Distro:     "fedora",
		OutputMode: "quiet",
		Selections: []string{"essential_apps/git"},
		Inputs:     map[string]string{"set_hostname": "box"},
	}

	p := cfg.ToProfile("Laptop", "my laptop")
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, "my laptop", p.Description)
	assert.Equal(t, cfg, FromProfile(p))
}

func TestBuiltInProfilesResolve(t *testing.T) {
	for _, p := range profiles.BuiltIn() {
		t.Run(p.Name, func(t *testing.T) {
			tree := embeddedTree(t)
			assert.NoError(t, FromProfile(p).ApplyTo(tree, compiler.DefaultSpecials()))
			assert.Equal(t, len(p.Selections), tree.SelectedCount())
		})
	}
}
