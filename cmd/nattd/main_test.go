package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/nattd/pkg/doctor"
)

const (
	pathGit    = "essential_apps/essential_apps/git"
	pathCodecs = "system_config/multimedia_codecs/install_multimedia_codecs"
	pathBrave  = "internet_apps/browsers/brave"
)

// execute runs the root command with an isolated config file and returns
// stdout and stderr.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "nattd", rootCmd.Use)
	assert.Equal(t, "Fedora post-install script generator", rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCmdHelp(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "nattd")
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "build")
	assert.Contains(t, output, "preview")
	assert.Contains(t, output, "profiles")
	assert.Contains(t, output, "validate")
}

func TestRootCmdVersion(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--version"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "nattd version")
}

func TestGenerateCmd(t *testing.T) {
	// Skip this test as generate command requires an interactive TTY
	// The TUI forms are tested separately in pkg/tui/form_test.go
	t.Skip("generate command requires interactive TTY")
}

func TestBuildCmd(t *testing.T) {
	t.Run("writes script file", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "out", "setup.sh")

		stdout, _, err := execute(t, dir, "build", "-o", output, pathGit)
		require.NoError(t, err)

		assert.Contains(t, stdout, "Script written to "+output)
		assert.Contains(t, stdout, "sudo ./setup.sh")

		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(content), "dnf -y install git")
		assert.NotContains(t, string(content), "{{")
	})

	t.Run("stdout with forced selection notice", func(t *testing.T) {
		dir := t.TempDir()

		stdout, stderr, err := execute(t, dir, "build", "--stdout", pathCodecs)
		require.NoError(t, err)

		assert.Contains(t, stdout, "#!/bin/bash")
		assert.Contains(t, stdout, "dnf -y swap ffmpeg-free ffmpeg --allowerasing")
		assert.Contains(t, stderr, "RPM Fusion has been automatically selected")
	})

	t.Run("verbose mode keeps output", func(t *testing.T) {
		dir := t.TempDir()

		quiet, _, err := execute(t, dir, "build", "--stdout", pathGit)
		require.NoError(t, err)
		verbose, _, err := execute(t, dir, "build", "--stdout", "-m", "verbose", pathGit)
		require.NoError(t, err)

		assert.Contains(t, quiet, "dnf -y install git > /dev/null 2>&1")
		assert.NotContains(t, verbose, "dnf -y install git > /dev/null 2>&1")
	})

	t.Run("hostname input", func(t *testing.T) {
		dir := t.TempDir()

		stdout, _, err := execute(t, dir, "build", "--stdout",
			"-i", "set_hostname=desk", "system_config/recommended_settings/set_hostname")
		require.NoError(t, err)
		assert.Contains(t, stdout, "desk")
	})

	t.Run("unknown selection fails", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := execute(t, dir, "build", "--stdout", "nope/nothing/here")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid build configuration")
	})

	t.Run("invalid mode fails", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := execute(t, dir, "build", "--stdout", "-m", "loud", pathGit)
		require.Error(t, err)
	})

	t.Run("build file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "laptop.yaml")
		require.NoError(t, os.WriteFile(file, []byte(`selections:
  - `+pathBrave+`:flatpak
custom_script: echo laptop-ready
`), 0644))

		stdout, _, err := execute(t, dir, "build", "--stdout", "-f", file)
		require.NoError(t, err)
		assert.Contains(t, stdout, "flatpak")
		assert.Contains(t, stdout, "echo laptop-ready")
	})
}

func TestPreviewCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "preview", pathGit)
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Script header and initial setup")
	assert.Contains(t, stdout, "# App Install")
	assert.Contains(t, stdout, "dnf -y install git")
	assert.Contains(t, stdout, "# Script footer")
}

func TestSummaryCmd(t *testing.T) {
	t.Run("prints markdown", func(t *testing.T) {
		dir := t.TempDir()

		stdout, _, err := execute(t, dir, "summary", pathGit)
		require.NoError(t, err)
		assert.Contains(t, stdout, "# Script Summary")
		assert.Contains(t, stdout, "**Git**")
	})

	t.Run("writes file", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "summary.md")

		stdout, _, err := execute(t, dir, "summary", "-o", output, pathGit)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Summary written to")

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(content), "**Git**")
	})
}

func TestCatalogCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "entries in the fedora catalog")
	assert.Contains(t, stdout, pathGit)
	assert.Contains(t, stdout, "types: ")

	stdout, _, err = execute(t, dir, "catalog", "-c", "internet_apps")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Web Browsers:")
	assert.NotContains(t, stdout, pathGit)

	_, _, err = execute(t, dir, "catalog", "-c", "nope")
	require.Error(t, err)
}

func TestValidateCmd(t *testing.T) {
	t.Run("embedded catalog and template", func(t *testing.T) {
		dir := t.TempDir()

		stdout, _, err := execute(t, dir, "validate")
		require.NoError(t, err)
		assert.NotContains(t, stdout, "[ERROR]")
	})

	t.Run("missing template", func(t *testing.T) {
		dir := t.TempDir()

		stdout, _, err := execute(t, dir, "--template", filepath.Join(dir, "missing.sh"), "validate")
		require.Error(t, err)
		assert.Contains(t, stdout, "[ERROR]")
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestProfilesCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "profiles", "save", "Laptop", "-d", "My laptop", pathGit)
	require.NoError(t, err)
	assert.Contains(t, stdout, `Profile "Laptop" saved with 1 selections`)

	stdout, _, err = execute(t, dir, "profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Essentials")
	assert.Contains(t, stdout, "built-in")
	assert.Contains(t, stdout, "Laptop")
	assert.Contains(t, stdout, "My laptop")

	stdout, _, err = execute(t, dir, "profiles", "show", "Laptop")
	require.NoError(t, err)
	assert.Contains(t, stdout, pathGit)

	stdout, _, err = execute(t, dir, "build", "--stdout", "-p", "Laptop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dnf -y install git")

	_, _, err = execute(t, dir, "profiles", "delete", "Essentials")
	require.Error(t, err)

	_, _, err = execute(t, dir, "profiles", "save", "Broken", "nope/nothing/here")
	require.Error(t, err)

	stdout, _, err = execute(t, dir, "profiles", "delete", "Laptop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "deleted")

	_, _, err = execute(t, dir, "profiles", "show", "Laptop")
	require.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "config.yaml"))

	content, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "output_mode: quiet")

	_, _, err = execute(t, dir, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, dir, "init", "--force")
	require.NoError(t, err)
}

func TestConfigFileDrivesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`output_mode: verbose
output_dir: `+filepath.Join(dir, "scripts")+`
`), 0644))

	stdout, _, err := execute(t, dir, "build", pathGit)
	require.NoError(t, err)

	path := filepath.Join(dir, "scripts", "fedora_things_to_do.sh")
	assert.Contains(t, stdout, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "dnf -y install git > /dev/null 2>&1")
}

// fakeExecutor reports only the tools in installed.
type fakeExecutor struct {
	installed map[string]bool
	fixes     []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found")
}

func (f *fakeExecutor) Run(string, ...string) (string, error) { return "1.2.3", nil }

func (f *fakeExecutor) CombinedOutput(_ string, args ...string) ([]byte, error) {
	f.fixes = append(f.fixes, args[len(args)-1])
	return nil, nil
}

func (f *fakeExecutor) ReadFile(string) ([]byte, error) {
	return []byte("ID=fedora\nPRETTY_NAME=\"Fedora Linux 41\"\n"), nil
}

func TestRunDoctor(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		exec := &fakeExecutor{installed: map[string]bool{
			"bash": true, "sudo": true, "dnf": true, "flatpak": true, "wl-copy": true,
		}}

		var buf bytes.Buffer
		err := runDoctor(&buf, doctor.NewCheckerWithExecutor(exec).CheckAll(), doctor.NewFixerWithExecutor(exec), false)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Fedora Linux 41")
		assert.Contains(t, buf.String(), "6/6 checks passed")
	})

	t.Run("missing sudo", func(t *testing.T) {
		exec := &fakeExecutor{installed: map[string]bool{"bash": true, "dnf": true}}

		var buf bytes.Buffer
		err := runDoctor(&buf, doctor.NewCheckerWithExecutor(exec).CheckAll(), doctor.NewFixerWithExecutor(exec), false)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "fix: ")
		assert.Empty(t, exec.fixes)
	})

	t.Run("fix runs commands", func(t *testing.T) {
		exec := &fakeExecutor{installed: map[string]bool{"bash": true, "sudo": true, "dnf": true}}

		var buf bytes.Buffer
		err := runDoctor(&buf, doctor.NewCheckerWithExecutor(exec).CheckAll(), doctor.NewFixerWithExecutor(exec), true)
		require.NoError(t, err)
		assert.Contains(t, exec.fixes, "sudo dnf -y install flatpak")
		assert.Contains(t, exec.fixes, "sudo dnf -y install wl-clipboard")
	})
}

func TestSubcommandHelp(t *testing.T) {
	subcommands := []string{"generate", "build", "preview", "summary", "catalog", "validate", "profiles", "init", "doctor"}

	for _, sub := range subcommands {
		t.Run(sub, func(t *testing.T) {
			rootCmd := newRootCmd()
			rootCmd.SetArgs([]string{sub, "--help"})

			var buf bytes.Buffer
			rootCmd.SetOut(&buf)

			err := rootCmd.Execute()
			require.NoError(t, err)
			assert.NotEmpty(t, buf.String())
		})
	}
}
