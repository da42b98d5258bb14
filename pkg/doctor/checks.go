package doctor

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	CombinedOutput(name string, args ...string) ([]byte, error)
	ReadFile(path string) ([]byte, error)
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	// Some tools print their version to stderr
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// CombinedOutput runs a command and returns combined stdout and stderr.
func (e *RealExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// ReadFile reads a file from disk.
func (e *RealExecutor) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var defaultVersionRegex = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec CommandExecutor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  GetFixCommand(id),
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	check.Status = StatusOK
	check.Message = "installed"
	if version := extractVersion(output, versionRegex); version != "" {
		check.Message = version
	}
	return check
}

// extractVersion extracts a version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		regex = defaultVersionRegex
	}
	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseOSRelease reads KEY=value lines, unquoting values.
func parseOSRelease(data []byte) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}

// CheckOSRelease checks that the machine runs Fedora.
func CheckOSRelease(exec CommandExecutor) Check {
	check := Check{
		ID:          IDOSRelease,
		Name:        "Fedora",
		Description: "Generated scripts target Fedora",
	}

	data, err := exec.ReadFile(OSReleasePath)
	if err != nil {
		check.Status = StatusWarning
		check.Message = "cannot read " + OSReleasePath
		return check
	}

	fields := parseOSRelease(data)
	name := fields["PRETTY_NAME"]
	if name == "" {
		name = fields["ID"]
	}

	if fields["ID"] != "fedora" {
		check.Status = StatusWarning
		check.Message = "not Fedora (" + name + ")"
		return check
	}

	check.Status = StatusOK
	check.Message = name
	return check
}

// CheckBash checks if bash is installed.
func CheckBash(exec CommandExecutor) Check {
	return checkTool(exec, IDBash, "bash", "Runs generated scripts",
		[]string{"--version"}, regexp.MustCompile(`version (\d+\.\d+\.\d+)`))
}

// CheckSudo checks if sudo is installed.
func CheckSudo(exec CommandExecutor) Check {
	return checkTool(exec, IDSudo, "sudo", "Generated scripts run as root",
		[]string{"--version"}, regexp.MustCompile(`Sudo version (\d+\.\d+\.\d+(?:p\d+)?)`))
}

// CheckDnf checks if dnf is installed. dnf5 prints "dnf5 version 5.x".
func CheckDnf(exec CommandExecutor) Check {
	return checkTool(exec, IDDnf, "DNF", "Installs packages and repositories",
		[]string{"--version"}, regexp.MustCompile(`(?m)^(?:dnf5 version )?(\d+\.\d+\.\d+)`))
}

// CheckFlatpak checks if flatpak is installed.
func CheckFlatpak(exec CommandExecutor) Check {
	check := checkTool(exec, IDFlatpak, "Flatpak", "Needed by Flatpak installation types",
		[]string{"--version"}, regexp.MustCompile(`Flatpak (\d+\.\d+\.\d+)`))
	// The generated script can enable Flathub itself
	if check.Status == StatusMissing {
		check.Status = StatusWarning
	}
	return check
}

// clipboardTools are tried in order.
var clipboardTools = []string{"wl-copy", "xclip", "xsel"}

// CheckClipboard checks for a clipboard helper used by the preview's copy key.
func CheckClipboard(exec CommandExecutor) Check {
	check := Check{
		ID:          IDClipboard,
		Name:        "Clipboard",
		Description: "Copying scripts from the preview",
		FixCommand:  GetFixCommand(IDClipboard),
	}

	for _, tool := range clipboardTools {
		if _, err := exec.LookPath(tool); err == nil {
			check.Status = StatusOK
			check.Message = tool
			return check
		}
	}

	check.Status = StatusMissing
	check.Message = "install one of " + strings.Join(clipboardTools, ", ")
	return check
}
