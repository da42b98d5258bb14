// Package generator writes generated scripts and their summaries to disk.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/jaspreet-dot-casa/nattd/data"
)

// ScriptSuffix is appended to the distro name to form the script file name.
const ScriptSuffix = "_things_to_do.sh"

// DefaultFileName returns the script file name for distro.
func DefaultFileName(distro string) string {
	if distro == "" {
		distro = data.DefaultDistro
	}
	return distro + ScriptSuffix
}

// WriteScript writes content to path atomically and marks it executable.
func WriteScript(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("failed to make script executable: %w", err)
	}
	return nil
}

// RunInstructions returns the shell commands needed to run the script.
func RunInstructions(path string) []string {
	name := filepath.Base(path)
	dir := filepath.Dir(path)

	var lines []string
	if dir != "." {
		lines = append(lines, "cd "+dir)
	}
	return append(lines,
		"chmod +x "+name,
		"sudo ./"+name,
	)
}
