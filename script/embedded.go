// Package script provides the embedded shell script template.
package script

import (
	_ "embed"
	"fmt"
	"os"
)

// Template contains the shell script template with section placeholders.
// Placeholders like {{system_upgrade}} and {hostname} are substituted when
// the full script is assembled.
//
//go:embed template.sh
var Template string

// Section keys, in the order sections appear in a script.
const (
	SectionSystemUpgrade = "system_upgrade"
	SectionSystemConfig  = "system_config"
	SectionAppInstall    = "app_install"
	SectionCustomization = "customization"
	SectionCustomScript  = "custom_script"
)

// HostnameToken is replaced with the resolved hostname.
const HostnameToken = "{hostname}"

// Sections lists every section key in script order.
var Sections = []string{
	SectionSystemUpgrade,
	SectionSystemConfig,
	SectionAppInstall,
	SectionCustomization,
	SectionCustomScript,
}

// Placeholder returns the template token for a section key.
func Placeholder(section string) string {
	return "{{" + section + "}}"
}

// Load returns the template at path, or the embedded template when path is
// empty.
func Load(path string) (string, error) {
	if path == "" {
		return Template, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(raw), nil
}
