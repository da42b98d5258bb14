package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
)

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		hostname string
		valid    bool
	}{
		{"valid-host", true},
		{"host123", true},
		{"a", true},
		{"fedora.local", true},
		{"Workstation-01", true},
		{"-invalid", false},
		{"invalid-", false},
		{"has space", false},
		{"my host!", false},
		{"double..dot", false},
		{strings.Repeat("a", 64), false},
		{strings.Repeat("abcdefg.", 32) + "abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname[:min(20, len(tt.hostname))], func(t *testing.T) {
			err := ValidateHostname(tt.hostname)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), HostnameRule)
			}
		})
	}
}

func TestValidateSwapSize(t *testing.T) {
	tests := []struct {
		input string
		want  int
		valid bool
	}{
		{"8", 8, true},
		{"1", 1, true},
		{" 32 ", 32, true},
		{"0", 0, false},
		{"33", 0, false},
		{"-4", 0, false},
		{"8G", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateSwapSize(tt.input)
			if !tt.valid {
				require.Error(t, err)
				assert.Contains(t, err.Error(), SwapSizeRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func validCatalog() *catalog.Catalog {
	cat := catalog.New("fedora")
	cat.Add(catalog.Category{Key: "system_config", Name: "System Configuration", Subcategories: []catalog.Subcategory{
		{Key: "recommended_settings", Name: "Recommended Settings", Entries: []catalog.Entry{
			{Key: "set_hostname", Name: "Set Hostname", Command: catalog.Command{"hostnamectl set-hostname"}},
		}},
	}})
	cat.Add(catalog.Category{Key: "internet_apps", Name: "Internet Applications", Subcategories: []catalog.Subcategory{
		{Key: "browsers", Name: "Web Browsers", Entries: []catalog.Entry{
			{Key: "brave", Name: "Brave", InstallationTypes: []catalog.InstallationType{
				{Key: "flatpak", Command: catalog.Command{"flatpak install -y flathub com.brave.Browser"}},
			}},
		}},
	}})
	return cat
}

func TestValidateCatalog(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		issues := NewValidator("fedora.json").ValidateCatalog(validCatalog())
		assert.Empty(t, issues)
	})

	t.Run("empty catalog", func(t *testing.T) {
		issues := NewValidator("fedora.json").ValidateCatalog(catalog.New("fedora"))
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
	})

	t.Run("defects", func(t *testing.T) {
		cat := validCatalog()
		cat.Add(catalog.Category{Key: "gaming_apps", Name: "Gaming", Subcategories: []catalog.Subcategory{
			{Key: "tools", Name: "Tools", Entries: []catalog.Entry{
				{Key: "gamemode", Name: "GameMode"},
				{Key: "gamemode2", Name: "GameMode", Command: catalog.Command{"dnf -y install gamemode"}},
				{Key: "steam", Name: "Steam", Command: catalog.Command{"dnf -y install steam"}, InstallationTypes: []catalog.InstallationType{
					{Key: "flatpak"},
				}},
			}},
		}})

		result := &Result{Issues: NewValidator("fedora.json").ValidateCatalog(cat)}
		assert.Equal(t, 3, result.ErrorCount())
		assert.Equal(t, 1, result.WarningCount())

		var fields []string
		for _, issue := range result.Issues {
			fields = append(fields, issue.Field)
		}
		assert.Contains(t, fields, "gaming_apps/tools/gamemode")
		assert.Contains(t, fields, "gaming_apps/tools/gamemode2")
		assert.Contains(t, fields, "gaming_apps/tools/steam:flatpak")
	})
}

func TestValidateEmbeddedCatalog(t *testing.T) {
	cat, err := catalog.NewLoader(logging.Discard()).LoadEmbedded("fedora")
	require.NoError(t, err)

	issues := NewValidator("fedora").ValidateCatalog(cat)
	assert.Empty(t, issues)
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		expectedErrors int
		expectedWarns  int
	}{
		{
			name:    "complete template",
			content: "#!/bin/bash\n{{system_upgrade}}\n{{system_config}}\n{{app_install}}\n{{customization}}\n{{custom_script}}\necho {hostname}\n",
		},
		{
			name:           "missing sections",
			content:        "#!/bin/bash\n{{system_upgrade}}\n{{app_install}}\necho {hostname}\n",
			expectedErrors: 3,
		},
		{
			name:          "no hostname and no shebang",
			content:       "{{system_upgrade}}{{system_config}}{{app_install}}{{customization}}{{custom_script}}",
			expectedWarns: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &Result{Issues: ValidateTemplate("template.sh", tt.content)}
			assert.Equal(t, tt.expectedErrors, result.ErrorCount())
			assert.Equal(t, tt.expectedWarns, result.WarningCount())
		})
	}
}

func TestValidateAll(t *testing.T) {
	t.Run("missing template file", func(t *testing.T) {
		result := NewValidator("fedora.json").ValidateAll(validCatalog(), filepath.Join(t.TempDir(), "missing.sh"))
		assert.True(t, result.HasErrors())
		assert.Equal(t, 1, result.ErrorCount())
	})

	t.Run("embedded template", func(t *testing.T) {
		result := NewValidator("fedora.json").ValidateAll(validCatalog(), "")
		assert.False(t, result.HasErrors())
		assert.Equal(t, 0, result.WarningCount())
	})

	t.Run("template file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.sh")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\n{{app_install}}\n"), 0644))

		result := NewValidator("fedora.json").ValidateAll(validCatalog(), path)
		assert.Equal(t, 4, result.ErrorCount())
		assert.Equal(t, 1, result.WarningCount())
	})
}
