package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTemplateNotEmpty(t *testing.T) {
	if Template == "" {
		t.Error("Template should not be empty")
	}
}

func TestTemplateStartsWithShebang(t *testing.T) {
	if !strings.HasPrefix(Template, "#!/bin/bash") {
		t.Error("Template should start with #!/bin/bash")
	}
}

func TestTemplateContainsPlaceholders(t *testing.T) {
	for _, section := range Sections {
		if !strings.Contains(Template, Placeholder(section)) {
			t.Errorf("Template should contain placeholder %s", Placeholder(section))
		}
	}
	if !strings.Contains(Template, HostnameToken) {
		t.Errorf("Template should contain %s", HostnameToken)
	}
}

func TestTemplateDefinesLogHelper(t *testing.T) {
	if !strings.Contains(Template, "generate_log()") {
		t.Error("Template should define the generate_log helper")
	}
}

func TestPlaceholder(t *testing.T) {
	if got := Placeholder(SectionAppInstall); got != "{{app_install}}" {
		t.Errorf("Placeholder() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	got, err := Load("")
	if err != nil || got != Template {
		t.Fatalf("Load(\"\") should return the embedded template, err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "custom.sh")
	if err := os.WriteFile(path, []byte("#!/bin/bash\n{{app_install}}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "#!/bin/bash\n{{app_install}}\n" {
		t.Errorf("Load() = %q", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
