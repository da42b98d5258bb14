package compiler

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jaspreet-dot-casa/nattd/script"
)

const (
	previewHeader = "(...)  # Script header and initial setup\n\n"
	previewFooter = "(...)  # Script footer"
)

// Result is the output of one build.
type Result struct {
	Mode OutputMode

	// Sections maps section keys to rendered text
	Sections map[string]string

	// Hostname is substituted for {hostname}
	Hostname string

	// HostnameSet reports whether a hostname entry was selected
	HostnameSet bool

	// Values holds resolved special inputs by entry key
	Values map[string]string

	Warnings []Warning
	Forced   []Forced
}

// Section returns the text of one section.
func (r *Result) Section(key string) string {
	return r.Sections[key]
}

// Preview returns the sections under title comments, between placeholder
// lines for the template boilerplate. Blank sections are left out.
func (r *Result) Preview() string {
	title := cases.Title(language.English)

	var sb strings.Builder
	sb.WriteString(previewHeader)
	for _, key := range script.Sections {
		content := r.Sections[key]
		if strings.TrimSpace(content) == "" {
			continue
		}
		sb.WriteString("# ")
		sb.WriteString(title.String(strings.ReplaceAll(key, "_", " ")))
		sb.WriteString("\n")
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	sb.WriteString(previewFooter)

	return strings.ReplaceAll(sb.String(), script.HostnameToken, r.Hostname)
}

// Render substitutes every section placeholder in template, then every
// {hostname} token. Empty sections substitute to nothing; unknown tokens
// are left alone.
func (r *Result) Render(template string) string {
	pairs := make([]string, 0, 2*len(script.Sections))
	for _, key := range script.Sections {
		pairs = append(pairs, script.Placeholder(key), r.Sections[key])
	}
	out := strings.NewReplacer(pairs...).Replace(template)

	return strings.ReplaceAll(out, script.HostnameToken, r.Hostname)
}
