package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/glamour"

	"github.com/jaspreet-dot-casa/nattd/pkg/compiler"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

// escapeMarkdownTable escapes characters that would break markdown table cells.
func escapeMarkdownTable(s string) string {
	// Escape pipe characters which break table cells
	s = strings.ReplaceAll(s, "|", "\\|")
	// Escape newlines which break table rows
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// escapeMarkdownText escapes characters for general markdown text.
func escapeMarkdownText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}

// SummaryData holds all data for the summary markdown.
type SummaryData struct {
	Distro       string
	Mode         string
	Hostname     string
	HostnameSet  bool
	Categories   []CategorySummary
	Forced       []ForcedSummary
	Warnings     []string
	CustomScript bool
}

// CategorySummary lists the selected entries of one category.
type CategorySummary struct {
	Name    string
	Entries []EntrySummary
}

// EntrySummary represents a single selected entry.
type EntrySummary struct {
	Name             string
	Path             string
	InstallationType string
	Input            string
	Forced           bool
}

// ForcedSummary represents an entry selected by a dependency rule.
type ForcedSummary struct {
	Name    string
	Trigger string
	Notice  string
}

// BuildSummaryData collects the summary of a compiled tree.
func BuildSummaryData(tree *selection.Tree, res *compiler.Result) SummaryData {
	forced := make(map[string]bool, len(res.Forced))
	for _, f := range res.Forced {
		forced[f.Path] = true
	}

	data := SummaryData{
		Distro:       tree.Distro,
		Mode:         string(res.Mode),
		Hostname:     escapeMarkdownTable(res.Hostname),
		HostnameSet:  res.HostnameSet,
		CustomScript: strings.TrimSpace(tree.CustomScript) != "",
	}

	for _, c := range tree.Categories {
		cs := CategorySummary{Name: escapeMarkdownText(c.Name)}
		for _, sub := range c.Subcategories {
			for _, e := range sub.Entries {
				if !e.Selected {
					continue
				}
				cs.Entries = append(cs.Entries, EntrySummary{
					Name:             escapeMarkdownText(e.Name()),
					Path:             e.Path,
					InstallationType: e.InstallationType,
					Input:            escapeMarkdownText(res.Values[e.Key()]),
					Forced:           forced[e.Path],
				})
			}
		}
		// Skip empty categories
		if len(cs.Entries) > 0 {
			data.Categories = append(data.Categories, cs)
		}
	}

	for _, f := range res.Forced {
		data.Forced = append(data.Forced, ForcedSummary{
			Name:    escapeMarkdownText(f.Name),
			Trigger: f.Trigger,
			Notice:  escapeMarkdownText(f.Notice),
		})
	}
	for _, w := range res.Warnings {
		data.Warnings = append(data.Warnings, escapeMarkdownText(w.String()))
	}

	return data
}

// Summary returns the markdown summary component for data.
func Summary(data SummaryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder

		sb.WriteString("# Script Summary\n\n")
		sb.WriteString("| Setting | Value |\n|---|---|\n")
		fmt.Fprintf(&sb, "| Distro | %s |\n", escapeMarkdownTable(data.Distro))
		fmt.Fprintf(&sb, "| Output mode | %s |\n", escapeMarkdownTable(data.Mode))
		if data.HostnameSet {
			fmt.Fprintf(&sb, "| Hostname | %s |\n", data.Hostname)
		} else {
			sb.WriteString("| Hostname | unchanged |\n")
		}
		if data.CustomScript {
			sb.WriteString("| Custom script | yes |\n")
		} else {
			sb.WriteString("| Custom script | no |\n")
		}

		sb.WriteString("\n## Selections\n\n")
		if len(data.Categories) == 0 {
			sb.WriteString("Nothing selected.\n")
		}
		for _, c := range data.Categories {
			fmt.Fprintf(&sb, "### %s\n\n", c.Name)
			for _, e := range c.Entries {
				fmt.Fprintf(&sb, "- [x] **%s**", e.Name)
				if e.InstallationType != "" {
					fmt.Fprintf(&sb, " (%s)", e.InstallationType)
				}
				if e.Input != "" {
					fmt.Fprintf(&sb, ": %s", e.Input)
				}
				if e.Forced {
					sb.WriteString(" _auto-selected_")
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}

		if len(data.Forced) > 0 {
			sb.WriteString("## Automatic Selections\n\n")
			for _, f := range data.Forced {
				fmt.Fprintf(&sb, "- **%s** (required by `%s`)", f.Name, f.Trigger)
				if f.Notice != "" {
					fmt.Fprintf(&sb, ": %s", f.Notice)
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}

		if len(data.Warnings) > 0 {
			sb.WriteString("## Warnings\n\n")
			for _, msg := range data.Warnings {
				fmt.Fprintf(&sb, "- %s\n", msg)
			}
			sb.WriteString("\n")
		}

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// RenderSummary renders the summary markdown to a string.
func RenderSummary(ctx context.Context, data SummaryData) (string, error) {
	var buf bytes.Buffer
	if err := Summary(data).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}

// GenerateSummary writes the summary markdown file.
func GenerateSummary(data SummaryData, outputPath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	// Close file and remove on error
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close summary file: %w", cerr)
		}
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	// Assign to the named err so the deferred cleanup sees it
	if err = Summary(data).Render(context.Background(), f); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	return nil
}

// RenderTerminal formats markdown for display in a terminal.
func RenderTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
