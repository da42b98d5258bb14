package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PreviewAction is what the user chose when leaving the preview.
type PreviewAction int

const (
	ActionQuit PreviewAction = iota
	ActionWrite
)

// Clipboard message types
type clipboardCopiedMsg struct {
	success bool
	err     error
}

// Preview is a scrollable pager over the script preview.
type Preview struct {
	title   string
	content string
	script  string // copied with "c"

	viewport viewport.Model
	help     help.Model
	keys     PagerKeyMap
	ready    bool

	action  PreviewAction
	message string

	copy func(string) error
}

// NewPreview creates a pager showing content. The copy action puts script
// on the clipboard.
func NewPreview(title, content, script string) *Preview {
	return &Preview{
		title:   title,
		content: content,
		script:  script,
		help:    help.New(),
		keys:    DefaultPagerKeyMap(),
		copy:    clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (p *Preview) Init() tea.Cmd {
	return nil
}

// Action returns the action chosen when the pager exited.
func (p *Preview) Action() PreviewAction {
	return p.action
}

// Update implements tea.Model.
func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(p.headerView())
		footerHeight := lipgloss.Height(p.footerView())
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !p.ready {
			p.viewport = viewport.New(msg.Width, height)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = height
		}
		p.help.Width = msg.Width
		return p, nil

	case clipboardCopiedMsg:
		if msg.success {
			p.message = "✓ Copied script to clipboard"
		} else {
			p.message = fmt.Sprintf("Failed to copy: %v", msg.err)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.action = ActionQuit
			return p, tea.Quit
		case key.Matches(msg, p.keys.Write):
			p.action = ActionWrite
			return p, tea.Quit
		case key.Matches(msg, p.keys.Copy):
			return p, p.copyScript()
		case key.Matches(msg, p.keys.Help):
			p.help.ShowAll = !p.help.ShowAll
			return p, nil
		case key.Matches(msg, p.keys.Top):
			p.viewport.GotoTop()
			return p, nil
		case key.Matches(msg, p.keys.Bottom):
			p.viewport.GotoBottom()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// copyScript copies the script to the clipboard.
func (p *Preview) copyScript() tea.Cmd {
	script, copyFn := p.script, p.copy
	return func() tea.Msg {
		if err := copyFn(script); err != nil {
			return clipboardCopiedMsg{success: false, err: err}
		}
		return clipboardCopiedMsg{success: true}
	}
}

// View implements tea.Model.
func (p *Preview) View() string {
	if !p.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.headerView(),
		p.viewport.View(),
		p.footerView(),
	)
}

func (p *Preview) headerView() string {
	return PagerHeaderStyle.Render(p.title)
}

func (p *Preview) footerView() string {
	status := fmt.Sprintf("%3.f%%", p.viewport.ScrollPercent()*100)
	if p.message != "" {
		status = StatusStyle.Render(p.message) + "  " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, p.help.View(p.keys))
}

// RunPreview shows the pager full screen and returns the chosen action.
func RunPreview(title, content, script string) (PreviewAction, error) {
	p := NewPreview(title, content, script)

	final, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	if err != nil {
		return ActionQuit, fmt.Errorf("preview failed: %w", err)
	}
	if fp, ok := final.(*Preview); ok {
		return fp.Action(), nil
	}
	return ActionQuit, nil
}
