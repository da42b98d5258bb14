package tui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a tea.KeyMsg for testing
func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func sizedPreview(t *testing.T) *Preview {
	t.Helper()
	p := NewPreview("Preview", "line 1\nline 2\n", "#!/bin/bash\n")
	_, cmd := p.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	require.True(t, p.ready)
	return p
}

func TestDefaultPagerKeyMap(t *testing.T) {
	km := DefaultPagerKeyMap()

	assert.True(t, key.Matches(keyMsg("w"), km.Write))
	assert.True(t, key.Matches(keyMsg("c"), km.Copy))
	assert.True(t, key.Matches(keyMsg("q"), km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down))

	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.FullHelp(), 3)
}

func TestPreview_View(t *testing.T) {
	p := NewPreview("Preview", "echo hi", "")
	assert.Equal(t, "Loading...", p.View())

	p = sizedPreview(t)
	view := p.View()
	assert.Contains(t, view, "Preview")
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "write script")
}

func TestPreview_Resize(t *testing.T) {
	p := sizedPreview(t)

	p.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, p.viewport.Width)
}

func TestPreview_Actions(t *testing.T) {
	t.Run("write quits with write action", func(t *testing.T) {
		p := sizedPreview(t)
		_, cmd := p.Update(keyMsg("w"))
		require.NotNil(t, cmd)
		assert.Equal(t, ActionWrite, p.Action())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("quit", func(t *testing.T) {
		p := sizedPreview(t)
		_, cmd := p.Update(keyMsg("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, ActionQuit, p.Action())
	})

	t.Run("help toggles", func(t *testing.T) {
		p := sizedPreview(t)
		p.Update(keyMsg("?"))
		assert.True(t, p.help.ShowAll)
	})
}

func TestPreview_Copy(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := sizedPreview(t)
		var copied string
		p.copy = func(s string) error {
			copied = s
			return nil
		}

		_, cmd := p.Update(keyMsg("c"))
		require.NotNil(t, cmd)
		msg := cmd()
		assert.Equal(t, "#!/bin/bash\n", copied)

		p.Update(msg)
		assert.Contains(t, p.message, "Copied")
	})

	t.Run("failure", func(t *testing.T) {
		p := sizedPreview(t)
		p.copy = func(string) error { return errors.New("no clipboard") }

		_, cmd := p.Update(keyMsg("c"))
		p.Update(cmd())
		assert.Contains(t, p.message, "no clipboard")
	})
}
