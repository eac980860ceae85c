package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hashcloud-io/hashcloud/types"
)

func browseRecords() []types.RemoteFileRecord {
	return []types.RemoteFileRecord{
		{Digest: strings.Repeat("a", 64), Filename: "alpha.txt", ContentType: "text/plain", ContentSize: 100},
		{Digest: strings.Repeat("b", 64), Filename: "beta.png", ContentType: "image/png", ContentSize: 2048},
		{Digest: strings.Repeat("c", 64), Filename: "gamma.pdf", ContentType: "application/pdf", ContentSize: 4096},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModel_CursorMovement(t *testing.T) {
	m := NewBrowseModel("0xabc", browseRecords())

	// Cursor is clamped at both ends.
	next, _ := m.Update(keyMsg("up"))
	m = next.(BrowseModel)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.Cursor())
	}

	for range 5 {
		next, _ = m.Update(keyMsg("down"))
		m = next.(BrowseModel)
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d after overshooting down, want 2", m.Cursor())
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(BrowseModel)
	if m.Cursor() != 1 {
		t.Errorf("cursor = %d after k, want 1", m.Cursor())
	}
}

func TestBrowseModel_QuitKeys(t *testing.T) {
	for _, k := range []string{"q"} {
		m := NewBrowseModel("0xabc", browseRecords())
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Errorf("key %q produced no command, want tea.Quit", k)
		}
	}

	m := NewBrowseModel("0xabc", browseRecords())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c produced no command, want tea.Quit")
	}
}

func TestBrowseModel_View(t *testing.T) {
	m := NewBrowseModel("0xOwner", browseRecords())
	view := m.View()

	for _, want := range []string{"0xOwner", "alpha.txt", "beta.png", "2.0 KiB"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseModel_ViewEmpty(t *testing.T) {
	m := NewBrowseModel("0xOwner", nil)
	if view := m.View(); !strings.Contains(view, "(no files)") {
		t.Errorf("empty view = %q", view)
	}
}
