package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hashcloud-io/hashcloud/cli/render"
	"github.com/hashcloud-io/hashcloud/types"
)

// digestPreview is how many leading digest characters the list shows.
const digestPreview = 12

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowseModel is a Bubble Tea model over the account's file records.
type BrowseModel struct {
	account  string
	records  []types.RemoteFileRecord
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewBrowseModel creates a browse model for one account's records.
func NewBrowseModel(account string, records []types.RemoteFileRecord) BrowseModel {
	return BrowseModel{account: account, records: records}
}

// Cursor returns the index of the highlighted record.
func (m BrowseModel) Cursor() int { return m.cursor }

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Files for %s", m.account)))
	b.WriteString("\n")

	if len(m.records) == 0 {
		b.WriteString(RowStyle.Render("(no files)"))
	} else {
		b.WriteString(HeaderStyle.Render(fmt.Sprintf("  %-32s %-24s %10s  %-8s %s",
			"NAME", "TYPE", "SIZE", "ROLE", "HASH")))
		b.WriteString("\n")

		for i, rec := range m.records {
			row := fmt.Sprintf("%-32s %-24s %10s  %-8s %s",
				truncate(rec.Filename, 32),
				truncate(rec.ContentType, 24),
				render.HumanSize(rec.ContentSize),
				rec.RoleOf(m.account),
				DigestStyle.Render(truncate(rec.Digest, digestPreview)),
			)
			if i == m.cursor {
				b.WriteString(SelectedRowStyle.Render("> " + row))
			} else {
				b.WriteString(RowStyle.Render("  " + row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(HelpStyle.Render("↑/↓ move · q quit"))
	return b.String()
}

// Browse runs the read-only file list TUI until the user quits.
func Browse(account string, records []types.RemoteFileRecord) error {
	p := tea.NewProgram(NewBrowseModel(account, records))
	_, err := p.Run()
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
