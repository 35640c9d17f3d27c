// Package tui renders an interactive view of a whitespace program: the
// source with visible stand-ins next to the decoded token stream. It exists
// because the language cannot be proofread in a plain editor pane.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TokenRow is one decoded entry of the token table.
type TokenRow struct {
	Kind  string
	Span  string
	Label string
}

// Run opens the inspector for the given program.
func Run(path, visible string, rows []TokenRow) error {
	program := tea.NewProgram(NewModel(path, visible, rows), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Model implements the Bubble Tea model for the inspector.
type Model struct {
	path    string
	visible string
	rows    []TokenRow

	feed   viewport.Model
	ready  bool
	width  int
	height int
}

// NewModel builds the inspector model.
func NewModel(path, visible string, rows []TokenRow) Model {
	return Model{path: path, visible: visible, rows: rows}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles resize and key events; everything else is delegated to the
// viewport for scrolling.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - 2
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.feed = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.feed.Width = msg.Width
			m.feed.Height = bodyHeight
		}
		m.feed.SetContent(m.renderContent())
	}
	var cmd tea.Cmd
	if m.ready {
		m.feed, cmd = m.feed.Update(msg)
	}
	return m, cmd
}

// View composes the header, the scrollable body, and the key hints.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(fmt.Sprintf("wsls inspect %s", m.path))
	footer := dimStyle.Render("j/k scroll | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.feed.View(), footer)
}

func (m Model) renderContent() string {
	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("Source"))
	sb.WriteString("\n")
	sb.WriteString(sourceStyle.Render(m.visible))
	sb.WriteString("\n\n")
	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Tokens (%d)", len(m.rows))))
	sb.WriteString("\n")
	for _, row := range m.rows {
		sb.WriteString(renderRow(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderRow(row TokenRow) string {
	kind := kindStyle.Render(fmt.Sprintf("%-12s", row.Kind))
	span := dimStyle.Render(fmt.Sprintf("%-12s", row.Span))
	return fmt.Sprintf("%s %s %s", kind, span, row.Label)
}
