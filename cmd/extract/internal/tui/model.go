// Package tui implements the interactive block-review interface for
// `extract view`. Grounded on the teacher's diff review TUI
// (services/code_buddy/tui/diff_model.go): a bubbletea model holding a
// viewport plus navigation state, lipgloss styles for header/footer/
// badges, and a small modal-less key map (j/k to move, g/G to jump to
// the first/last block, q to quit).
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/blockextract/services/extract"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	acceptedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Background(lipgloss.Color("22")).
			Padding(0, 1)

	rejectedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Background(lipgloss.Color("52")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// Model is the bubbletea model for `extract view`.
type Model struct {
	blocks   []extract.AcceptedBlock
	selected int

	viewport viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

// New builds a review model over blocks.
func New(blocks []extract.AcceptedBlock) Model {
	return Model{blocks: blocks}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "j", "down":
			if m.selected < len(m.blocks)-1 {
				m.selected++
				m.updateViewportContent()
			}

		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.updateViewportContent()
			}

		case "g", "home":
			m.selected = 0
			m.updateViewportContent()

		case "G", "end":
			if len(m.blocks) > 0 {
				m.selected = len(m.blocks) - 1
			}
			m.updateViewportContent()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready || len(m.blocks) == 0 {
		return "No blocks to review.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	return titleStyle.Render(fmt.Sprintf("extract view — block %d of %d", m.selected+1, len(m.blocks)))
}

func (m Model) renderFooter() string {
	return metaStyle.Render("j/k: navigate  g/G: first/last  q: quit")
}

func (m *Model) updateViewportContent() {
	if !m.ready || len(m.blocks) == 0 {
		return
	}
	b := m.blocks[m.selected]

	badge := acceptedBadge.Render("ACCEPTED")
	if !b.FilterPassed {
		badge = rejectedBadge.Render(fmt.Sprintf("REJECTED: %s (%s)", b.RejectionReason, b.FilteredBy))
	}

	meta := metaStyle.Render(fmt.Sprintf(
		"lines %d-%d  type=%s  language=%s  confidence=%.2f  method=%s",
		b.StartLine, b.EndLine, b.BlockType, b.Language, b.ConfidenceScore, b.ValidationMethod,
	))

	var body strings.Builder
	body.WriteString(badge)
	body.WriteString("\n")
	body.WriteString(meta)
	body.WriteString("\n\n")
	body.WriteString(contentStyle.Render(b.Content))

	m.viewport.SetContent(body.String())
}
