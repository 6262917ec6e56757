// Package browse is a full-screen terminal browser for a parsed grammar.
//
// The left column lists every tag; the right pane shows the selected tag
// rendered in bracket form together with its key details.
package browse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
)

// Lipgloss styles for terminal output
var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

const (
	listWidth    = 28
	headerHeight = 2
	footerHeight = 2
)

// Model is the bubbletea model of the browser
type Model struct {
	grammar  *grammar.Grammar
	tags     []*grammar.Tag
	cursor   int
	offset   int
	height   int
	viewport viewport.Model
	ready    bool
}

// New creates a browser over g with tags sorted by name
func New(g *grammar.Grammar) Model {
	tags := g.Tags()
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name() < tags[j].Name() })
	return Model{grammar: g, tags: tags}
}

// Run starts the browser on the alternate screen and blocks until it quits
func Run(g *grammar.Grammar) error {
	p := tea.NewProgram(New(g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run grammar browser: %w", err)
	}
	return nil
}

// Selected returns the tag under the cursor, or nil for an empty grammar
func (m Model) Selected() *grammar.Tag {
	if len(m.tags) == 0 {
		return nil
	}
	return m.tags[m.cursor]
}

// Init initializes the browser
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and window sizing
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.tags)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil

		case "home", "g":
			m.cursor = 0
			m.refresh()
			return m, nil

		case "end", "G":
			if len(m.tags) > 0 {
				m.cursor = len(m.tags) - 1
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-headerHeight-footerHeight)
		width := max(10, msg.Width-listWidth-3)

		if !m.ready {
			m.viewport = viewport.New(width, m.height)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = m.height
		}
		m.refresh()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh keeps the cursor visible in the list and reloads the detail pane
func (m *Model) refresh() {
	if m.height > 0 {
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+m.height {
			m.offset = m.cursor - m.height + 1
		}
	}
	if m.ready {
		m.viewport.SetContent(m.detail())
		m.viewport.GotoTop()
	}
}

// detail renders the selected tag and describes its keys
func (m Model) detail() string {
	t := m.Selected()
	if t == nil {
		return mutedStyle.Render("no tags")
	}

	var b strings.Builder
	b.WriteString(m.grammar.Render(t, 0))
	b.WriteString("\n")

	fmt.Fprintf(&b, "cardinality: %s\n", t.Cardinality())
	if !t.Defined() {
		b.WriteString(warnStyle.Render("referenced but never defined") + "\n")
	}
	if t.NeedsExpanding() {
		b.WriteString(mutedStyle.Render("depends on other definitions") + "\n")
	}

	for _, key := range t.ChildKeys() {
		b.WriteString(describeKey(key) + "\n")
	}
	return b.String()
}

func describeKey(key grammar.TagKey) string {
	vt, ok := key.ValueType()
	if !ok {
		vt = warnStyle.Render("unknown type " + key.TypeName())
	}

	var flags []string
	if key.IsEnum() {
		flags = append(flags, "enum")
	}
	if key.IsTranslatable() {
		flags = append(flags, "translatable")
	}

	line := fmt.Sprintf("  %s (%s): %s", key.Name(), key.Cardinality(), vt)
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line
}

// View renders the browser
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var list strings.Builder
	end := min(len(m.tags), m.offset+m.height)
	for i := m.offset; i < end; i++ {
		name := m.tags[i].Name()
		if i == m.cursor {
			list.WriteString(selectedStyle.Render("> "+name) + "\n")
		} else {
			list.WriteString("  " + name + "\n")
		}
	}

	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " │ ", m.viewport.View())

	header := titleStyle.Render(fmt.Sprintf("%d tags, %d primitives", m.grammar.Len(), len(m.grammar.Primitives())))
	footer := mutedStyle.Render("[↑/↓] Select    [pgup/pgdown] Scroll    [q] Quit")

	return header + "\n\n" + body + "\n" + footer
}
