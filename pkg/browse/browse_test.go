package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

const schema = `[schema]
tstring=translatable string
color="enum red,blue"
[/schema]
[unit]
name=(required tstring)
hue=(optional color)
size=(optional nope)
_attack=(repeated attack)
[/unit]
`

func newModel(t *testing.T) Model {
	t.Helper()
	g := grammar.NewParser(grammar.WithLogger(logger.NewSilentLogger())).Parse(schema, false)
	m := New(g)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew_SortsTags(t *testing.T) {
	m := newModel(t)

	var names []string
	for _, tag := range m.tags {
		names = append(names, tag.Name())
	}
	assert.Equal(t, []string{"attack", "schema", "unit"}, names)
	assert.Equal(t, "attack", m.Selected().Name())
}

func TestUpdate_Navigation(t *testing.T) {
	m := newModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, "schema", m.Selected().Name())

	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	assert.Equal(t, "unit", m.Selected().Name())

	// stays on the last tag
	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	assert.Equal(t, "unit", m.Selected().Name())

	updated, _ = m.Update(keyRune('k'))
	m = updated.(Model)
	assert.Equal(t, "schema", m.Selected().Name())

	updated, _ = m.Update(keyRune('G'))
	m = updated.(Model)
	assert.Equal(t, "unit", m.Selected().Name())

	updated, _ = m.Update(keyRune('g'))
	m = updated.(Model)
	assert.Equal(t, "attack", m.Selected().Name())
}

func TestUpdate_Quit(t *testing.T) {
	m := newModel(t)

	for _, msg := range []tea.KeyMsg{keyRune('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestDetail(t *testing.T) {
	m := newModel(t)
	m.cursor = 2

	out := m.detail()
	assert.Contains(t, out, "[unit]")
	assert.Contains(t, out, "name (required): translatable string [translatable]")
	assert.Contains(t, out, "hue (optional): red,blue [enum]")
	assert.Contains(t, out, "unknown type nope")
	assert.Contains(t, out, "depends on other definitions")

	m.cursor = 0
	assert.Contains(t, m.detail(), "referenced but never defined")
}

func TestView(t *testing.T) {
	assert.Equal(t, "Initializing...", New(grammar.NewParser().Parse("", false)).View())

	m := newModel(t)
	view := m.View()
	assert.Contains(t, view, "3 tags, 2 primitives")
	assert.Contains(t, view, "> attack")
	assert.Contains(t, view, "unit")
}

func TestEmptyGrammar(t *testing.T) {
	g := grammar.NewParser(grammar.WithLogger(logger.NewSilentLogger())).Parse("", false)
	m := New(g)
	assert.Nil(t, m.Selected())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.detail(), "no tags")
}
