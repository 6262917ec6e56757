// Package diff renders styled unified diffs between two schema grammars.
//
// Both grammars are written out as a flat outline first: every primitive
// with its descriptor, then every tag sorted by name with its cardinality,
// keys and child references. The diff therefore shows grammar changes
// rather than formatting noise in the schema files.
package diff

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/term"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
)

// Options configures how diffs are generated and displayed.
// All fields are optional with sensible defaults.
type Options struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab character expands to.
	// Default: 4
	TabWidth int

	// ShowLineNums displays old line numbers in the left margin.
	// Default: false
	ShowLineNums bool

	// Width limits line length. Default: terminal width, or 80.
	Width int
}

// Lipgloss styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// Grammars diffs the outlines of two grammars. It returns an empty string
// when they describe the same grammar.
func Grammars(oldLabel, newLabel string, oldG, newG *grammar.Grammar) string {
	return Lines(oldLabel, newLabel, outline(oldG), outline(newG), nil)
}

// outline writes g one fact per line:
//
//	primitive int=integer
//	[unit:Unit] optional
//		name=(required tstring)
//		_side=(repeated side)
//	[/unit]
//
// Each tag appears once, so reference cycles need no special handling.
func outline(g *grammar.Grammar) string {
	if g == nil {
		return ""
	}

	var b strings.Builder
	for _, name := range g.Primitives() {
		desc, _ := g.Primitive(name)
		fmt.Fprintf(&b, "primitive %s=%s\n", name, desc)
	}

	tags := g.Tags()
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name() < tags[j].Name() })

	for _, t := range tags {
		b.WriteString("[" + t.Name())
		if ext := t.ExtendedName(); ext != "" {
			b.WriteString(":" + ext)
		}
		b.WriteString("]")
		if card := t.Cardinality(); card != grammar.Unspecified {
			b.WriteString(" " + card.String())
		}
		if !t.Defined() {
			b.WriteString(" undefined")
		}
		b.WriteString("\n")

		for _, key := range t.ChildKeys() {
			fmt.Fprintf(&b, "\t%s=(%s %s)\n", key.Name(), key.Cardinality(), key.TypeName())
		}
		for _, child := range t.ChildTags() {
			fmt.Fprintf(&b, "\t_%s=(%s %s)\n", child.Name(), child.Cardinality(), child.Name())
		}
		b.WriteString("[/" + t.Name() + "]\n")
	}
	return b.String()
}

// Lines produces a unified diff of two texts, or "" when they are equal.
func Lines(oldLabel, newLabel, oldText, newText string, opts *Options) string {
	o := Options{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o = *opts
		if o.ContextLines == 0 {
			o.ContextLines = 3
		}
		if o.TabWidth == 0 {
			o.TabWidth = 4
		}
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}

	if oldText == newText {
		return ""
	}

	lines := editScript(oldText, newText)
	hunks := buildHunks(lines, o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldLabel) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newLabel) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, o))
	}
	return buf.String()
}

// operation represents the type of diff operation
type operation int

const (
	opUnchanged operation = iota
	opAdded
	opRemoved
)

// diffLine represents a single line in the diff with its operation
type diffLine struct {
	oldLineNum int // 0 if added
	newLineNum int // 0 if removed
	content    string
	op         operation
}

// hunk is a contiguous block of changes with surrounding context
type hunk struct {
	oldStart int
	oldCount int
	newStart int
	newCount int
	lines    []diffLine
}

// editScript runs a line-mode diff and numbers every resulting line
func editScript(oldText, newText string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var result []diffLine
	oldNum, newNum := 1, 1
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result = append(result, diffLine{oldLineNum: oldNum, newLineNum: newNum, content: line, op: opUnchanged})
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				result = append(result, diffLine{oldLineNum: oldNum, content: line, op: opRemoved})
				oldNum++
			case diffmatchpatch.DiffInsert:
				result = append(result, diffLine{newLineNum: newNum, content: line, op: opAdded})
				newNum++
			}
		}
	}
	return result
}

// buildHunks groups changed lines into hunks. Changes separated by no more
// than 2*contextLines unchanged lines share a hunk.
func buildHunks(lines []diffLine, contextLines int) []hunk {
	var hunks []hunk
	start, end := -1, -1

	flush := func() {
		if start < 0 {
			return
		}
		from := max(0, start-contextLines)
		to := min(len(lines), end+contextLines+1)
		h := hunk{lines: lines[from:to]}
		finalizeHunk(&h)
		hunks = append(hunks, h)
		start, end = -1, -1
	}

	for i, line := range lines {
		if line.op == opUnchanged {
			continue
		}
		if start >= 0 && i-end-1 > 2*contextLines {
			flush()
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	flush()
	return hunks
}

// finalizeHunk calculates the start and count values for a hunk
func finalizeHunk(h *hunk) {
	for _, line := range h.lines {
		if line.oldLineNum > 0 && h.oldStart == 0 {
			h.oldStart = line.oldLineNum
		}
		if line.newLineNum > 0 && h.newStart == 0 {
			h.newStart = line.newLineNum
		}
		if line.op != opAdded {
			h.oldCount++
		}
		if line.op != opRemoved {
			h.newCount++
		}
	}
}

// formatHunk formats a hunk as a unified diff string with styling
func formatHunk(h hunk, o Options) string {
	var buf strings.Builder

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, line := range h.lines {
		content := expandTabs(line.content, o.TabWidth)
		content = truncateLine(content, o.Width-10)

		var formatted string
		switch line.op {
		case opAdded:
			formatted = addedStyle.Render("+" + content)
		case opRemoved:
			formatted = removedStyle.Render("-" + content)
		default:
			formatted = " " + content
		}

		if o.ShowLineNums {
			lineNum := "    "
			if line.oldLineNum > 0 {
				lineNum = fmt.Sprintf("%4d", line.oldLineNum)
			}
			formatted = lineNumStyle.Render(lineNum) + " " + formatted
		}

		buf.WriteString(formatted + "\n")
	}

	return buf.String()
}

// splitLines splits content into lines, dropping the empty tail after a final newline
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// expandTabs replaces tabs with spaces up to the next tab stop
func expandTabs(s string, tabWidth int) string {
	var buf strings.Builder
	col := 0

	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
		} else {
			buf.WriteRune(r)
			col++
		}
	}

	return buf.String()
}

// truncateLine truncates a line if it's too long, adding "..." indicator
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the terminal width, defaulting to 80 if unable to detect
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
