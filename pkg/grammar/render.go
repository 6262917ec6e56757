package grammar

import (
	"sort"
	"strings"
)

// Render writes t and its descendants back in bracket form, one tab per
// indent level:
//
//	[unit]
//		name=tstring
//		[child_tag]
//		[/child_tag]
//	[/unit]
//
// Output is structurally equivalent to the schema source, not byte-identical.
// A child tag already open further up the current path is written as an
// empty pair so recursive grammars terminate.
func (g *Grammar) Render(t *Tag, indent int) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	renderTag(&b, t, indent, make(map[*Tag]bool), nil)
	return b.String()
}

// RenderAll renders every tag that is not the child of another tag, sorted
// by name. Tags that are only reachable as children appear nested inside
// their parents. Tags reachable only through a reference cycle have no such
// parent; each of them not already written is rendered afterwards, again
// sorted by name.
func (g *Grammar) RenderAll() string {
	referenced := make(map[*Tag]bool)
	for _, t := range g.order {
		for _, child := range t.childTags {
			if child != t {
				referenced[child] = true
			}
		}
	}

	roots := make([]*Tag, 0, len(g.order))
	var rest []*Tag
	for _, t := range g.order {
		if referenced[t] {
			rest = append(rest, t)
		} else {
			roots = append(roots, t)
		}
	}
	byName := func(tags []*Tag) {
		sort.Slice(tags, func(i, j int) bool { return tags[i].name < tags[j].name })
	}
	byName(roots)
	byName(rest)

	var b strings.Builder
	written := make(map[*Tag]bool)
	for _, t := range roots {
		renderTag(&b, t, 0, make(map[*Tag]bool), written)
	}
	for _, t := range rest {
		if !written[t] {
			renderTag(&b, t, 0, make(map[*Tag]bool), written)
		}
	}
	return b.String()
}

// renderTag writes t below the tags in open. Every tag written is recorded
// in written when it is non-nil.
func renderTag(b *strings.Builder, t *Tag, indent int, open, written map[*Tag]bool) {
	pad := strings.Repeat("\t", indent)
	if written != nil {
		written[t] = true
	}

	b.WriteString(pad)
	b.WriteString("[")
	b.WriteString(t.name)
	if t.extendedName != "" {
		b.WriteString(":")
		b.WriteString(t.extendedName)
	}
	b.WriteString("]\n")

	if !open[t] {
		open[t] = true
		for _, key := range t.childKeys {
			b.WriteString(pad)
			b.WriteString("\t")
			b.WriteString(key.name)
			b.WriteString("=")
			b.WriteString(key.typeName)
			b.WriteString("\n")
		}
		for _, child := range t.childTags {
			renderTag(b, child, indent+1, open, written)
		}
		delete(open, t)
	}

	b.WriteString(pad)
	b.WriteString("[/")
	b.WriteString(t.name)
	b.WriteString("]\n")
}
