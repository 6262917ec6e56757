package grammar

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

const (
	// schemaContext holds primitive type definitions
	schemaContext = "schema"
	// descriptionContext bodies are free text and never modeled
	descriptionContext = "description"
)

// frame is one open bracket context
type frame struct {
	name string
	line int
}

// scanner holds the state of a single forward pass. The context stack is
// the whole state machine; only bracket lines change it.
type scanner struct {
	grammar      *Grammar
	stack        []frame
	diags        Diagnostics
	firstRef     map[*Tag]int
	translatable string
	log          logger.Logger
}

func newScanner(translatable string, log logger.Logger) *scanner {
	return &scanner{
		grammar:      newGrammar(),
		firstRef:     make(map[*Tag]int),
		translatable: translatable,
		log:          log,
	}
}

func (s *scanner) scan(source string) {
	for i, raw := range strings.Split(source, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if strings.HasPrefix(line, "[/") {
				s.closeTag(lineNum, line)
			} else {
				s.openTag(lineNum, line)
			}
			continue
		}

		s.content(lineNum, line)
	}

	s.finish()
}

// bracketName returns the text between the opening prefix and ']'
func bracketName(line, prefix string) string {
	inner := strings.TrimPrefix(line, prefix)
	if end := strings.Index(inner, "]"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}

func (s *scanner) openTag(lineNum int, line string) {
	name, extended, _ := strings.Cut(bracketName(line, "["), ":")
	name = strings.TrimSpace(name)
	s.stack = append(s.stack, frame{name: name, line: lineNum})

	if name == descriptionContext {
		return
	}
	if name == "" {
		s.report(lineNum, MalformedStatement, line, "open tag without a name")
		return
	}

	tag, ok := s.grammar.tags[name]
	if !ok {
		tag = newTag(name, Unspecified)
		s.grammar.register(tag)
	}
	tag.extendedName = strings.TrimSpace(extended)
	tag.defined = true
}

func (s *scanner) closeTag(lineNum int, line string) {
	name := bracketName(line, "[/")

	if len(s.stack) == 0 {
		s.report(lineNum, UnbalancedClose, line, "close tag [/%s] with no open tag", name)
		return
	}

	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if name != "" && name != top.name {
		s.report(lineNum, MismatchedClose, line, "close tag [/%s] closes [%s] opened on line %d", name, top.name, top.line)
	}
}

func (s *scanner) content(lineNum int, line string) {
	context := ""
	if len(s.stack) > 0 {
		context = s.stack[len(s.stack)-1].name
	}

	switch context {
	case descriptionContext:
		return
	case schemaContext:
		s.primitive(lineNum, line)
		return
	}

	current, ok := s.grammar.tags[context]
	if !ok {
		s.report(lineNum, DanglingContent, line, "statement outside of any tag")
		return
	}
	s.statement(current, lineNum, line)
}

// primitive handles "name = descriptor" directly under [schema]
func (s *scanner) primitive(lineNum int, line string) {
	parts := strings.Split(stripComment(line), "=")
	if len(parts) != 2 {
		s.report(lineNum, MalformedStatement, line, "primitive definition must have the form name=value")
		return
	}
	s.grammar.primitives[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
}

// stripComment drops a trailing "#..." comment from a content line
func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}

// statement handles "name=(cardinality target)" inside a tag. A name starting
// with '_' references another tag; anything else is a key.
func (s *scanner) statement(current *Tag, lineNum int, line string) {
	line = strings.TrimSpace(stripComment(line))

	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		s.report(lineNum, MalformedStatement, line, "statement must have the form name=(cardinality type)")
		return
	}
	name := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	if len(value) < 2 || value[0] != '(' || value[len(value)-1] != ')' {
		s.report(lineNum, MalformedStatement, line, "value of %q must be wrapped in parentheses", name)
		return
	}
	tokens := strings.Fields(value[1 : len(value)-1])
	if len(tokens) != 2 {
		s.report(lineNum, MalformedStatement, line, "value of %q must hold a cardinality and a type", name)
		return
	}
	card := ParseCardinality(tokens[0])
	target := tokens[1]

	if strings.HasPrefix(name, "_") {
		child, ok := s.grammar.tags[target]
		if !ok {
			child = newTag(target, card)
			s.grammar.register(child)
		}
		if _, seen := s.firstRef[child]; !seen {
			s.firstRef[child] = lineNum
		}
		current.childTags = append(current.childTags, child)
		current.needsExpanding = true
		return
	}

	descriptor, resolved := s.grammar.primitives[target]
	if !resolved {
		current.needsExpanding = true
		s.report(lineNum, UndefinedPrimitive, line, "undefined primitive type %q for key %q in [%s]", target, name, current.name)
	}
	current.childKeys = append(current.childKeys,
		newTagKey(name, card, target, descriptor, resolved, target == s.translatable))
}

// finish reports structure left incomplete at the end of the source. It
// never changes the grammar.
func (s *scanner) finish() {
	for i := len(s.stack) - 1; i >= 0; i-- {
		f := s.stack[i]
		s.report(f.line, UnclosedTag, "", "tag [%s] is never closed", f.name)
	}
	for _, t := range s.grammar.order {
		if !t.defined {
			s.report(s.firstRef[t], UndefinedTag, "", "tag [%s] is referenced but never defined", t.name)
		}
	}
}

func (s *scanner) report(lineNum int, kind DiagnosticKind, text, format string, args ...any) {
	d := Diagnostic{
		Line:     lineNum,
		Kind:     kind,
		Severity: severityOf(kind),
		Message:  fmt.Sprintf(format, args...),
		Text:     text,
	}
	s.diags = append(s.diags, d)

	fields := []logger.Field{logger.F("line", lineNum), logger.F("kind", kind)}
	if d.Severity == SeverityError {
		s.log.Error(d.Message, fields...)
	} else {
		s.log.Warn(d.Message, fields...)
	}
}
