package grammar

import (
	"sort"
	"strings"
	"unicode"
)

// Cardinality describes how many times a tag or key may appear inside its parent
type Cardinality int

const (
	Unspecified Cardinality = iota
	Required
	Optional
	Repeated
	Forbidden
)

// String returns the schema word for the cardinality
func (c Cardinality) String() string {
	switch c {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	case Forbidden:
		return "forbidden"
	default:
		return "unspecified"
	}
}

// ParseCardinality maps a schema cardinality word to a Cardinality.
// Any word it does not know maps to Unspecified; it never fails.
func ParseCardinality(word string) Cardinality {
	switch word {
	case "required":
		return Required
	case "optional":
		return Optional
	case "repeated":
		return Repeated
	case "forbidden":
		return Forbidden
	default:
		return Unspecified
	}
}

// Tag is a named container in the grammar. A single *Tag is shared by every
// place that references it, including references scanned before the tag's
// own block.
type Tag struct {
	name           string
	extendedName   string
	cardinality    Cardinality
	needsExpanding bool
	defined        bool
	childTags      []*Tag
	childKeys      []TagKey
}

func newTag(name string, card Cardinality) *Tag {
	return &Tag{name: name, cardinality: card}
}

// Name returns the simple tag name
func (t *Tag) Name() string { return t.name }

// ExtendedName returns the qualifier following ':' in [name:extended], if any
func (t *Tag) ExtendedName() string { return t.extendedName }

// Cardinality returns how many times the tag may appear inside its parent
func (t *Tag) Cardinality() Cardinality { return t.cardinality }

// NeedsExpanding reports whether the tag's shape depends on information
// that was not available where it was scanned.
func (t *Tag) NeedsExpanding() bool { return t.needsExpanding }

// Defined reports whether a [name] block for the tag was scanned. A tag
// created only from a reference is a stub until then.
func (t *Tag) Defined() bool { return t.defined }

// ChildTags returns the allowed child tags in order of first occurrence
func (t *Tag) ChildTags() []*Tag {
	out := make([]*Tag, len(t.childTags))
	copy(out, t.childTags)
	return out
}

// ChildKeys returns the allowed keys in source order
func (t *Tag) ChildKeys() []TagKey {
	out := make([]TagKey, len(t.childKeys))
	copy(out, t.childKeys)
	return out
}

// ChildTag returns the first child tag with the given name
func (t *Tag) ChildTag(name string) (*Tag, bool) {
	for _, child := range t.childTags {
		if child.name == name {
			return child, true
		}
	}
	return nil, false
}

// Key returns the first key with the given name
func (t *Tag) Key(name string) (TagKey, bool) {
	for _, key := range t.childKeys {
		if key.name == name {
			return key, true
		}
	}
	return TagKey{}, false
}

// TagKey is a typed scalar attribute allowed inside a tag. It is a value:
// once built from its source line it never changes.
type TagKey struct {
	name           string
	cardinality    Cardinality
	typeName       string
	valueType      string
	resolved       bool
	isEnum         bool
	isTranslatable bool
}

// newTagKey derives every key property from the referenced primitive type
// name and its descriptor (if the primitive is known).
func newTagKey(name string, card Cardinality, typeName, descriptor string, resolved, translatable bool) TagKey {
	key := TagKey{
		name:           name,
		cardinality:    card,
		typeName:       typeName,
		resolved:       resolved,
		isTranslatable: translatable,
	}
	if !resolved {
		return key
	}

	value := unquote(strings.TrimSpace(descriptor))
	first, rest := value, ""
	if i := strings.IndexFunc(value, unicode.IsSpace); i >= 0 {
		first, rest = value[:i], value[i:]
	}
	if first == "enum" {
		key.isEnum = true
		value = unquote(strings.TrimSpace(rest))
	}
	key.valueType = value
	return key
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Name returns the key name
func (k TagKey) Name() string { return k.name }

// Cardinality returns how many times the key may appear inside its tag
func (k TagKey) Cardinality() Cardinality { return k.cardinality }

// TypeName returns the primitive type name as written on the schema line
func (k TagKey) TypeName() string { return k.typeName }

// ValueType returns the resolved type descriptor. The second result is
// false when the primitive type was undefined at parse time.
func (k TagKey) ValueType() (string, bool) { return k.valueType, k.resolved }

// IsEnum reports whether the descriptor is an enumeration ("enum a,b,c")
func (k TagKey) IsEnum() bool { return k.isEnum }

// IsTranslatable reports whether the key is bound to the translatable string type
func (k TagKey) IsTranslatable() bool { return k.isTranslatable }

// Grammar is the result of one parse pass: the primitive table plus every
// tag reachable by name. It is read-only once published by a Parser.
type Grammar struct {
	primitives map[string]string
	tags       map[string]*Tag
	order      []*Tag
}

func newGrammar() *Grammar {
	return &Grammar{
		primitives: make(map[string]string),
		tags:       make(map[string]*Tag),
	}
}

// register adds a tag under its name, keeping registration order
func (g *Grammar) register(t *Tag) {
	g.tags[t.name] = t
	g.order = append(g.order, t)
}

// Tag looks up a tag by simple name
func (g *Grammar) Tag(name string) (*Tag, bool) {
	t, ok := g.tags[name]
	return t, ok
}

// Primitive looks up a primitive type descriptor by name
func (g *Grammar) Primitive(name string) (string, bool) {
	d, ok := g.primitives[name]
	return d, ok
}

// Tags returns every tag in registration order
func (g *Grammar) Tags() []*Tag {
	out := make([]*Tag, len(g.order))
	copy(out, g.order)
	return out
}

// Primitives returns the primitive type names, sorted
func (g *Grammar) Primitives() []string {
	names := make([]string, 0, len(g.primitives))
	for name := range g.primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tags
func (g *Grammar) Len() int {
	return len(g.order)
}
