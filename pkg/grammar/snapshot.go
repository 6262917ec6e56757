package grammar

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is a plain, serialisable view of a Grammar. Child tags are
// listed by name, so recursive grammars serialise without cycles.
type Snapshot struct {
	Primitives []PrimitiveSnapshot `yaml:"primitives"`
	Tags       []TagSnapshot       `yaml:"tags"`
}

// PrimitiveSnapshot is one primitive table entry
type PrimitiveSnapshot struct {
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor"`
}

// TagSnapshot describes one tag
type TagSnapshot struct {
	Name           string        `yaml:"name"`
	ExtendedName   string        `yaml:"extended_name,omitempty"`
	Cardinality    string        `yaml:"cardinality"`
	NeedsExpanding bool          `yaml:"needs_expanding,omitempty"`
	Defined        bool          `yaml:"defined"`
	Keys           []KeySnapshot `yaml:"keys,omitempty"`
	Children       []string      `yaml:"children,omitempty"`
}

// KeySnapshot describes one key
type KeySnapshot struct {
	Name         string `yaml:"name"`
	Cardinality  string `yaml:"cardinality"`
	Type         string `yaml:"type"`
	ValueType    string `yaml:"value_type,omitempty"`
	Unresolved   bool   `yaml:"unresolved,omitempty"`
	Enum         bool   `yaml:"enum,omitempty"`
	Translatable bool   `yaml:"translatable,omitempty"`
}

// NewSnapshot copies g into a Snapshot. Tags keep registration order.
func NewSnapshot(g *Grammar) Snapshot {
	snap := Snapshot{}
	for _, name := range g.Primitives() {
		snap.Primitives = append(snap.Primitives, PrimitiveSnapshot{
			Name:       name,
			Descriptor: g.primitives[name],
		})
	}

	for _, t := range g.order {
		ts := TagSnapshot{
			Name:           t.name,
			ExtendedName:   t.extendedName,
			Cardinality:    t.cardinality.String(),
			NeedsExpanding: t.needsExpanding,
			Defined:        t.defined,
		}
		for _, k := range t.childKeys {
			ts.Keys = append(ts.Keys, KeySnapshot{
				Name:         k.name,
				Cardinality:  k.cardinality.String(),
				Type:         k.typeName,
				ValueType:    k.valueType,
				Unresolved:   !k.resolved,
				Enum:         k.isEnum,
				Translatable: k.isTranslatable,
			})
		}
		for _, child := range t.childTags {
			ts.Children = append(ts.Children, child.name)
		}
		snap.Tags = append(snap.Tags, ts)
	}
	return snap
}

// YAML marshals the snapshot
func (s Snapshot) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grammar snapshot: %w", err)
	}
	return data, nil
}
