// Package grammar parses schema description files into a cross-referenced
// grammar model.
//
// # Schema Language
//
// A schema is line oriented. Brackets open and close contexts, and every
// other line is a statement in the innermost context:
//
//	# comment
//	[schema]
//	int=integer
//	tstring=translatable string
//	color="enum red,green,blue"
//	[/schema]
//
//	[unit:base_unit]
//	name=(required tstring)   # end-of-line comment
//	hue=(optional color)
//	_attack=(repeated attack)
//	[/unit]
//
// Lines directly under [schema] define primitive types. Inside any other tag,
// "key=(cardinality type)" allows a key bound to a primitive type and
// "_ref=(cardinality tag)" allows a child tag. Cardinality words are
// required, optional, repeated and forbidden; anything else is unspecified.
// [description] bodies are skipped.
//
// A tag may be referenced before its block appears and may be reopened to
// add keys; in both cases every reference resolves to the same *Tag.
//
// # Usage
//
//	p := grammar.NewParser(grammar.WithLogger(log))
//	g := p.Parse(source, false)
//
//	unit, ok := g.Tag("unit")
//	if ok {
//	    for _, key := range unit.ChildKeys() {
//	        fmt.Println(key.Name(), key.Cardinality())
//	    }
//	}
//
// # Failure Policy
//
// Parsing never fails. Malformed lines are logged, recorded as Diagnostics
// and skipped. Consumers must expect tags with NeedsExpanding set and keys
// whose ValueType is unresolved.
package grammar
