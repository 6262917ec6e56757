package grammar

import (
	"sync"
	"sync/atomic"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

// DefaultTranslatableType is the primitive type name marking translatable strings
const DefaultTranslatableType = "tstring"

// Parser turns schema source text into a Grammar. It is owned by its caller;
// there is no package-level instance.
//
// Each pass builds a new Grammar and publishes it in one step, so readers
// calling Grammar never observe a half-built or half-cleared model. Passes
// are serialised: a second caller waits for the running pass to finish.
type Parser struct {
	mu           sync.Mutex
	current      atomic.Pointer[result]
	log          logger.Logger
	translatable string
}

// result is what one pass publishes
type result struct {
	grammar     *Grammar
	diagnostics Diagnostics
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger diagnostics are written to
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithTranslatableType overrides the primitive type name that marks keys as translatable
func WithTranslatableType(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.translatable = name
		}
	}
}

// NewParser creates a parser that has not parsed anything yet
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		log:          logger.Default(),
		translatable: DefaultTranslatableType,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans source and publishes the resulting Grammar.
//
// When a pass has already completed and force is false, the published
// Grammar is returned unchanged and source is ignored. When force is true the
// previous Grammar is discarded and a new one is built from source alone.
//
// Parse never fails: malformed lines are logged, recorded in Diagnostics and
// skipped, and the returned Grammar holds everything that could be read.
func (p *Parser) Parse(source string, force bool) *Grammar {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prev := p.current.Load(); prev != nil && !force {
		return prev.grammar
	}

	s := newScanner(p.translatable, p.log)
	s.scan(source)

	p.current.Store(&result{grammar: s.grammar, diagnostics: s.diags})
	p.log.Debug("schema parsed",
		logger.F("tags", s.grammar.Len()),
		logger.F("primitives", len(s.grammar.primitives)),
		logger.F("diagnostics", len(s.diags)),
	)
	return s.grammar
}

// Grammar returns the last published Grammar, or nil before the first pass
func (p *Parser) Grammar() *Grammar {
	if r := p.current.Load(); r != nil {
		return r.grammar
	}
	return nil
}

// Parsed reports whether a pass has completed
func (p *Parser) Parsed() bool {
	return p.current.Load() != nil
}

// Diagnostics returns the diagnostics recorded by the last pass
func (p *Parser) Diagnostics() Diagnostics {
	r := p.current.Load()
	if r == nil {
		return nil
	}
	out := make(Diagnostics, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}
