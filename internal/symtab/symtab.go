// Package symtab builds the symbol table in the first of the assembler's
// two passes (spec §4.4): a flat walk of the normalized line stream that
// tracks two independent per-segment location counters and records every
// label's address. Pseudo-instructions are charged a flat 4 bytes here;
// internal/resolver corrects that in Stage A once expansion lengths are
// known.
package symtab

import (
	"mipskit/internal/directive"
	"mipskit/internal/isa"
	"mipskit/internal/lexer"

	"github.com/pkg/errors"
)

// Segment names the two location-counter-bearing regions (§3 GLOSSARY).
type Segment int

const (
	Text Segment = iota
	Data
)

func (s Segment) String() string {
	if s == Data {
		return ".data"
	}
	return ".text"
}

// Table is the symbol table: label name to absolute address, plus the two
// reserved segment-base entries.
type Table struct {
	symbols map[string]uint32
	order   []string // definition order, for deterministic iteration (Names)
}

// New creates a symbol table with the two reserved entries already
// populated at their segment bases.
func New(textBase, dataBase uint32) *Table {
	t := &Table{symbols: make(map[string]uint32)}
	t.symbols[".text"] = textBase
	t.symbols[".data"] = dataBase
	return t
}

// Lookup returns a label's address.
func (t *Table) Lookup(name string) (uint32, bool) {
	v, ok := t.symbols[name]
	return v, ok
}

// Define records a label's address. Redefinition of any non-reserved label
// is an error (§3 invariant); the two reserved entries are never targets of
// Define (Builder never calls it for them).
func (t *Table) Define(name string, address uint32) error {
	if _, exists := t.symbols[name]; exists {
		return errors.Errorf("label %q redefined", name)
	}
	t.symbols[name] = address
	t.order = append(t.order, name)
	return nil
}

// Set overwrites a label's address unconditionally, used by
// internal/resolver Stage A to write each label's recomputed final address.
// Reserved entries are never passed here either.
func (t *Table) Set(name string, address uint32) {
	if _, existed := t.symbols[name]; !existed {
		t.order = append(t.order, name)
	}
	t.symbols[name] = address
}

// Names returns every non-reserved label name in definition order — a
// stable snapshot callers can iterate over while mutating addresses.
// Stage A (internal/resolver.FixupSymbols) does not use it: it recomputes
// each address in one forward walk, with nothing to snapshot.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, n)
	}
	return out
}

// Builder runs pass 1 (§4.4) over the normalized line stream.
type Builder struct {
	table       *Table
	segment     Segment
	textCounter uint32
	dataCounter uint32
}

// NewBuilder creates a pass-1 builder seeded with the reserved segment
// bases; the active segment starts as .text.
func NewBuilder(textBase, dataBase uint32) *Builder {
	return &Builder{
		table:       New(textBase, dataBase),
		segment:     Text,
		textCounter: textBase,
		dataCounter: dataBase,
	}
}

func (b *Builder) counter() uint32 {
	if b.segment == Data {
		return b.dataCounter
	}
	return b.textCounter
}

func (b *Builder) advance(n uint32) {
	if b.segment == Data {
		b.dataCounter += n
	} else {
		b.textCounter += n
	}
}

// Run walks every normalized line and returns the resulting symbol table.
func (b *Builder) Run(lines []lexer.Line) (*Table, error) {
	for _, line := range lines {
		if err := b.step(line); err != nil {
			return nil, err
		}
	}
	return b.table, nil
}

func (b *Builder) step(line lexer.Line) error {
	switch {
	case line.IsLabel():
		name := line.LabelName()
		if err := b.table.Define(name, b.counter()); err != nil {
			return errors.Wrapf(err, "line %d", line.Number)
		}
		return nil

	case line.Op == ".text":
		b.segment = Text
		return nil
	case line.Op == ".data":
		b.segment = Data
		return nil

	default:
		if d, ok := directive.Lookup(line.Op); ok {
			n, err := directive.ForwardOffset(d, line.Args, b.counter())
			if err != nil {
				return errors.Wrapf(err, "line %d: %s", line.Number, line.Op)
			}
			b.advance(n)
			return nil
		}
		if isa.IsRealInstruction(line.Op) || isa.IsPseudo(line.Op) {
			// Pseudo-instructions are charged a flat 4 bytes in pass 1; Stage
			// A (internal/resolver) corrects every label shifted past one.
			b.advance(4)
			return nil
		}
		return errors.Errorf("line %d: unrecognized operation %q", line.Number, line.Op)
	}
}
