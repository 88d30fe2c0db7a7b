package resolver

import (
	"mipskit/internal/directive"
	"mipskit/internal/isa"
	"mipskit/internal/lexer"
	"mipskit/internal/symtab"

	"github.com/pkg/errors"
)

// FixupSymbols implements spec §4.5 Stage A: it recomputes every label's
// final (post-expansion) address and writes it back into table.
//
// The spec describes Stage A as a shift operation — find every label whose
// pass-1 (flat-4-bytes-per-pseudo) address falls after a given pseudo and
// push it forward by (L-4). That is one valid way to reach the invariant
// in §3 ("a label's address equals the location counter of its segment at
// the point of its definition, measured in the FINAL layout"), but it is
// also exactly equivalent to re-running the pass-1 walk with each pseudo's
// *real* length L instead of the flat charge of 4 — which is simpler to
// get right and sidesteps the §9 "mutable borrow during iteration" trap
// entirely, since there is nothing to snapshot: every label is written
// exactly once, forward, as it is encountered.
func FixupSymbols(lines []lexer.Line, table *symtab.Table, textBase, dataBase uint32) error {
	segment := symtab.Text
	textCounter, dataCounter := textBase, dataBase

	counter := func() uint32 {
		if segment == symtab.Data {
			return dataCounter
		}
		return textCounter
	}
	advance := func(n uint32) {
		if segment == symtab.Data {
			dataCounter += n
		} else {
			textCounter += n
		}
	}

	for _, line := range lines {
		switch {
		case line.IsLabel():
			table.Set(line.LabelName(), counter())

		case line.Op == ".text":
			segment = symtab.Text
		case line.Op == ".data":
			segment = symtab.Data

		default:
			if d, ok := directive.Lookup(line.Op); ok {
				n, err := directive.ForwardOffset(d, line.Args, counter())
				if err != nil {
					return errors.Wrapf(err, "line %d: %s", line.Number, line.Op)
				}
				advance(n)
				continue
			}
			if meta, ok := isa.LookupPseudo(line.Op); ok {
				advance(uint32(meta.ExpandedLen) * 4)
				continue
			}
			if isa.IsRealInstruction(line.Op) {
				advance(4)
				continue
			}
			return errors.Errorf("line %d: unrecognized operation %q", line.Number, line.Op)
		}
	}
	return nil
}
