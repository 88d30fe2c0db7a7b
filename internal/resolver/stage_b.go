package resolver

import (
	"mipskit/internal/directive"
	"mipskit/internal/isa"
	"mipskit/internal/lexer"
	"mipskit/internal/memory"
	"mipskit/internal/operand"
	"mipskit/internal/symtab"

	"github.com/pkg/errors"
)

// Instruction is one fully operand-resolved line: either a real instruction
// ready for internal/encoder, or a pseudo-instruction whose operands are
// already numeric and whose registers are already canonical, waiting on
// Stage C (Expand) to turn it into the real instructions it stands for.
type Instruction struct {
	Mnemonic string
	Operands []operand.Operand
	IsPseudo bool
	Line     int
}

// ResolveOperands implements spec §4.5 Stage B: directives execute against
// mem and vanish, label definitions vanish (their addresses were already
// fixed by FixupSymbols), and every instruction or pseudo-instruction line
// is tokenized and has its label operands substituted with the numeric
// address symtab now holds. Register aliases never need a separate
// de-aliasing step here: operand.Tokenize already resolves them to a
// canonical register number at classification time, so there is no alias
// text left to rewrite.
func ResolveOperands(lines []lexer.Line, table *symtab.Table, mem *memory.Image, textBase, dataBase uint32) ([]Instruction, error) {
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

	var out []Instruction
	for _, line := range lines {
		switch {
		case line.IsLabel():
			continue

		case line.Op == ".text":
			segment = symtab.Text
		case line.Op == ".data":
			segment = symtab.Data

		default:
			if d, ok := directive.Lookup(line.Op); ok {
				if err := directive.Execute(d, line.Args, mem, counter()); err != nil {
					return nil, errors.Wrapf(err, "line %d: %s", line.Number, line.Op)
				}
				n, err := directive.ForwardOffset(d, line.Args, counter())
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: %s", line.Number, line.Op)
				}
				advance(n)
				continue
			}

			ops, err := operand.Tokenize(line.Op, line.Args, line.Number)
			if err != nil {
				return nil, err
			}
			if err := resolveLabels(ops, table); err != nil {
				return nil, errors.Wrapf(err, "line %d", line.Number)
			}

			if meta, ok := isa.LookupPseudo(line.Op); ok {
				advance(uint32(meta.ExpandedLen) * 4)
				out = append(out, Instruction{Mnemonic: line.Op, Operands: ops, IsPseudo: true, Line: line.Number})
				continue
			}
			if isa.IsRealInstruction(line.Op) {
				advance(4)
				out = append(out, Instruction{Mnemonic: line.Op, Operands: ops, Line: line.Number})
				continue
			}
			return nil, errors.Errorf("line %d: unrecognized operation %q", line.Number, line.Op)
		}
	}
	return out, nil
}

// resolveLabels substitutes every label-tagged operand field with its
// numeric address, turning the Operand fully numeric in place. Kind never
// changes — per the §9 note on never mutating a union across variants, this
// only ever fills in the numeric half of a field pair that was already
// reserved for it, never repurposes a field another Kind depends on.
func resolveLabels(ops []operand.Operand, table *symtab.Table) error {
	for i := range ops {
		op := &ops[i]
		switch {
		case op.Kind == operand.KindImmediate && op.ImmIsLabel:
			addr, ok := table.Lookup(op.ImmLabel)
			if !ok {
				return errors.Errorf("unknown label %q", op.ImmLabel)
			}
			op.ImmValue = int64(addr)
			op.ImmIsLabel = false
		case op.Kind == operand.KindMemory && op.MemOffsetIsLabel:
			addr, ok := table.Lookup(op.MemOffsetLabel)
			if !ok {
				return errors.Errorf("unknown label %q", op.MemOffsetLabel)
			}
			op.MemOffsetValue = int64(addr)
			op.MemOffsetIsLabel = false
		}
	}
	return nil
}
