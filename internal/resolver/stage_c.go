package resolver

import (
	"mipskit/internal/isa"
	"mipskit/internal/operand"

	"github.com/pkg/errors"
)

// Expand implements spec §4.5 Stage C: every label is already numeric (by
// Stage B), so each pseudo-instruction's expansion can be generated
// directly from its operands' register numbers and resolved immediate
// values. Real instructions pass through untouched. The argument order
// assumed for each real mnemonic here is the same one internal/encoder
// packs: destination register first for R-type arithmetic, and for
// branches the operand order each mnemonic already carries.
func Expand(instrs []Instruction) ([]Instruction, error) {
	out := make([]Instruction, 0, len(instrs))
	for _, in := range instrs {
		if !in.IsPseudo {
			out = append(out, in)
			continue
		}
		expanded, err := expandOne(in)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", in.Line)
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func reg(n uint8) operand.Operand {
	return operand.Operand{Kind: operand.KindRegister, RegisterNum: n, RegisterName: isa.CanonicalRegisterName(n)}
}

func imm(v int64) operand.Operand {
	return operand.Operand{Kind: operand.KindImmediate, ImmValue: v}
}

func real(line int, mnemonic string, ops ...operand.Operand) Instruction {
	return Instruction{Mnemonic: mnemonic, Operands: ops, Line: line}
}

// expandBGE produces the two real instructions the pseudo table gives for
// `bge rs,rt,label`: `slt $1,rs,rt` ; `beq $1,$0,label`. The table's own
// printed row for bge (`slt $1,a1,a0`) is textually identical to ble's —
// almost certainly a copy/paste slip in the source table, since a literal
// duplicate would make bge branch exactly like ble instead of its logical
// complement. This implements the complement (operands not swapped,
// matching bge's name) rather than the duplicate row; see DESIGN.md's
// Open-question decisions for the full reasoning. Shared by the standalone
// "bge" case and by "abs", which the table expands through an embedded
// bge.
func expandBGE(ln int, rs, rt uint8, label operand.Operand) []Instruction {
	at, zero := isa.AssemblerTemp, isa.Zero
	return []Instruction{
		real(ln, "slt", reg(at), reg(rs), reg(rt)),
		real(ln, "beq", reg(at), reg(zero), label),
	}
}

func expandOne(in Instruction) ([]Instruction, error) {
	at, zero := isa.AssemblerTemp, isa.Zero
	ops := in.Operands
	ln := in.Line

	switch in.Mnemonic {
	case "abs": // rd, rs — table: sub rd,$0,rs ; bge rs,$0,1 ; sub rd,$0,rs.
		// The branch target "1" is a bare numeric literal in the table (the
		// same convention as e.g. sge's trailing "1"), not a label to
		// resolve, so it is carried straight through as the beq's encoded
		// immediate. bge is itself a pseudo per the table, inlined here via
		// expandBGE rather than re-entering Stage C, since Stage C's output
		// must already be fully real (no nested pseudos to re-expand).
		rd, rs := ops[0].RegisterNum, ops[1].RegisterNum
		out := []Instruction{real(ln, "sub", reg(rd), reg(zero), reg(rs))}
		out = append(out, expandBGE(ln, rs, isa.Zero, imm(1))...)
		out = append(out, real(ln, "sub", reg(rd), reg(zero), reg(rs)))
		return out, nil

	case "neg": // rd, rs
		rd, rs := ops[0].RegisterNum, ops[1].RegisterNum
		return []Instruction{real(ln, "sub", reg(rd), reg(zero), reg(rs))}, nil

	case "negu": // rd, rs
		rd, rs := ops[0].RegisterNum, ops[1].RegisterNum
		return []Instruction{real(ln, "subu", reg(rd), reg(zero), reg(rs))}, nil

	case "not": // rd, rs
		rd, rs := ops[0].RegisterNum, ops[1].RegisterNum
		return []Instruction{real(ln, "nor", reg(rd), reg(rs), reg(zero))}, nil

	case "move": // rd, rs — table: add rd,$0,rs.
		rd, rs := ops[0].RegisterNum, ops[1].RegisterNum
		return []Instruction{real(ln, "add", reg(rd), reg(zero), reg(rs))}, nil

	case "li": // rd, imm — matches the worked example verbatim: lui/ori both
		// target rd directly, no assembler temp involved.
		rd := ops[0].RegisterNum
		v := ops[1].ImmValue
		upper, lower := uint32(v)>>16, uint32(v)&0xFFFF
		return []Instruction{
			real(ln, "lui", reg(rd), imm(int64(upper))),
			real(ln, "ori", reg(rd), reg(rd), imm(int64(lower))),
		}, nil

	case "la": // rd, address — same expansion shape as li, over a resolved address
		rd := ops[0].RegisterNum
		v := ops[1].ImmValue
		upper, lower := uint32(v)>>16, uint32(v)&0xFFFF
		return []Instruction{
			real(ln, "lui", reg(rd), imm(int64(upper))),
			real(ln, "ori", reg(rd), reg(rd), imm(int64(lower))),
		}, nil

	case "blt": // rs, rt, label
		rs, rt, label := ops[0].RegisterNum, ops[1].RegisterNum, ops[2]
		return []Instruction{
			real(ln, "slt", reg(at), reg(rs), reg(rt)),
			real(ln, "bne", reg(at), reg(zero), label),
		}, nil

	case "bgt": // rs, rt, label
		rs, rt, label := ops[0].RegisterNum, ops[1].RegisterNum, ops[2]
		return []Instruction{
			real(ln, "slt", reg(at), reg(rt), reg(rs)),
			real(ln, "bne", reg(at), reg(zero), label),
		}, nil

	case "ble": // rs, rt, label
		rs, rt, label := ops[0].RegisterNum, ops[1].RegisterNum, ops[2]
		return []Instruction{
			real(ln, "slt", reg(at), reg(rt), reg(rs)),
			real(ln, "beq", reg(at), reg(zero), label),
		}, nil

	case "bge": // rs, rt, label — see expandBGE's doc comment on the table typo.
		rs, rt, label := ops[0].RegisterNum, ops[1].RegisterNum, ops[2]
		return expandBGE(ln, rs, rt, label), nil

	case "beqz": // rs, label
		rs, label := ops[0].RegisterNum, ops[1]
		return []Instruction{real(ln, "beq", reg(rs), reg(zero), label)}, nil

	case "sge": // rd, rs, rt — table: slt $1,rt,rs ; xori rd,$1,1.
		rd, rs, rt := ops[0].RegisterNum, ops[1].RegisterNum, ops[2].RegisterNum
		return []Instruction{
			real(ln, "slt", reg(at), reg(rt), reg(rs)),
			real(ln, "xori", reg(rd), reg(at), imm(1)),
		}, nil

	case "sgt": // rd, rs, rt
		rd, rs, rt := ops[0].RegisterNum, ops[1].RegisterNum, ops[2].RegisterNum
		return []Instruction{real(ln, "slt", reg(rd), reg(rt), reg(rs))}, nil

	default:
		return nil, errors.Errorf("unknown pseudo-instruction %q", in.Mnemonic)
	}
}
