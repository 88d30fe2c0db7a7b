// Package encoder packs a resolved internal/resolver.Instruction into the
// big-endian 32-bit MIPS-I word described in spec §4.6. By the time a line
// reaches here every operand is numeric: no label, no register alias, no
// pseudo remains to decide between.
package encoder

import (
	"mipskit/internal/isa"
	"mipskit/internal/operand"
	"mipskit/internal/resolver"

	"github.com/pkg/errors"
)

// Encode packs one resolved instruction into its 32-bit word. addr is the
// byte address this instruction will be loaded at, needed to turn a
// branch/jump operand's absolute target (what internal/resolver leaves in
// the operand, per §4.6) into the field internal/datapath's literal §4.7
// wiring expects to find there: a PC-relative word count for branches
// (`PC+4 + (imm<<2)`), an absolute word address for jumps
// (`upperBits(PC+4) | (target<<2)`). Every other instruction class ignores
// addr.
func Encode(in resolver.Instruction, addr uint32) (uint32, error) {
	meta, ok := isa.Lookup(in.Mnemonic)
	if !ok {
		return 0, errors.Errorf("line %d: %q is not a real instruction", in.Line, in.Mnemonic)
	}
	ops := in.Operands

	switch meta.Class {
	case isa.ClassRArith:
		rd, rs, rt := regNum(ops[0]), regNum(ops[1]), regNum(ops[2])
		return packR(meta.Opcode, rs, rt, rd, 0, meta.Funct), nil

	case isa.ClassRShiftConst:
		rd, rt, shamt := regNum(ops[0]), regNum(ops[1]), uint32(ops[2].ImmValue)&0x1F
		return packR(meta.Opcode, 0, rt, rd, shamt, meta.Funct), nil

	case isa.ClassRJumpReg:
		rs := regNum(ops[0])
		return packR(meta.Opcode, rs, 0, 0, 0, meta.Funct), nil

	case isa.ClassIArithImm:
		rt, rs, immv := regNum(ops[0]), regNum(ops[1]), uint32(ops[2].ImmValue)&0xFFFF
		return packI(meta.Opcode, rs, rt, immv), nil

	case isa.ClassILoadStore:
		rt := regNum(ops[0])
		mem := ops[1]
		switch mem.Kind {
		case operand.KindMemory:
			return packI(meta.Opcode, uint32(mem.MemBaseNum), rt, uint32(mem.MemOffsetValue)&0xFFFF), nil
		case operand.KindImmediate:
			// Degenerate "rt, offset" form with no base: base is $0 (§4.6).
			return packI(meta.Opcode, uint32(isa.Zero), rt, uint32(mem.ImmValue)&0xFFFF), nil
		default:
			return 0, errors.Errorf("line %d: %s expects a memory operand", in.Line, in.Mnemonic)
		}

	case isa.ClassIBranchTwoReg:
		rs, rt := regNum(ops[0]), regNum(ops[1])
		return packI(meta.Opcode, rs, rt, branchOffset(addr, ops[2].ImmValue)), nil

	case isa.ClassIBranchOneReg:
		rs := regNum(ops[0])
		return packI(meta.Opcode, rs, meta.RtConst, branchOffset(addr, ops[1].ImmValue)), nil

	case isa.ClassIUpperImm:
		rt, immv := regNum(ops[0]), uint32(ops[1].ImmValue)&0xFFFF
		return packI(meta.Opcode, 0, rt, immv), nil

	case isa.ClassJTarget:
		target := (uint32(ops[0].ImmValue) >> 2) & 0x03FFFFFF
		return meta.Opcode<<26 | target, nil

	case isa.ClassNoOperand:
		return packR(meta.Opcode, 0, 0, 0, 0, meta.Funct), nil

	default:
		return 0, errors.Errorf("line %d: unencodable instruction class for %q", in.Line, in.Mnemonic)
	}
}

func regNum(op operand.Operand) uint32 {
	return uint32(op.RegisterNum)
}

// branchOffset converts target, an absolute byte address, into the signed
// word count internal/datapath's branchAdder expects: target is reached by
// PC+4 + (offset<<2), so offset = (target - (addr+4)) / 4.
func branchOffset(addr uint32, target int64) uint32 {
	offset := (target - int64(addr) - 4) / 4
	return uint32(offset) & 0xFFFF
}

func packR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

func packI(opcode, rs, rt, imm16 uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | imm16
}
