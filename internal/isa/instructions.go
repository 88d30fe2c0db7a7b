package isa

// Format is one of the three MIPS-I instruction encodings (§4.6, GLOSSARY).
type Format uint8

const (
	FormatR Format = iota
	FormatI
	FormatJ
)

// Class refines Format into the operand shape the encoder actually packs,
// matching the bullet list in spec §4.6 one-to-one.
type Class uint8

const (
	ClassRArith      Class = iota // rs, rt, rd; funct
	ClassRShiftConst              // rt, rd, shamt=imm&0x1F; funct
	ClassRJumpReg                 // rs; funct
	ClassIArithImm                // rt, rs, imm16
	ClassILoadStore                // rt, offset(base) -> rs=base, rt, imm16=offset
	ClassIBranchTwoReg             // rs, rt, imm16
	ClassIBranchOneReg             // rs, imm16; rt is a fixed per-mnemonic constant
	ClassIUpperImm                 // rt, imm16
	ClassJTarget                   // target, imm26
	ClassNoOperand                 // opcode (+funct) only
)

// Meta is the per-mnemonic metadata the validator, resolver and encoder all
// key off. Opcode and Funct are always 6 bits; RtConst is only meaningful
// for ClassIBranchOneReg, where MIPS-I packs the distinguishing bit into the
// rt field of a shared opcode (bltz/bgez/bltzal/bgezal all use opcode 0x01).
type Meta struct {
	Name    string
	Format  Format
	Class   Class
	Opcode  uint32
	Funct   uint32
	RtConst uint32
	NumArgs int
}

// instructions is the MIPS-I core integer ISA this assembler targets. Arg
// counts are the *source* operand count, i.e. what the tokenizer/validator
// see before any address-mode normalization (a load/store's memory operand
// counts as one argument even though the encoder ultimately uses rs and
// imm16 out of it).
var instructions = buildInstructions()

func buildInstructions() map[string]Meta {
	m := map[string]Meta{}
	add := func(name string, class Class, format Format, opcode, funct uint32, numArgs int) {
		m[name] = Meta{Name: name, Format: format, Class: class, Opcode: opcode, Funct: funct, NumArgs: numArgs}
	}

	// R arithmetic/logical/compare: rs, rt, rd
	rArith := map[string]uint32{
		"add": 0x20, "addu": 0x21, "and": 0x24, "nor": 0x27, "or": 0x25,
		"slt": 0x2A, "sltu": 0x2B, "sub": 0x22, "subu": 0x23, "xor": 0x26,
		"sllv": 0x04, "srlv": 0x06, "srav": 0x07,
	}
	for name, funct := range rArith {
		add(name, ClassRArith, FormatR, 0, funct, 3)
	}

	// R shift-by-constant: rt, rd, shamt
	for name, funct := range map[string]uint32{"sll": 0x00, "srl": 0x02, "sra": 0x03} {
		add(name, ClassRShiftConst, FormatR, 0, funct, 3)
	}

	// R jump-register: rs
	for name, funct := range map[string]uint32{"jr": 0x08, "jalr": 0x09} {
		add(name, ClassRJumpReg, FormatR, 0, funct, 1)
	}

	// I arithmetic/compare-immediate: rt, rs, imm
	for name, opcode := range map[string]uint32{
		"addi": 0x08, "addiu": 0x09, "andi": 0x0C, "ori": 0x0D,
		"xori": 0x0E, "slti": 0x0A, "sltiu": 0x0B,
	} {
		add(name, ClassIArithImm, FormatI, opcode, 0, 3)
	}

	// I load/store: rt, offset(base)
	for name, opcode := range map[string]uint32{
		"lw": 0x23, "lh": 0x21, "lhu": 0x25, "lb": 0x20, "lbu": 0x24, "ll": 0x30,
		"sw": 0x2B, "sb": 0x28, "sh": 0x29, "sc": 0x38,
	} {
		add(name, ClassILoadStore, FormatI, opcode, 0, 2)
	}

	// I branch-two-register: rs, rt, label
	for name, opcode := range map[string]uint32{"beq": 0x04, "bne": 0x05} {
		add(name, ClassIBranchTwoReg, FormatI, opcode, 0, 3)
	}

	// I branch-one-register: rs, label (rt constant distinguishes shared opcodes)
	branchOneReg := []struct {
		name    string
		opcode  uint32
		rtConst uint32
	}{
		{"bltz", 0x01, 0}, {"bgez", 0x01, 1}, {"bltzal", 0x01, 16}, {"bgezal", 0x01, 17},
		{"bgtz", 0x07, 0}, {"blez", 0x06, 0},
	}
	for _, b := range branchOneReg {
		meta := Meta{Name: b.name, Format: FormatI, Class: ClassIBranchOneReg, Opcode: b.opcode, RtConst: b.rtConst, NumArgs: 2}
		m[b.name] = meta
	}

	// I upper-immediate: rt, imm
	add("lui", ClassIUpperImm, FormatI, 0x0F, 0, 2)

	// J: target
	for name, opcode := range map[string]uint32{"j": 0x02, "jal": 0x03} {
		add(name, ClassJTarget, FormatJ, opcode, 0, 1)
	}

	// No-operand
	add("nop", ClassNoOperand, FormatR, 0, 0x00, 0)
	add("syscall", ClassNoOperand, FormatR, 0, 0x0C, 0)
	add("break", ClassNoOperand, FormatR, 0, 0x0D, 0)
	add("eret", ClassNoOperand, FormatR, 0x10, 0x18, 0)

	return m
}

// Lookup returns the metadata for a real (non-pseudo) instruction mnemonic.
func Lookup(mnemonic string) (Meta, bool) {
	meta, ok := instructions[mnemonic]
	return meta, ok
}

// IsRealInstruction reports whether mnemonic names a real MIPS-I
// instruction (as opposed to a pseudo-instruction or a directive).
func IsRealInstruction(mnemonic string) bool {
	_, ok := instructions[mnemonic]
	return ok
}
