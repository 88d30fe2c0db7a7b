package datapath

// PCU (spec §4.7 "opcode → control lines") decodes the opcode field into
// every control signal the rest of the datapath reads. It models the
// canonical single-cycle teaching subset — R-type arithmetic, addi, lw, sw,
// beq, bne, j — the same scope the stiteler-datapath example narrows its
// own pipeline to (add/sub/lb/sb only); the full MIPS-I set still goes
// through internal/assembler and internal/encoder, it just isn't all
// individually wired into this CPU model.
type PCU struct {
	Opcode *Wire

	RegDst, ALUSrc, MemToReg, RegWrite *Wire
	MemRead, MemWrite                  *Wire
	Branch, BranchType, Jump           *Wire
	ALUOp                              *Wire // 2 bits
}

const (
	opR    = 0x00
	opAddi = 0x08
	opLw   = 0x23
	opSw   = 0x2B
	opBeq  = 0x04
	opBne  = 0x05
	opJ    = 0x02
)

func (p *PCU) Update() bool {
	var regDst, aluSrc, memToReg, regWrite, memRead, memWrite, branch, branchType, jump, aluOp uint32

	switch p.Opcode.Read() {
	case opR:
		regDst, regWrite, aluOp = 1, 1, 0b10
	case opAddi:
		aluSrc, regWrite, aluOp = 1, 1, 0b00
	case opLw:
		aluSrc, memToReg, regWrite, memRead, aluOp = 1, 1, 1, 1, 0b00
	case opSw:
		aluSrc, memWrite, aluOp = 1, 1, 0b00
	case opBeq:
		branch, aluOp = 1, 0b01
	case opBne:
		branch, branchType, aluOp = 1, 1, 0b01
	case opJ:
		jump = 1
	}

	changed := p.RegDst.Write(regDst)
	changed = p.ALUSrc.Write(aluSrc) || changed
	changed = p.MemToReg.Write(memToReg) || changed
	changed = p.RegWrite.Write(regWrite) || changed
	changed = p.MemRead.Write(memRead) || changed
	changed = p.MemWrite.Write(memWrite) || changed
	changed = p.Branch.Write(branch) || changed
	changed = p.BranchType.Write(branchType) || changed
	changed = p.Jump.Write(jump) || changed
	changed = p.ALUOp.Write(aluOp) || changed
	return changed
}
