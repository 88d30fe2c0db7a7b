package datapath

import (
	"mipskit/internal/memory"

	"github.com/pkg/errors"
)

// StateElement is a component whose output only changes on a clock edge,
// after the combinational network has settled (spec §4.7's "state-holding"
// category: Register, plus the register file's write port and the data
// memory's write port, which are gated the same way). Latch returns an
// error so a §7 execution-time failure — an out-of-bounds store is the
// only one reachable through this interface — propagates out of
// CPU.Step instead of being swallowed.
type StateElement interface {
	Latch() error
}

// maxFixpointIterations bounds how many times the combinational network is
// re-evaluated in a single tick before CPU.Step gives up and reports
// non-convergence, per spec §4.7 and the §7 NonConvergence error.
const maxFixpointIterations = 64

// ErrNonConvergence is returned by Step when the combinational network
// fails to settle within maxFixpointIterations passes — in a correctly
// wired acyclic datapath this should never happen; it exists as the
// documented failure mode for a mis-wired or accidentally cyclic graph.
var ErrNonConvergence = errors.New("datapath did not converge")

// CPU is the single-cycle MIPS datapath: the full wire/component graph from
// spec §4.7, wired as IF (fetch by PC) → ID (split + register read) → EX
// (ALU, fed by the ALUSrc mux) → MEM (load/store) → WB (RegDst/MemToReg
// muxes select the destination register and write-back value).
type CPU struct {
	PC     *Register
	Memory *memory.Image
	Regs   *RegisterFile

	components []Component
	state      []StateElement
}

// New builds a CPU wired against img, with the program counter starting at
// entry.
func New(img *memory.Image, entry uint32) *CPU {
	c := &CPU{
		PC:     NewRegister(32),
		Memory: img,
		Regs:   NewRegisterFile(),
	}
	c.PC.In.Write(entry)
	c.PC.Latch()
	c.wire()
	return c
}

func (c *CPU) wire() {
	four := NewWire(32)
	four.Write(4)
	upperMask := NewWire(32)
	upperMask.Write(0xF0000000)

	instrMem := NewInstructionMemory(c.Memory)
	instrMem.Address = c.PC.Out
	instrMem.Instruction = NewWire(32)

	split := &InstructionSplitter{
		In:     instrMem.Instruction,
		Opcode: NewWire(6), Rs: NewWire(5), Rt: NewWire(5), Rd: NewWire(5),
		Shamt: NewWire(5), Funct: NewWire(6), Imm: NewWire(32), Addr: NewWire(26),
	}

	pcu := &PCU{
		Opcode:     split.Opcode,
		RegDst:     NewWire(1),
		ALUSrc:     NewWire(1),
		MemToReg:   NewWire(1),
		RegWrite:   NewWire(1),
		MemRead:    NewWire(1),
		MemWrite:   NewWire(1),
		Branch:     NewWire(1),
		BranchType: NewWire(1),
		Jump:       NewWire(1),
		ALUOp:      NewWire(2),
	}

	writeRegMux := &MUX{Sel: pcu.RegDst, A: split.Rt, B: split.Rd, Out: NewWire(5)}

	c.Regs.ReadReg1 = split.Rs
	c.Regs.ReadReg2 = split.Rt
	c.Regs.WriteReg = writeRegMux.Out
	c.Regs.RegWrite = pcu.RegWrite
	c.Regs.ReadData1 = NewWire(32)
	c.Regs.ReadData2 = NewWire(32)
	c.Regs.WriteData = NewWire(32)

	aluSrcMux := &MUX{Sel: pcu.ALUSrc, A: c.Regs.ReadData2, B: split.Imm, Out: NewWire(32)}
	aluCtrl := &ALUControl{ALUOp: pcu.ALUOp, Funct: split.Funct, Operation: NewWire(4)}
	alu := &ALU{
		A: c.Regs.ReadData1, B: aluSrcMux.Out, Operation: aluCtrl.Operation,
		Result: NewWire(32), Zero: NewWire(1),
	}

	memFile := NewMemoryFile(c.Memory)
	memFile.Address = alu.Result
	memFile.WriteData = c.Regs.ReadData2
	memFile.MemRead = pcu.MemRead
	memFile.MemWrite = pcu.MemWrite
	memFile.ReadData = NewWire(32)

	writeBackMux := &MUX{Sel: pcu.MemToReg, A: alu.Result, B: memFile.ReadData, Out: c.Regs.WriteData}

	pcAdder := &Adder{A: c.PC.Out, B: four, Out: NewWire(32)}
	shiftImm := &ShiftLeft{In: split.Imm, Out: NewWire(32), K: 2}
	branchAdder := &Adder{A: pcAdder.Out, B: shiftImm.Out, Out: NewWire(32)}

	notZero := &NotGate{A: alu.Zero, Out: NewWire(1)}
	branchCondMux := &MUX{Sel: pcu.BranchType, A: alu.Zero, B: notZero.Out, Out: NewWire(1)}
	takeBranch := &AndGate{A: pcu.Branch, B: branchCondMux.Out, Out: NewWire(1)}
	pcSrcMux := &MUX{Sel: takeBranch.Out, A: pcAdder.Out, B: branchAdder.Out, Out: NewWire(32)}

	shiftAddr := &ShiftLeft{In: split.Addr, Out: NewWire(32), K: 2}
	upperBits := &AndGate{A: pcAdder.Out, B: upperMask, Out: NewWire(32)}
	jumpTarget := &OrGate{A: upperBits.Out, B: shiftAddr.Out, Out: NewWire(32)}
	pcNextMux := &MUX{Sel: pcu.Jump, A: pcSrcMux.Out, B: jumpTarget.Out, Out: c.PC.In}

	// Registration order mirrors the textbook stage order (IF, ID, EX, MEM,
	// WB) plus the branch/jump target computation that runs alongside EX.
	c.components = []Component{
		instrMem, split, pcu, writeRegMux, c.Regs,
		aluSrcMux, aluCtrl, alu,
		memFile, writeBackMux,
		pcAdder, shiftImm, branchAdder, notZero, branchCondMux, takeBranch, pcSrcMux,
		shiftAddr, upperBits, jumpTarget, pcNextMux,
	}
	c.state = []StateElement{c.PC, c.Regs, memFile}
}

// Step runs one clock cycle: settle the combinational network to a
// fixpoint, then latch every state-holding element simultaneously.
func (c *CPU) Step() error {
	for i := 0; i < maxFixpointIterations; i++ {
		changed := false
		for _, comp := range c.components {
			if comp.Update() {
				changed = true
			}
		}
		if !changed {
			for _, s := range c.state {
				if err := s.Latch(); err != nil {
					return errors.Wrap(err, "memory access error")
				}
			}
			return nil
		}
	}
	return ErrNonConvergence
}

// Run executes up to maxSteps clock cycles, stopping early if the fetched
// instruction word is all zero twice in a row (run off the end of the
// loaded program into the zeroed tail of memory).
func (c *CPU) Run(maxSteps int) (int, error) {
	zeroStreak := 0
	for i := 0; i < maxSteps; i++ {
		word, _ := c.Memory.ReadWord(c.PC.Out.Read())
		if word == 0 {
			zeroStreak++
			if zeroStreak >= 2 {
				return i, nil
			}
		} else {
			zeroStreak = 0
		}
		if err := c.Step(); err != nil {
			return i, err
		}
	}
	return maxSteps, nil
}
