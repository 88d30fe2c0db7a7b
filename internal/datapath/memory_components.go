package datapath

import "mipskit/internal/memory"

// InstructionMemory (spec §4.7) wraps the external memory image for
// instruction fetch: combinational, address in, 32-bit instruction word
// out, read-only.
type InstructionMemory struct {
	Address     *Wire
	Instruction *Wire

	image *memory.Image
}

// NewInstructionMemory wraps img for instruction fetch.
func NewInstructionMemory(img *memory.Image) *InstructionMemory {
	return &InstructionMemory{image: img}
}

func (m *InstructionMemory) Update() bool {
	word, err := m.image.ReadWord(m.Address.Read())
	if err != nil {
		// Past the end of the loaded program: the fetch stage sees an
		// all-zero word, which decodes as nop.
		word = 0
	}
	return m.Instruction.Write(word)
}

// MemoryFile (spec §4.7) wraps the same external memory image for the MEM
// stage's load/store, gated by MemRead/MemWrite exactly like a real data
// memory port.
type MemoryFile struct {
	Address, WriteData *Wire
	MemRead, MemWrite  *Wire
	ReadData           *Wire

	image *memory.Image
}

// NewMemoryFile wraps img for the MEM stage.
func NewMemoryFile(img *memory.Image) *MemoryFile {
	return &MemoryFile{image: img}
}

func (m *MemoryFile) Update() bool {
	if m.MemRead.Read() == 0 {
		return false
	}
	word, err := m.image.ReadWord(m.Address.Read())
	if err != nil {
		word = 0
	}
	return m.ReadData.Write(word)
}

// Latch performs the actual store, after the combinational network (and
// thus the address/data it depends on) has settled. An out-of-bounds
// address is a §7 execution-time memory access error; it is returned
// rather than discarded so CPU.Step can surface it to the caller instead
// of letting a bad store silently no-op.
func (m *MemoryFile) Latch() error {
	if m.MemWrite.Read() == 0 {
		return nil
	}
	var buf [4]byte
	v := m.WriteData.Read()
	buf[0] = byte(v >> 24)
	buf[1] = byte(v >> 16)
	buf[2] = byte(v >> 8)
	buf[3] = byte(v)
	return m.image.Write(m.Address.Read(), buf[:])
}
