package datapath

// RegisterFile (spec §4.7: "two read ports, one write port, gated by
// regWrite") is the datapath's view of the 32 general-purpose registers.
// Reads are combinational; the write only takes effect on Latch, matching
// real register-file timing (a single-cycle instruction can read the old
// value of a register it's also writing this cycle).
type RegisterFile struct {
	ReadReg1, ReadReg2, WriteReg *Wire // 5-bit register numbers
	WriteData, RegWrite         *Wire
	ReadData1, ReadData2        *Wire

	regs [32]uint32
}

// NewRegisterFile creates a register file with every register zeroed;
// register 0 is never written regardless of RegWrite (§4.6/§9: "$0 is
// never an assembler-generated destination", carried through at the
// hardware level too).
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

func (f *RegisterFile) Update() bool {
	changed := f.ReadData1.Write(f.regs[f.ReadReg1.Read()&0x1F])
	changed = f.ReadData2.Write(f.regs[f.ReadReg2.Read()&0x1F]) || changed
	return changed
}

// Latch commits a pending write. Called by the simulator alongside every
// other state-holding element, after the combinational network settles.
// Like Register.Latch, this can never fail; the error return exists only
// to satisfy StateElement.
func (f *RegisterFile) Latch() error {
	if f.RegWrite.Read() == 0 {
		return nil
	}
	n := f.WriteReg.Read() & 0x1F
	if n == 0 {
		return nil
	}
	f.regs[n] = f.WriteData.Read()
	return nil
}

// Snapshot returns a copy of all 32 registers, for inspection/tests.
func (f *RegisterFile) Snapshot() [32]uint32 {
	return f.regs
}
