package datapath

// Component is anything that recomputes its output wires from its current
// input wires. Update reports whether any output it drives changed value;
// the simulator's fixpoint loop keeps re-running every component in
// registration order until a full pass changes nothing.
type Component interface {
	Update() bool
}

// MUX selects between A and B based on Sel (bit 0), driving Out.
type MUX struct {
	Sel, A, B, Out *Wire
}

func (m *MUX) Update() bool {
	if m.Sel.Read() != 0 {
		return m.Out.Write(m.B.Read())
	}
	return m.Out.Write(m.A.Read())
}

// Adder drives Out with A+B, truncated to Out's width.
type Adder struct {
	A, B, Out *Wire
}

func (a *Adder) Update() bool {
	return a.Out.Write(a.A.Read() + a.B.Read())
}

// AndGate drives Out with the bitwise AND of A and B.
type AndGate struct {
	A, B, Out *Wire
}

func (g *AndGate) Update() bool {
	return g.Out.Write(g.A.Read() & g.B.Read())
}

// OrGate drives Out with the bitwise OR of A and B.
type OrGate struct {
	A, B, Out *Wire
}

func (g *OrGate) Update() bool {
	return g.Out.Write(g.A.Read() | g.B.Read())
}

// NotGate drives Out with the bitwise complement of A, within A's width.
type NotGate struct {
	A, Out *Wire
}

func (g *NotGate) Update() bool {
	return g.Out.Write(^g.A.Read() & mask(g.A.width))
}

// ZeroExtender widens In into Out without propagating a sign bit. Out must
// be at least as wide as In; the write already masks to Out's width, so
// this is a plain copy with no arithmetic.
type ZeroExtender struct {
	In, Out *Wire
}

func (z *ZeroExtender) Update() bool {
	return z.Out.Write(z.In.Read())
}

// ShiftLeft drives Out with In shifted left by a fixed, compile-time
// constant K (used for the branch target's implicit word-to-byte scaling).
type ShiftLeft struct {
	In, Out *Wire
	K       uint8
}

func (s *ShiftLeft) Update() bool {
	return s.Out.Write(s.In.Read() << s.K)
}

// InstructionSplitter decodes a 32-bit instruction word into every field a
// MIPS-I instruction might use. Imm is sign-extended to 32 bits here rather
// than by a separate component, since extracting the field and extending
// it are both pure bit arithmetic on the same register-sized value; Addr is
// the 26-bit jump target, left unextended (a jump target is never signed).
type InstructionSplitter struct {
	In                                      *Wire
	Opcode, Rs, Rt, Rd, Shamt, Funct, Imm, Addr *Wire
}

func (s *InstructionSplitter) Update() bool {
	v := s.In.Read()
	changed := s.Opcode.Write(v >> 26)
	changed = s.Rs.Write(v>>21&0x1F) || changed
	changed = s.Rt.Write(v>>16&0x1F) || changed
	changed = s.Rd.Write(v>>11&0x1F) || changed
	changed = s.Shamt.Write(v>>6&0x1F) || changed
	changed = s.Funct.Write(v&0x3F) || changed
	changed = s.Imm.Write(signExtend16(v&0xFFFF)) || changed
	changed = s.Addr.Write(v&0x03FFFFFF) || changed
	return changed
}

func signExtend16(v uint32) uint32 {
	if v&0x8000 != 0 {
		return v | 0xFFFF0000
	}
	return v
}
