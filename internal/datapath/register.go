package datapath

// Register is the general state-holding element in the graph (spec §4.7): it
// samples In on Latch and presents that sampled value as Out until the next
// Latch. Combinational components only ever read Out during a tick; In is
// free to keep changing as the network settles without disturbing what the
// rest of the datapath sees until the clock edge actually fires.
type Register struct {
	In, Out *Wire
	value   uint32
}

// NewRegister creates a register of the given width, with In and Out as
// separate wires so the captured value can't be observed changing mid-tick.
func NewRegister(width uint8) *Register {
	return &Register{In: NewWire(width), Out: NewWire(width)}
}

// Latch captures In's current value and exposes it on Out. Called once per
// clock edge, after the combinational network has reached a fixpoint. A
// plain register can never fail to latch; it satisfies StateElement with a
// nil error so CPU.Step can treat every state-holding element uniformly.
func (r *Register) Latch() error {
	r.value = r.In.Read()
	r.Out.Write(r.value)
	return nil
}
