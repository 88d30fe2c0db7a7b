package datapath

// ALU operation codes, the textbook 4-bit encoding ALUControl produces and
// ALU consumes.
const (
	aluAnd     = 0b0000
	aluOr      = 0b0001
	aluAdd     = 0b0010
	aluSub     = 0b0110
	aluSetLess = 0b0111
)

// ALUControl (spec §4.7 "funct + ALUOp → 4-bit operation") resolves the
// PCU's coarse 2-bit ALUOp and, for R-type instructions, the instruction's
// funct field, into the concrete operation the ALU performs.
type ALUControl struct {
	ALUOp, Funct *Wire
	Operation    *Wire
}

func (c *ALUControl) Update() bool {
	var op uint32
	switch c.ALUOp.Read() {
	case 0b00:
		op = aluAdd
	case 0b01:
		op = aluSub
	default: // 0b10: dispatch on funct
		switch c.Funct.Read() {
		case 0x20, 0x21: // add, addu
			op = aluAdd
		case 0x22, 0x23: // sub, subu
			op = aluSub
		case 0x24:
			op = aluAnd
		case 0x25:
			op = aluOr
		case 0x2A, 0x2B: // slt, sltu
			op = aluSetLess
		default:
			op = aluAdd
		}
	}
	return c.Operation.Write(op)
}

// ALU performs the operation selected by Operation on A and B, driving
// Result and a Zero flag (spec §4.7 "32-bit arithmetic output + zero
// flag").
type ALU struct {
	A, B, Operation *Wire
	Result, Zero    *Wire
}

func (a *ALU) Update() bool {
	x, y := int32(a.A.Read()), int32(a.B.Read())
	var result uint32
	switch a.Operation.Read() {
	case aluAnd:
		result = uint32(x) & uint32(y)
	case aluOr:
		result = uint32(x) | uint32(y)
	case aluSub:
		result = uint32(x - y)
	case aluSetLess:
		if x < y {
			result = 1
		}
	default: // aluAdd
		result = uint32(x + y)
	}
	changed := a.Result.Write(result)
	zero := uint32(0)
	if result == 0 {
		zero = 1
	}
	changed = a.Zero.Write(zero) || changed
	return changed
}
