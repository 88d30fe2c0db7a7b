package isa

// Register describes one of the 32 general-purpose MIPS integer registers.
// Desc mirrors the teacher's register metadata table: mechanical here, but
// useful to a future disassembler or a -d flag on cmd/mipsasm.
type Register struct {
	Number uint8
	Desc   string
}

// Zero is the hard-wired zero register. It is never checked against at
// encode time; writes to it are a datapath concern (internal/datapath).
const Zero uint8 = 0

// aliases maps every ABI register name (including the canonical "$N" forms,
// generated below) to its register number.
var aliases = map[string]uint8{
	"$zero": 0,
	"$at":   1,
	"$v0":   2, "$v1": 3,
	"$a0": 4, "$a1": 5, "$a2": 6, "$a3": 7,
	"$t0": 8, "$t1": 9, "$t2": 10, "$t3": 11, "$t4": 12, "$t5": 13, "$t6": 14, "$t7": 15,
	"$s0": 16, "$s1": 17, "$s2": 18, "$s3": 19, "$s4": 20, "$s5": 21, "$s6": 22, "$s7": 23,
	"$t8": 24, "$t9": 25,
	"$k0": 26, "$k1": 27,
	"$gp": 28,
	"$sp": 29,
	"$fp": 30,
	"$ra": 31,
}

var descByNumber = map[uint8]string{
	0: "constant zero", 1: "assembler temporary",
	2: "value 0", 3: "value 1",
	4: "argument 0", 5: "argument 1", 6: "argument 2", 7: "argument 3",
	8: "temporary 0", 9: "temporary 1", 10: "temporary 2", 11: "temporary 3",
	12: "temporary 4", 13: "temporary 5", 14: "temporary 6", 15: "temporary 7",
	16: "saved 0", 17: "saved 1", 18: "saved 2", 19: "saved 3",
	20: "saved 4", 21: "saved 5", 22: "saved 6", 23: "saved 7",
	24: "temporary 8", 25: "temporary 9",
	26: "kernel 0", 27: "kernel 1",
	28: "global pointer", 29: "stack pointer", 30: "frame pointer", 31: "return address",
}

func init() {
	// Canonical "$N" forms map one-to-one onto the numbered registers; build
	// them here instead of writing all 32 out by hand alongside the aliases.
	for n := uint8(0); n < 32; n++ {
		aliases[canonicalName(n)] = n
	}
}

func canonicalName(n uint8) string {
	digits := [2]byte{'0' + n/10, '0' + n%10}
	if n < 10 {
		return "$" + string(digits[1])
	}
	return "$" + string(digits[0:2])
}

// LookupRegister resolves a register reference ("$8", "$t0", "$zero", ...)
// to its canonical register number. The second return is false when name is
// not a recognized register.
func LookupRegister(name string) (Register, bool) {
	n, ok := aliases[name]
	if !ok {
		return Register{}, false
	}
	return Register{Number: n, Desc: descByNumber[n]}, true
}

// CanonicalRegisterName returns the "$N" form of a register number, used by
// the resolver (§4.5 Stage B) to rebuild de-aliased instruction text.
func CanonicalRegisterName(n uint8) string {
	return canonicalName(n)
}
