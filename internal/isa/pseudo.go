package isa

// PseudoMeta describes one pseudo-instruction mnemonic: how many source
// operands it takes and how many real instructions its expansion always
// produces. Every pseudo in this ISA has a fixed expansion length (the
// closed set in spec §3/§4.5 has no variable-length pseudo), which is what
// lets pass 1 (§4.4) charge it a flat 4 bytes and Stage A (§4.5) correct it
// to ExpandedLen*4 in one pass without iterating to a fixpoint.
type PseudoMeta struct {
	Name        string
	NumArgs     int
	ExpandedLen int
}

var pseudos = map[string]PseudoMeta{
	"abs":  {Name: "abs", NumArgs: 2, ExpandedLen: 4},
	"neg":  {Name: "neg", NumArgs: 2, ExpandedLen: 1},
	"negu": {Name: "negu", NumArgs: 2, ExpandedLen: 1},
	"not":  {Name: "not", NumArgs: 2, ExpandedLen: 1},
	"move": {Name: "move", NumArgs: 2, ExpandedLen: 1},
	"li":   {Name: "li", NumArgs: 2, ExpandedLen: 2},
	"la":   {Name: "la", NumArgs: 2, ExpandedLen: 2},
	"blt":  {Name: "blt", NumArgs: 3, ExpandedLen: 2},
	"bgt":  {Name: "bgt", NumArgs: 3, ExpandedLen: 2},
	"ble":  {Name: "ble", NumArgs: 3, ExpandedLen: 2},
	"bge":  {Name: "bge", NumArgs: 3, ExpandedLen: 2},
	"beqz": {Name: "beqz", NumArgs: 2, ExpandedLen: 1},
	"sge":  {Name: "sge", NumArgs: 3, ExpandedLen: 2},
	"sgt":  {Name: "sgt", NumArgs: 3, ExpandedLen: 1},
}

// LookupPseudo returns the metadata for a pseudo-instruction mnemonic.
func LookupPseudo(mnemonic string) (PseudoMeta, bool) {
	meta, ok := pseudos[mnemonic]
	return meta, ok
}

// IsPseudo reports whether mnemonic names a pseudo-instruction.
func IsPseudo(mnemonic string) bool {
	_, ok := pseudos[mnemonic]
	return ok
}

// AssemblerTemp is the $at register ($1), reserved for pseudo expansions.
const AssemblerTemp uint8 = 1
