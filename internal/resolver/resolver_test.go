package resolver

import (
	"testing"

	"mipskit/internal/lexer"
	"mipskit/internal/memory"
	"mipskit/internal/symtab"
)

func mustNormalize(t *testing.T, src string) []lexer.Line {
	t.Helper()
	lines, err := lexer.Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return lines
}

// TestFixupSymbolsShiftsPastPseudoExpansion is spec's worked example #6:
// li $t0,1 / target: / nop — target must resolve to +8, not the pass-1
// flat-charge +4, once Stage A accounts for li's real 2-instruction length.
func TestFixupSymbolsShiftsPastPseudoExpansion(t *testing.T) {
	lines := mustNormalize(t, "li $t0, 1\ntarget:\nnop")
	table, err := symtab.NewBuilder(0, 0x800).Run(lines)
	if err != nil {
		t.Fatalf("pass 1: %v", err)
	}
	if err := FixupSymbols(lines, table, 0, 0x800); err != nil {
		t.Fatalf("fixup: %v", err)
	}
	addr, ok := table.Lookup("target")
	if !ok || addr != 8 {
		t.Fatalf("got %d, ok=%v, want 8", addr, ok)
	}
}

func buildResolved(t *testing.T, src string) ([]Instruction, *symtab.Table, *memory.Image) {
	t.Helper()
	lines := mustNormalize(t, src)
	table, err := symtab.NewBuilder(0, 0x800).Run(lines)
	if err != nil {
		t.Fatalf("pass 1: %v", err)
	}
	if err := FixupSymbols(lines, table, 0, 0x800); err != nil {
		t.Fatalf("fixup: %v", err)
	}
	mem := memory.New(0x1000)
	resolved, err := ResolveOperands(lines, table, mem, 0, 0x800)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return resolved, table, mem
}

func TestResolveOperandsSubstitutesLabel(t *testing.T) {
	resolved, _, _ := buildResolved(t, "loop: beq $t0, $t2, loop")
	if len(resolved) != 1 {
		t.Fatalf("got %d instructions, want 1", len(resolved))
	}
	in := resolved[0]
	if in.Mnemonic != "beq" {
		t.Fatalf("got %+v", in)
	}
	label := in.Operands[2]
	if label.ImmIsLabel || label.ImmValue != 0 {
		t.Fatalf("got %+v, want resolved label at address 0", label)
	}
}

func TestResolveOperandsUnknownLabelErrors(t *testing.T) {
	lines := mustNormalize(t, "j nowhere")
	table, err := symtab.NewBuilder(0, 0x800).Run(lines)
	if err != nil {
		t.Fatalf("pass 1: %v", err)
	}
	if err := FixupSymbols(lines, table, 0, 0x800); err != nil {
		t.Fatalf("fixup: %v", err)
	}
	mem := memory.New(0x1000)
	if _, err := ResolveOperands(lines, table, mem, 0, 0x800); err == nil {
		t.Fatal("expected an unknown-label error")
	}
}

func TestResolveOperandsExecutesDirectives(t *testing.T) {
	_, _, mem := buildResolved(t, ".data\nmsg: .asciiz \"hi\"")
	b0, _ := mem.ReadByte(0x800)
	b1, _ := mem.ReadByte(0x801)
	b2, _ := mem.ReadByte(0x802)
	if b0 != 'h' || b1 != 'i' || b2 != 0 {
		t.Fatalf("got %d %d %d", b0, b1, b2)
	}
}

// TestExpandMoveAndNeg pins move's expansion to the spec table's literal
// `add rd,$0,rs` (operand order rd,$0,rs, not addu with rs,$0 swapped).
func TestExpandMoveAndNeg(t *testing.T) {
	resolved, _, _ := buildResolved(t, "move $t0, $t1\nneg $t0, $t1")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 2 {
		t.Fatalf("got %d instructions, want 2", len(expanded))
	}
	if expanded[0].Mnemonic != "add" || expanded[1].Mnemonic != "sub" {
		t.Fatalf("got %+v", expanded)
	}
	move := expanded[0]
	if move.Operands[0].RegisterNum != 8 || move.Operands[1].RegisterNum != 0 || move.Operands[2].RegisterNum != 9 {
		t.Fatalf("move should be add $t0,$0,$t1 ($8,$0,$9), got %+v", move.Operands)
	}
}

// TestExpandSgeMatchesLiteralTable pins sge's expansion to the spec table's
// `slt $1,rt,rs ; xori rd,$1,1` — $1 compares rt against rs (not rs against
// rt), and the xori result lands in rd, not back in $1.
func TestExpandSgeMatchesLiteralTable(t *testing.T) {
	resolved, _, _ := buildResolved(t, "sge $t0, $t1, $t2")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 2 || expanded[0].Mnemonic != "slt" || expanded[1].Mnemonic != "xori" {
		t.Fatalf("got %+v", expanded)
	}
	slt := expanded[0]
	if slt.Operands[0].RegisterNum != 1 || slt.Operands[1].RegisterNum != 10 || slt.Operands[2].RegisterNum != 9 {
		t.Fatalf("slt should be $1,$t2,$t1 ($1,$10,$9), got %+v", slt.Operands)
	}
	xori := expanded[1]
	if xori.Operands[0].RegisterNum != 8 || xori.Operands[1].RegisterNum != 1 || xori.Operands[2].ImmValue != 1 {
		t.Fatalf("xori should be $t0,$1,1 ($8,$1,1), got %+v", xori.Operands)
	}
}

// TestExpandBgeProducesComplementOfBle pins bge's expansion to
// expandBGE's complement-of-ble reading (slt $1,rs,rt ; beq $1,$0,label),
// not the spec table's row that is a byte-for-byte duplicate of ble's.
func TestExpandBgeProducesComplementOfBle(t *testing.T) {
	resolved, _, _ := buildResolved(t, "bge $t0, $t1, there\nthere:\nnop")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 3 { // slt, beq, nop
		t.Fatalf("got %d instructions: %+v", len(expanded), expanded)
	}
	if expanded[0].Mnemonic != "slt" || expanded[1].Mnemonic != "beq" {
		t.Fatalf("got %+v", expanded[:2])
	}
	slt := expanded[0]
	if slt.Operands[0].RegisterNum != 1 || slt.Operands[1].RegisterNum != 8 || slt.Operands[2].RegisterNum != 9 {
		t.Fatalf("slt should be $1,$t0,$t1 ($1,$8,$9), got %+v", slt.Operands)
	}
	beq := expanded[1]
	if beq.Operands[0].RegisterNum != 1 || beq.Operands[1].RegisterNum != 0 {
		t.Fatalf("beq should compare $1 against $0, got %+v", beq.Operands[:2])
	}
}

// TestExpandAbsMatchesLiteralTable pins abs to the spec table's literal,
// four-instruction expansion (sub ; slt $1,rs,$0 ; beq $1,$0,1 ; sub),
// including the embedded bge's branch target as a raw immediate 1, not a
// resolved label. The table's own sequence does not actually compute |rs|
// for every input (see DESIGN.md) — this test checks the exact instruction
// sequence the table specifies, not runtime correctness.
func TestExpandAbsMatchesLiteralTable(t *testing.T) {
	resolved, _, _ := buildResolved(t, "abs $t0, $t1")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 4 {
		t.Fatalf("got %d instructions, want 4: %+v", len(expanded), expanded)
	}
	mnemonics := []string{expanded[0].Mnemonic, expanded[1].Mnemonic, expanded[2].Mnemonic, expanded[3].Mnemonic}
	want := []string{"sub", "slt", "beq", "sub"}
	for i := range want {
		if mnemonics[i] != want[i] {
			t.Fatalf("got %v, want %v", mnemonics, want)
		}
	}
	sub1 := expanded[0]
	if sub1.Operands[0].RegisterNum != 8 || sub1.Operands[1].RegisterNum != 0 || sub1.Operands[2].RegisterNum != 9 {
		t.Fatalf("first sub should be $t0,$0,$t1 ($8,$0,$9), got %+v", sub1.Operands)
	}
	slt := expanded[1]
	if slt.Operands[0].RegisterNum != 1 || slt.Operands[1].RegisterNum != 9 || slt.Operands[2].RegisterNum != 0 {
		t.Fatalf("slt should be $1,$t1,$0 ($1,$9,$0), got %+v", slt.Operands)
	}
	beq := expanded[2]
	if beq.Operands[0].RegisterNum != 1 || beq.Operands[1].RegisterNum != 0 || beq.Operands[2].ImmValue != 1 {
		t.Fatalf("beq should target the raw immediate 1, got %+v", beq.Operands)
	}
	sub2 := expanded[3]
	if sub2.Operands[0].RegisterNum != 8 || sub2.Operands[1].RegisterNum != 0 || sub2.Operands[2].RegisterNum != 9 {
		t.Fatalf("second sub should be $t0,$0,$t1 ($8,$0,$9), got %+v", sub2.Operands)
	}
}

func TestExpandLiBuildsLuiOri(t *testing.T) {
	resolved, _, _ := buildResolved(t, "li $t0, 0x12345678")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 2 || expanded[0].Mnemonic != "lui" || expanded[1].Mnemonic != "ori" {
		t.Fatalf("got %+v", expanded)
	}
	if expanded[0].Operands[1].ImmValue != 0x1234 {
		t.Fatalf("lui immediate: got %#x", expanded[0].Operands[1].ImmValue)
	}
	if expanded[1].Operands[2].ImmValue != 0x5678 {
		t.Fatalf("ori immediate: got %#x", expanded[1].Operands[2].ImmValue)
	}
}

func TestExpandBltProducesSltAndBne(t *testing.T) {
	resolved, _, _ := buildResolved(t, "blt $t0, $t1, there\nthere:\nnop")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 3 { // slt, bne, nop
		t.Fatalf("got %d instructions: %+v", len(expanded), expanded)
	}
	if expanded[0].Mnemonic != "slt" || expanded[1].Mnemonic != "bne" {
		t.Fatalf("got %+v", expanded[:2])
	}
	if expanded[1].Operands[0].RegisterNum != 1 || expanded[1].Operands[1].RegisterNum != 0 {
		t.Fatalf("bne should compare $1 against $0, got %+v", expanded[1].Operands[:2])
	}
}

func TestExpandPassesRealInstructionsThrough(t *testing.T) {
	resolved, _, _ := buildResolved(t, "add $t0, $t1, $t2")
	expanded, err := Expand(resolved)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(expanded) != 1 || expanded[0].Mnemonic != "add" {
		t.Fatalf("got %+v", expanded)
	}
}
