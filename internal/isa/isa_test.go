package isa

import "testing"

func TestLookupRegisterAliases(t *testing.T) {
	cases := []struct {
		name string
		want uint8
	}{
		{"$zero", 0}, {"$0", 0}, {"$at", 1}, {"$t0", 8}, {"$t9", 25},
		{"$s7", 23}, {"$ra", 31}, {"$sp", 29}, {"$31", 31},
	}
	for _, c := range cases {
		reg, ok := LookupRegister(c.name)
		if !ok {
			t.Errorf("%s: not found", c.name)
			continue
		}
		if reg.Number != c.want {
			t.Errorf("%s: got %d, want %d", c.name, reg.Number, c.want)
		}
	}
}

func TestLookupRegisterUnknown(t *testing.T) {
	if _, ok := LookupRegister("$bogus"); ok {
		t.Fatal("expected $bogus to be unrecognized")
	}
}

func TestCanonicalRegisterNameRoundTrip(t *testing.T) {
	for n := uint8(0); n < 32; n++ {
		name := CanonicalRegisterName(n)
		reg, ok := LookupRegister(name)
		if !ok || reg.Number != n {
			t.Errorf("round trip failed for register %d (%s)", n, name)
		}
	}
}

func TestLookupRealInstruction(t *testing.T) {
	meta, ok := Lookup("add")
	if !ok {
		t.Fatal("add not found")
	}
	if meta.Class != ClassRArith || meta.Funct != 0x20 || meta.NumArgs != 3 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	if !IsRealInstruction("beq") {
		t.Fatal("beq should be a real instruction")
	}
	if IsRealInstruction("li") {
		t.Fatal("li is a pseudo-instruction, not real")
	}
}

func TestBranchOneRegSharedOpcode(t *testing.T) {
	bltz, _ := Lookup("bltz")
	bgez, _ := Lookup("bgez")
	if bltz.Opcode != bgez.Opcode {
		t.Fatalf("bltz/bgez should share opcode 0x01, got %#x / %#x", bltz.Opcode, bgez.Opcode)
	}
	if bltz.RtConst == bgez.RtConst {
		t.Fatal("bltz and bgez must be distinguished by RtConst")
	}
}

func TestLookupPseudo(t *testing.T) {
	meta, ok := LookupPseudo("li")
	if !ok || meta.ExpandedLen != 2 {
		t.Fatalf("li: got %+v, ok=%v", meta, ok)
	}
	if !IsPseudo("move") || IsPseudo("add") {
		t.Fatal("IsPseudo misclassified move/add")
	}
}
