package assembler

import "testing"

func TestAssembleAddiAdd(t *testing.T) {
	result, err := Assemble("addi $t0, $zero, 10\nadd $t2, $t0, $t0")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	w0, err := result.Memory.ReadWord(0)
	if err != nil || w0 != 0x2008000A {
		t.Fatalf("word 0: got %#08X, %v", w0, err)
	}
	w1, err := result.Memory.ReadWord(4)
	if err != nil || w1 != 0x01085020 {
		t.Fatalf("word 1: got %#08X, %v", w1, err)
	}
}

func TestAssembleDataSegment(t *testing.T) {
	result, err := Assemble(".data\nmsg: .asciiz \"hi\"\n.text\nla $a0, msg")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	addr, ok := result.Symbols.Lookup("msg")
	if !ok || addr != 0x800 {
		t.Fatalf("msg: got %#x, ok=%v", addr, ok)
	}
	b0, _ := result.Memory.ReadByte(0x800)
	if b0 != 'h' {
		t.Fatalf("got %q", b0)
	}
}

func TestAssembleUnknownLabelFails(t *testing.T) {
	if _, err := Assemble("j missing"); err == nil {
		t.Fatal("expected an unknown-label error")
	}
}

func TestAssembleBadArityFails(t *testing.T) {
	if _, err := Assemble("add $t0, $t1"); err == nil {
		t.Fatal("expected a validation error for add with 2 arguments")
	}
}

func TestAssembleUnknownMnemonicFails(t *testing.T) {
	if _, err := Assemble("frobnicate $t0"); err == nil {
		t.Fatal("expected a validation error for an unknown mnemonic")
	}
}

func TestAssembleCustomDataBase(t *testing.T) {
	result, err := Assemble(".data\nx: .word 7\n.text\nnop", WithDataBase(0x2000))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	addr, ok := result.Symbols.Lookup("x")
	if !ok || addr != 0x2000 {
		t.Fatalf("got %#x, ok=%v", addr, ok)
	}
}
