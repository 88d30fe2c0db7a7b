package assembler

import (
	"testing"

	"mipskit/internal/lexer"
)

func mustLines(t *testing.T, src string) []lexer.Line {
	t.Helper()
	lines, err := lexer.Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return lines
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	lines := mustLines(t, "loop: addi $t0, $t0, -1\nbeq $t0, $zero, loop\n.data\nmsg: .asciiz \"hi\"")
	if err := Validate(lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadDirectiveArity(t *testing.T) {
	lines := mustLines(t, ".align 4, 8")
	if err := Validate(lines); err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestValidateRejectsNonIntegerDirectiveArg(t *testing.T) {
	lines := mustLines(t, ".word notanumber")
	if err := Validate(lines); err == nil {
		t.Fatal("expected a shape error")
	}
}

func TestValidateRejectsUnquotedAsciiz(t *testing.T) {
	lines := mustLines(t, ".asciiz hi")
	if err := Validate(lines); err == nil {
		t.Fatal("expected a shape error for an unquoted .asciiz argument")
	}
}

func TestValidateAcceptsPseudoInstructionArity(t *testing.T) {
	lines := mustLines(t, "li $t0, 5")
	if err := Validate(lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
