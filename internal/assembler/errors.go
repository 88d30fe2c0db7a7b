// Package assembler ties the lexer, operand tokenizer, validator, symbol
// table builder, pseudo expander/resolver and encoder together behind the
// single entrypoint Assemble(source, opts...); the text base address is set
// with WithTextBase and reported back as Result.EntryPoint.
package assembler

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags a ProcessorError with its place in the §7 error hierarchy.
// This is a flat tag rather than a chain of wrapped sentinel types because
// every caller of Assemble only ever needs "what kind of thing failed" plus
// the line/token context — the hierarchy in §7 is a classification scheme,
// not a set of types that need independent behavior.
type Kind uint8

const (
	KindSyntax Kind = iota
	KindDirectiveSyntax
	KindInstructionSyntax
	KindDirectiveSemantic
	KindUnknownLabel
	KindUnknownInstruction
	KindMemoryAccess
	KindRegisterError
	KindNonConvergence
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindDirectiveSyntax:
		return "directive syntax error"
	case KindInstructionSyntax:
		return "instruction syntax error"
	case KindDirectiveSemantic:
		return "directive semantic error"
	case KindUnknownLabel:
		return "unknown label"
	case KindUnknownInstruction:
		return "unknown instruction"
	case KindMemoryAccess:
		return "memory access error"
	case KindRegisterError:
		return "register error"
	case KindNonConvergence:
		return "datapath did not converge"
	default:
		return "processor error"
	}
}

// ProcessorError is the root of the §7 error taxonomy. Line is the 1-based
// source line number, or 0 when the failing stage reports the line only
// inside the wrapped cause's message; Token is the offending token or
// instruction text.
// Assemble stops at the first error and returns it unmodified (§7
// propagation policy): there is no accumulation of multiple errors.
type ProcessorError struct {
	Kind  Kind
	Line  int
	Token string
	cause error
}

func (e *ProcessorError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %s: %q: %v", e.Line, e.Kind, e.Token, e.cause)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Kind, e.cause)
}

// Unwrap lets errors.Is/errors.As and pkg/errors.Cause see through to the
// underlying cause.
func (e *ProcessorError) Unwrap() error {
	return e.cause
}

// Cause is the method pkg/errors.Cause follows; it does not look at Unwrap.
func (e *ProcessorError) Cause() error {
	return e.cause
}

// newErr builds a ProcessorError wrapping cause with positional context.
func newErr(kind Kind, line int, token string, cause error) *ProcessorError {
	return &ProcessorError{Kind: kind, Line: line, Token: token, cause: cause}
}

// wrapf is a convenience constructor matching pkg/errors.Errorf's call
// shape for the common case of a freshly-minted message rather than an
// existing error being wrapped.
func wrapf(kind Kind, line int, token string, format string, args ...any) *ProcessorError {
	return newErr(kind, line, token, errors.Errorf(format, args...))
}
