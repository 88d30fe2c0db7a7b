// Package operand parses one normalized instruction line's argument list
// into the typed Operand variant described in spec §3/§4.2.
package operand

import (
	"strconv"
	"strings"

	"mipskit/internal/isa"

	"github.com/pkg/errors"
)

// Kind tags which of the three operand shapes an Operand holds.
type Kind uint8

const (
	KindRegister Kind = iota
	KindImmediate
	KindMemory
)

// Operand is the tagged variant from spec §3. Exactly one group of fields
// is meaningful depending on Kind; this mirrors the teacher's Repr struct
// generalized into three real shapes instead of one flag-laden word, per
// the §9 redesign note: a label name and its numeric value sit in separate
// fields, never in one mixed-type field. internal/resolver fills in the
// numeric field and clears the label flag in place.
type Operand struct {
	Kind Kind

	// KindRegister
	RegisterName string // raw alias text, e.g. "$t0"
	RegisterNum  uint8

	// KindImmediate
	ImmIsLabel bool
	ImmValue   int64
	ImmLabel   string

	// KindMemory
	MemOffsetIsLabel bool
	MemOffsetValue   int64
	MemOffsetLabel   string
	MemBaseName      string
	MemBaseNum       uint8
}

// Error is an operand syntax error (§4.2 Failure), carrying the offending
// instruction text and 1-based source line.
type Error struct {
	Line  int
	Token string
	cause error
}

func (e *Error) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": operand error in " + strconv.Quote(e.Token) + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Tokenize classifies every argument of one instruction line. mnemonic and
// lineNo are only used for error messages.
func Tokenize(mnemonic string, args []string, lineNo int) ([]Operand, error) {
	out := make([]Operand, 0, len(args))
	for _, arg := range args {
		op, err := classify(arg, lineNo)
		if err != nil {
			return nil, &Error{Line: lineNo, Token: mnemonic + " " + strings.Join(args, ","), cause: err}
		}
		out = append(out, op)
	}
	return out, nil
}

func classify(arg string, lineNo int) (Operand, error) {
	switch {
	case strings.Contains(arg, "("):
		return classifyMemory(arg, lineNo)
	case strings.HasPrefix(arg, "$"):
		return classifyRegister(arg)
	default:
		if n, ok := parseImmediate(arg); ok {
			return Operand{Kind: KindImmediate, ImmValue: n}, nil
		}
		return Operand{Kind: KindImmediate, ImmIsLabel: true, ImmLabel: arg}, nil
	}
}

func classifyRegister(arg string) (Operand, error) {
	reg, ok := isa.LookupRegister(arg)
	if !ok {
		return Operand{}, errors.Errorf("%q is not a recognized register", arg)
	}
	return Operand{Kind: KindRegister, RegisterName: arg, RegisterNum: reg.Number}, nil
}

func classifyMemory(arg string, lineNo int) (Operand, error) {
	open := strings.IndexByte(arg, '(')
	if open < 0 || arg[len(arg)-1] != ')' || strings.Count(arg, "(") != 1 || strings.Count(arg, ")") != 1 {
		return Operand{}, errors.Errorf("unmatched parentheses")
	}
	offsetText := arg[:open]
	baseText := arg[open+1 : len(arg)-1]

	if !strings.HasPrefix(baseText, "$") {
		return Operand{}, errors.Errorf("memory operand base %q must begin with $", baseText)
	}
	base, ok := isa.LookupRegister(baseText)
	if !ok {
		return Operand{}, errors.Errorf("%q is not a recognized register", baseText)
	}

	op := Operand{Kind: KindMemory, MemBaseName: baseText, MemBaseNum: base.Number}
	switch {
	case offsetText == "":
		op.MemOffsetValue = 0
	default:
		if n, ok := parseImmediate(offsetText); ok {
			op.MemOffsetValue = n
		} else {
			op.MemOffsetIsLabel = true
			op.MemOffsetLabel = offsetText
		}
	}
	return op, nil
}

// parseImmediate accepts decimal (optionally signed), 0x, 0o and 0b integer
// literals, matching the base set the teacher's parseNum recognizes,
// generalized to allow a leading '-' for signed immediates (§3: "either a
// signed/unsigned integer literal").
func parseImmediate(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	rest := s
	if rest[0] == '-' || rest[0] == '+' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(rest, "0x"), strings.HasPrefix(rest, "0X"):
		base, rest = 16, rest[2:]
	case strings.HasPrefix(rest, "0o"), strings.HasPrefix(rest, "0O"):
		base, rest = 8, rest[2:]
	case strings.HasPrefix(rest, "0b"), strings.HasPrefix(rest, "0B"):
		base, rest = 2, rest[2:]
	}
	if rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
