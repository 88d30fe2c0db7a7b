// Package directive implements the assembler-directive table from spec
// §4.3/§4.4: arity/shape validation, forward_offset() for pass 1, and
// execute() to write initializer bytes into the memory image during pass 2
// Stage B. A Directive record is deliberately just data plus a memory
// reference, never a back-pointer into the assembler — the §9 redesign
// flag calls out the original's reflective access into a private assembler
// field, and passing the memory image in at construction removes the need
// for that reach-back entirely.
package directive

import (
	"encoding/binary"
	"log"
	"strconv"
	"strings"

	"mipskit/internal/lexer"
	"mipskit/internal/memory"

	"github.com/pkg/errors"
)

// Def is the static metadata for one directive mnemonic.
type Def struct {
	Name     string
	MinArgs  int
	Exact    bool // if true, MinArgs is also the max
	IsWarned bool // .float/.double: recognized but not emitted (§4.5 Stage B)
}

var table = map[string]Def{
	".align":  {Name: ".align", MinArgs: 1, Exact: true},
	".ascii":  {Name: ".ascii", MinArgs: 1},
	".asciiz": {Name: ".asciiz", MinArgs: 1},
	".byte":   {Name: ".byte", MinArgs: 1},
	".half":   {Name: ".half", MinArgs: 1},
	".word":   {Name: ".word", MinArgs: 1},
	".double": {Name: ".double", MinArgs: 1, IsWarned: true},
	".float":  {Name: ".float", MinArgs: 1, IsWarned: true},
	".space":  {Name: ".space", MinArgs: 1, Exact: true},
	".data":   {Name: ".data", MinArgs: 0, Exact: true},
	".text":   {Name: ".text", MinArgs: 0, Exact: true},
}

// Lookup returns the metadata for a directive mnemonic (the leading '.' is
// part of the name).
func Lookup(name string) (Def, bool) {
	d, ok := table[name]
	return d, ok
}

// IsSegmentSwitch reports whether name is .data or .text: these carry no
// forward_offset and no memory write, they only flip the active segment in
// internal/symtab and internal/resolver.
func IsSegmentSwitch(name string) bool {
	return name == ".data" || name == ".text"
}

// Validate checks arity against the table in §4.3, independent of argument
// shape (shape is checked by ForwardOffset/Execute, which need to parse the
// arguments anyway).
func Validate(d Def, args []string) error {
	if d.Exact && len(args) != d.MinArgs {
		return errors.Errorf("%s expects exactly %d argument(s), got %d", d.Name, d.MinArgs, len(args))
	}
	if !d.Exact && len(args) < d.MinArgs {
		return errors.Errorf("%s expects at least %d argument(s), got %d", d.Name, d.MinArgs, len(args))
	}
	return nil
}

// ForwardOffset reports how many bytes this directive reserves, per the
// table in §4.4. counter is the active segment's location counter at the
// point of encounter, needed only by .align.
func ForwardOffset(d Def, args []string, counter uint32) (uint32, error) {
	switch d.Name {
	case ".align":
		n, err := parseNonNegInt(args[0])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, nil
		}
		rem := counter % n
		if rem == 0 {
			return 0, nil
		}
		return n - rem, nil
	case ".ascii":
		return uint32(len(decodeJoinedString(args))), nil
	case ".asciiz":
		return uint32(len(decodeJoinedString(args))) + 1, nil
	case ".byte":
		return uint32(len(args)), nil
	case ".half":
		return uint32(2 * len(args)), nil
	case ".word", ".float":
		return uint32(4 * len(args)), nil
	case ".double":
		return uint32(8 * len(args)), nil
	case ".space":
		n, err := parseNonNegInt(args[0])
		if err != nil {
			return 0, err
		}
		return n, nil
	case ".data", ".text":
		return 0, nil
	default:
		return 0, errors.Errorf("unknown directive %q", d.Name)
	}
}

// Execute writes this directive's initializer bytes into mem at address,
// per §4.5 Stage B. Warned directives (.float/.double) still reserve their
// byte span (zero-filled) but write no interpreted data.
func Execute(d Def, args []string, mem *memory.Image, address uint32) error {
	switch d.Name {
	case ".align", ".space":
		n, err := ForwardOffset(d, args, address)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return mem.Write(address, make([]byte, n))
	case ".ascii":
		return mem.Write(address, decodeJoinedString(args))
	case ".asciiz":
		return mem.Write(address, append(decodeJoinedString(args), 0))
	case ".byte":
		buf := make([]byte, len(args))
		for i, a := range args {
			v, err := strconv.ParseInt(a, 0, 8)
			if err != nil {
				return errors.Wrapf(err, ".byte argument %q", a)
			}
			buf[i] = byte(v)
		}
		return mem.Write(address, buf)
	case ".half":
		buf := make([]byte, 2*len(args))
		for i, a := range args {
			v, err := strconv.ParseInt(a, 0, 16)
			if err != nil {
				return errors.Wrapf(err, ".half argument %q", a)
			}
			binary.BigEndian.PutUint16(buf[2*i:], uint16(v))
		}
		return mem.Write(address, buf)
	case ".word":
		buf := make([]byte, 4*len(args))
		for i, a := range args {
			v, err := strconv.ParseInt(a, 0, 32)
			if err != nil {
				return errors.Wrapf(err, ".word argument %q", a)
			}
			binary.BigEndian.PutUint32(buf[4*i:], uint32(v))
		}
		return mem.Write(address, buf)
	case ".float", ".double":
		n, err := ForwardOffset(d, args, address)
		if err != nil {
			return err
		}
		log.Printf("warning: %s is recognized but not emitted; reserving %d zero bytes", d.Name, n)
		return mem.Write(address, make([]byte, n))
	case ".data", ".text":
		return nil
	default:
		return errors.Errorf("unknown directive %q", d.Name)
	}
}

func parseNonNegInt(s string) (uint32, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil || n < 0 {
		return 0, errors.Errorf("expected a non-negative integer, got %q", s)
	}
	return uint32(n), nil
}

// decodeJoinedString joins .ascii/.asciiz's quoted-string arguments and
// decodes the escape alphabet from §4.4.
func decodeJoinedString(args []string) []byte {
	var joined strings.Builder
	for _, a := range args {
		unquoted := strings.TrimSuffix(strings.TrimPrefix(a, "\""), "\"")
		joined.WriteString(unquoted)
	}
	return lexer.DecodeEscapedString(joined.String())
}
