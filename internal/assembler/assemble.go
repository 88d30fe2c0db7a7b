package assembler

import (
	"encoding/binary"

	"mipskit/internal/encoder"
	"mipskit/internal/lexer"
	"mipskit/internal/memory"
	"mipskit/internal/resolver"
	"mipskit/internal/symtab"

	"github.com/k0kubun/pp/v3"
)

// Result is everything a caller needs after a successful assembly: the
// populated memory image (instructions and initialized data both live
// there, per §6's "single memory image" contract), the final symbol table,
// and the flat list of real instructions in program order, as they were
// encoded into the image. internal/datapath's InstructionMemory fetches
// from the image, not from this list.
type Result struct {
	Memory       *memory.Image
	Symbols      *symtab.Table
	Instructions []resolver.Instruction
	EntryPoint   uint32
}

// Assemble runs the full pipeline in §2/§4: normalize, validate, build the
// symbol table (pass 1), fix it up and resolve every operand (pass 2 Stages
// A/B/C), encode, and load. It stops at the first error, per the §7
// propagation policy.
func Assemble(source string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lines, err := lexer.Normalize(source)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, newErr(KindSyntax, le.Line, "", err)
		}
		return nil, newErr(KindSyntax, 0, "", err)
	}

	if err := Validate(lines); err != nil {
		return nil, err
	}

	mem := memory.New(cfg.MemSize)

	table, err := symtab.NewBuilder(cfg.TextBase, cfg.DataBase).Run(lines)
	if err != nil {
		return nil, newErr(KindSyntax, 0, "", err)
	}

	if err := resolver.FixupSymbols(lines, table, cfg.TextBase, cfg.DataBase); err != nil {
		return nil, newErr(KindSyntax, 0, "", err)
	}

	resolved, err := resolver.ResolveOperands(lines, table, mem, cfg.TextBase, cfg.DataBase)
	if err != nil {
		return nil, newErr(KindUnknownLabel, 0, "", err)
	}

	instrs, err := resolver.Expand(resolved)
	if err != nil {
		return nil, newErr(KindInstructionSyntax, 0, "", err)
	}

	addr := cfg.TextBase
	for _, in := range instrs {
		word, err := encoder.Encode(in, addr)
		if err != nil {
			return nil, newErr(KindUnknownInstruction, in.Line, in.Mnemonic, err)
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], word)
		if err := mem.Write(addr, buf[:]); err != nil {
			return nil, newErr(KindMemoryAccess, in.Line, in.Mnemonic, err)
		}
		addr += 4
	}

	if cfg.Trace {
		pp.Println("symbols", table.Names())
		pp.Println("instructions", instrs)
	}

	entry, _ := table.Lookup(".text")
	return &Result{Memory: mem, Symbols: table, Instructions: instrs, EntryPoint: entry}, nil
}
