package assembler

import (
	"strconv"

	"mipskit/internal/directive"
	"mipskit/internal/isa"
	"mipskit/internal/lexer"
)

// Validate implements spec §4.3: every line must be a label, a recognized
// directive with the right argument count and shape, or a recognized real
// or pseudo instruction with the right argument count. This runs before
// internal/symtab ever sees the line stream, so a malformed source file
// fails fast instead of producing a half-built symbol table.
func Validate(lines []lexer.Line) error {
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return err
		}
	}
	return nil
}

func validateLine(line lexer.Line) error {
	if line.IsLabel() {
		return nil
	}

	if d, ok := directive.Lookup(line.Op); ok {
		if err := directive.Validate(d, line.Args); err != nil {
			return newErr(KindDirectiveSyntax, line.Number, line.Op, err)
		}
		return validateDirectiveShape(d, line)
	}

	if meta, ok := isa.LookupPseudo(line.Op); ok {
		if len(line.Args) != meta.NumArgs {
			return wrapf(KindInstructionSyntax, line.Number, line.Op,
				"%s expects %d argument(s), got %d", line.Op, meta.NumArgs, len(line.Args))
		}
		return nil
	}

	if meta, ok := isa.Lookup(line.Op); ok {
		if len(line.Args) != meta.NumArgs {
			return wrapf(KindInstructionSyntax, line.Number, line.Op,
				"%s expects %d argument(s), got %d", line.Op, meta.NumArgs, len(line.Args))
		}
		return nil
	}

	return wrapf(KindUnknownInstruction, line.Number, line.Op, "%q is neither a directive, instruction nor label", line.Op)
}

// validateDirectiveShape checks the argument shape rules §4.3 layers on top
// of plain arity: integer-literal directives need parseable integers,
// string directives need quoted string arguments.
func validateDirectiveShape(d directive.Def, line lexer.Line) error {
	switch d.Name {
	case ".align", ".space", ".byte", ".half", ".word":
		for _, a := range line.Args {
			if _, err := strconv.ParseInt(a, 0, 64); err != nil {
				return wrapf(KindDirectiveSemantic, line.Number, a, "%s argument %q is not an integer literal", d.Name, a)
			}
		}
	case ".ascii", ".asciiz":
		for _, a := range line.Args {
			if _, err := lexer.UnquoteStringArg(a, line.Number); err != nil {
				return newErr(KindDirectiveSyntax, line.Number, a, err)
			}
		}
	}
	return nil
}
