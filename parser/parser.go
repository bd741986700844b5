// Package parser implements the lexer/parser (C2): it turns TEAL source
// text into a go-tealer/teal.Program.
package parser

import (
	"fmt"
	"strings"

	"go-tealer/teal"
)

// ParseError is a fatal parse failure, always carrying the file and line it
// occurred on (spec.md §4.2 failure modes, spec.md §7).
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func fail(file string, line int, format string, args ...interface{}) error {
	return &ParseError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parse turns source text into a Program. filename is used only for error
// messages.
func Parse(source, filename string) (*teal.Program, error) {
	lines := splitLines(source)

	version := 1
	start := 0
	if len(lines) > 0 {
		toks := tokenize(lines[0].text)
		if len(toks) >= 2 && toks[0] == "#pragma" && toks[1] == "version" {
			if len(toks) != 3 {
				return nil, fail(filename, lines[0].line, "malformed #pragma version directive")
			}
			v, err := parseIntLiteral(toks[2])
			if err != nil {
				return nil, fail(filename, lines[0].line, "invalid #pragma version value %q", toks[2])
			}
			version = int(v)
			start = 1
		}
	}

	prog := &teal.Program{
		Filename: filename,
		Labels:   map[string]int{},
		Version:  version,
	}

	for _, rl := range lines[start:] {
		toks := tokenize(rl.text)
		if len(toks) == 0 {
			continue
		}

		if isLabelLine(toks[0]) {
			name := strings.TrimSuffix(toks[0], ":")
			if _, exists := prog.Labels[name]; exists {
				return nil, fail(filename, rl.line, "duplicate label %q", name)
			}
			prog.Labels[name] = len(prog.Instructions)
			// A label line may be followed by an instruction on the same
			// line (`loop: int 1`); treat the remaining tokens as such.
			if len(toks) == 1 {
				continue
			}
			toks = toks[1:]
		}

		ins, err := parseInstruction(toks, rl.line, version, filename)
		if err != nil {
			return nil, err
		}
		prog.Instructions = append(prog.Instructions, ins)
	}

	if err := resolveLabelReferences(prog, filename); err != nil {
		return nil, err
	}

	prog.Mode, prog.ModeWarning = teal.DetectMode(prog.Instructions)
	return prog, nil
}

func isLabelLine(tok string) bool {
	return strings.HasSuffix(tok, ":") && !strings.Contains(tok, "(")
}

func parseInstruction(toks []string, line, version int, filename string) (*teal.Instruction, error) {
	mnemonic := normalizeMnemonic(toks[0])
	operands := toks[1:]

	def, ok := teal.Lookup(mnemonic)
	if !ok {
		return nil, fail(filename, line, "unknown mnemonic %q", mnemonic)
	}
	if def.IntroducedIn > version {
		return nil, fail(filename, line, "opcode %q introduced in version %d, program declares version %d", mnemonic, def.IntroducedIn, version)
	}

	imms, err := parseImmediates(mnemonic, def, operands, filename, line)
	if err != nil {
		return nil, err
	}

	return &teal.Instruction{
		Opcode:     mnemonic,
		Def:        def,
		Line:       line,
		Immediates: imms,
	}, nil
}

// normalizeMnemonic expands pseudo-ops that already parsed to a dedicated
// mnemonic in the catalogue (spec.md §4.2): `addr` and `method` keep their
// own catalogue entries, so no expansion is needed beyond recognizing them
// as-is. Kept as a hook point for future pseudo-ops.
func normalizeMnemonic(m string) string { return m }

func parseImmediates(mnemonic string, def teal.OpcodeDef, operands []string, filename string, line int) ([]teal.Immediate, error) {
	switch mnemonic {
	case "intcblock":
		return parseUintList(operands, filename, line)
	case "bytecblock":
		return parseByteList(operands, filename, line)
	case "switch", "match":
		return parseLabelList(operands, filename, line)
	}

	if len(operands) != len(def.Immediates) {
		return nil, fail(filename, line, "%q expects %d immediate(s), got %d", mnemonic, len(def.Immediates), len(operands))
	}

	imms := make([]teal.Immediate, 0, len(operands))
	for i, kind := range def.Immediates {
		tok := operands[i]
		imm, err := parseOneImmediate(mnemonic, kind, tok, filename, line)
		if err != nil {
			return nil, err
		}
		imms = append(imms, imm)
	}
	return imms, nil
}

func parseOneImmediate(mnemonic string, kind teal.ImmediateKind, tok, filename string, line int) (teal.Immediate, error) {
	switch kind {
	case teal.ImmUint64:
		v, err := parseIntLiteral(tok)
		if err != nil {
			return teal.Immediate{}, fail(filename, line, "%q: invalid integer immediate %q: %v", mnemonic, tok, err)
		}
		return teal.Immediate{Kind: teal.ImmUint64, Uint: v}, nil
	case teal.ImmByteLiteral:
		b, err := parseByteLiteral(tok)
		if err != nil {
			return teal.Immediate{}, fail(filename, line, "%q: invalid byte literal %q: %v", mnemonic, tok, err)
		}
		return teal.Immediate{Kind: teal.ImmByteLiteral, Bytes: b}, nil
	case teal.ImmLabel:
		return teal.Immediate{Kind: teal.ImmLabel, Label: tok}, nil
	case teal.ImmSubroutineLabel:
		return teal.Immediate{Kind: teal.ImmSubroutineLabel, Label: tok}, nil
	case teal.ImmNamedField:
		return teal.Immediate{Kind: teal.ImmNamedField, FieldName: tok}, nil
	}
	return teal.Immediate{}, fail(filename, line, "%q: unhandled immediate kind", mnemonic)
}

func parseUintList(operands []string, filename string, line int) ([]teal.Immediate, error) {
	if len(operands) == 0 {
		return nil, fail(filename, line, "intcblock requires at least one value")
	}
	var imms []teal.Immediate
	for _, tok := range operands {
		v, err := parseIntLiteral(tok)
		if err != nil {
			return nil, fail(filename, line, "intcblock: invalid integer %q: %v", tok, err)
		}
		imms = append(imms, teal.Immediate{Kind: teal.ImmUint64, Uint: v})
	}
	return imms, nil
}

func parseByteList(operands []string, filename string, line int) ([]teal.Immediate, error) {
	if len(operands) == 0 {
		return nil, fail(filename, line, "bytecblock requires at least one value")
	}
	var imms []teal.Immediate
	for _, tok := range operands {
		b, err := parseByteLiteral(tok)
		if err != nil {
			return nil, fail(filename, line, "bytecblock: invalid byte literal %q: %v", tok, err)
		}
		imms = append(imms, teal.Immediate{Kind: teal.ImmByteLiteral, Bytes: b})
	}
	return imms, nil
}

func parseLabelList(operands []string, filename string, line int) ([]teal.Immediate, error) {
	if len(operands) == 0 {
		return nil, fail(filename, line, "switch/match requires at least one label")
	}
	var imms []teal.Immediate
	for _, tok := range operands {
		imms = append(imms, teal.Immediate{Kind: teal.ImmLabel, Label: tok})
	}
	return imms, nil
}

// resolveLabelReferences implements the deferred-to-end-of-parse undefined
// label check (spec.md §4.2).
func resolveLabelReferences(prog *teal.Program, filename string) error {
	for _, ins := range prog.Instructions {
		for _, target := range ins.BranchTargets() {
			if _, ok := prog.Labels[target]; !ok {
				return fail(filename, ins.Line, "reference to undefined label %q", target)
			}
		}
	}
	return nil
}
