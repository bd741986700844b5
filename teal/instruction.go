package teal

import "fmt"

// Immediate is a single already-typed operand of an Instruction. Exactly
// one of the fields is meaningful, selected by Kind.
type Immediate struct {
	Kind ImmediateKind

	Uint      uint64
	Bytes     []byte
	Label     string
	FieldName string // raw name as written, e.g. "OnCompletion"
}

// Instruction is an immutable parsed instruction (spec.md §3). Line numbers
// are unique across a Program by construction (the parser rejects nothing
// here; uniqueness falls out of one instruction per source line).
type Instruction struct {
	Opcode     string
	Def        OpcodeDef
	Line       int
	Immediates []Immediate
	Comment    string
}

// StackEffect returns the pop/push arity of this specific instruction,
// resolving variadic opcodes (switch, match, dup2-like forms with fixed
// immediates are already concrete in the catalogue) using its immediates.
func (ins *Instruction) StackEffect() StackEffect {
	eff := ins.Def.Effect
	if !eff.Variadic {
		return eff
	}
	switch ins.Opcode {
	case "switch":
		// switch pops 1 selector; target count comes from immediates.
		return StackEffect{Pops: 1, Pushes: 0}
	case "match":
		n := len(ins.Immediates)
		return StackEffect{Pops: n + 1, Pushes: 0}
	}
	return eff
}

// BranchTargets returns the label names this instruction can transfer
// control to via its immediates (not counting fallthrough).
func (ins *Instruction) BranchTargets() []string {
	var targets []string
	for _, imm := range ins.Immediates {
		if imm.Kind == ImmLabel || imm.Kind == ImmSubroutineLabel {
			targets = append(targets, imm.Label)
		}
	}
	return targets
}

func (ins *Instruction) String() string {
	s := ins.Opcode
	for _, imm := range ins.Immediates {
		switch imm.Kind {
		case ImmUint64:
			s += fmt.Sprintf(" %d", imm.Uint)
		case ImmByteLiteral:
			s += fmt.Sprintf(" 0x%x", imm.Bytes)
		case ImmLabel, ImmSubroutineLabel:
			s += " " + imm.Label
		case ImmNamedField:
			s += " " + imm.FieldName
		}
	}
	return s
}

// IntImmediate returns the first integer-valued immediate, used by the
// peephole matcher to read the constant side of an `int c; ==` idiom.
func (ins *Instruction) IntImmediate() (uint64, bool) {
	for _, imm := range ins.Immediates {
		if imm.Kind == ImmUint64 {
			return imm.Uint, true
		}
	}
	return 0, false
}
