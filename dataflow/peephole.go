package dataflow

import "go-tealer/teal"

// trackedTxnFields maps a `txn`/`gtxn` field name to the Field this engine
// tracks. Fields outside this set are recognized by the parser but never
// refined here (spec.md §4.6's tracked-field list).
var trackedTxnFields = map[string]Field{
	"GroupIndex":        GroupIndex,
	"TypeEnum":          TypeEnum,
	"Sender":            Sender,
	"Receiver":          Receiver,
	"CloseRemainderTo":  CloseRemainderTo,
	"AssetCloseTo":      AssetCloseTo,
	"RekeyTo":           RekeyTo,
	"ApplicationID":     ApplicationID,
	"OnCompletion":      OnCompletion,
	"Fee":               Fee,
}

var trackedGlobalFields = map[string]Field{
	"GroupSize": GroupSize,
}

// fieldPush describes a recognized `txn F` / `global F` / `gtxn i F` push
// found while scanning a block for comparison idioms.
type fieldPush struct {
	field Field
	// gtxnIndex >= 0 means this push read a sibling transaction's field at
	// that absolute group index; -1 means the current transaction.
	gtxnIndex int
}

// recognizeFieldPush reports whether ins is a txn/global/gtxn push of a
// tracked field, per spec.md §4.6.
func recognizeFieldPush(ins *teal.Instruction) (fieldPush, bool) {
	switch ins.Opcode {
	case "txn":
		if len(ins.Immediates) != 1 {
			return fieldPush{}, false
		}
		if f, ok := trackedTxnFields[ins.Immediates[0].FieldName]; ok {
			return fieldPush{field: f, gtxnIndex: -1}, true
		}
	case "global":
		if len(ins.Immediates) != 1 {
			return fieldPush{}, false
		}
		if f, ok := trackedGlobalFields[ins.Immediates[0].FieldName]; ok {
			return fieldPush{field: f, gtxnIndex: -1}, true
		}
	case "gtxn":
		if len(ins.Immediates) != 2 {
			return fieldPush{}, false
		}
		idx := ins.Immediates[0].Uint
		if f, ok := trackedTxnFields[ins.Immediates[1].FieldName]; ok {
			return fieldPush{field: f, gtxnIndex: int(idx)}, true
		}
	}
	return fieldPush{}, false
}

// zeroAddressScalar is the sentinel used for `global ZeroAddress`, the one
// non-literal constant push the matcher special-cases: it is how RekeyTo /
// CloseRemainderTo / AssetCloseTo checks are actually written in practice.
var zeroAddressScalar = ScalarBytes(make([]byte, 32))

// recognizeConstantPush reports whether ins pushes a constant suitable as
// the comparison operand of a recognized idiom: a literal int (or a named
// OnCompletion/TypeEnum constant already resolved to one by the parser), or
// `global ZeroAddress`.
func recognizeConstantPush(ins *teal.Instruction) (Scalar, bool) {
	switch ins.Opcode {
	case "int":
		v, ok := ins.IntImmediate()
		if !ok {
			return Scalar{}, false
		}
		return ScalarUint(v), true
	case "global":
		if len(ins.Immediates) == 1 && ins.Immediates[0].FieldName == "ZeroAddress" {
			return zeroAddressScalar, true
		}
	}
	return Scalar{}, false
}

// comparison is one recognized `push field; push int; <op>` triple found at
// instruction index cmpIdx (the index of the comparison opcode itself).
type comparison struct {
	push    fieldPush
	value   Scalar
	op      string // "==" or "!="
	cmpIdx  int
}

// scanComparisons finds every `txn/global/gtxn F ; int c ; op` triple in
// instrs, where op is == or != (spec.md §4.6 collapses other comparisons to
// ⊤ rather than guess at their refinement). The two pushes may appear in
// either order since both == and != are commutative.
func scanComparisons(instrs []*teal.Instruction) []comparison {
	var out []comparison
	for i := 0; i+2 < len(instrs); i++ {
		op := instrs[i+2].Opcode
		if op != "==" && op != "!=" {
			continue
		}
		if c, ok := pairAsComparison(instrs[i], instrs[i+1], op, i+2); ok {
			out = append(out, c)
			continue
		}
		if c, ok := pairAsComparison(instrs[i+1], instrs[i], op, i+2); ok {
			out = append(out, c)
		}
	}
	return out
}

func pairAsComparison(fieldIns, intIns *teal.Instruction, op string, cmpIdx int) (comparison, bool) {
	push, ok := recognizeFieldPush(fieldIns)
	if !ok {
		return comparison{}, false
	}
	val, ok := recognizeConstantPush(intIns)
	if !ok {
		return comparison{}, false
	}
	return comparison{push: push, value: val, op: op, cmpIdx: cmpIdx}, true
}

// refinement is one conclusion the peephole matcher draws: "field F (of the
// current txn, or of the sibling at gtxnIndex) is restricted to Value once
// this instruction sequence has executed".
type refinement struct {
	field     Field
	gtxnIndex int // -1 for current txn
	value     Value
}

// localAssertRefinements scans a block for `<comparisons>; (||-chain)?;
// assert` idioms (spec.md §4.6) and returns the refinements they establish
// for every path past the assert. Disjunctions of equalities on the same
// field union their constants; anything mixing && is left unrefined, which
// is always sound (it just forgoes precision).
func localAssertRefinements(instrs []*teal.Instruction) []refinement {
	var out []refinement
	comparisons := scanComparisons(instrs)
	for idx, ins := range instrs {
		if ins.Opcode != "assert" {
			continue
		}
		out = append(out, refinementsForAssertAt(instrs, comparisons, idx)...)
	}
	return out
}

// refinementsForAssertAt walks backward from an assert at instrs[assertIdx].
// A TEAL boolean chain pushes its comparison results back-to-back and only
// then applies the combining operators (`b1; b2; b3; ||; ||; assert`), so
// the match looks for a run of opCount trailing ||/&& tokens preceded by
// exactly opCount+1 adjacent comparisons.
func refinementsForAssertAt(instrs []*teal.Instruction, comparisons []comparison, assertIdx int) []refinement {
	pos := assertIdx - 1
	opCount := 0
	isOr := true
	for pos >= 0 && (instrs[pos].Opcode == "||" || instrs[pos].Opcode == "&&") {
		if instrs[pos].Opcode == "&&" {
			isOr = false
		}
		opCount++
		pos--
	}
	if opCount > 0 && !isOr {
		return nil // mixed/AND chain: no refinement, always sound
	}

	needed := opCount + 1
	var chain []comparison
	cursor := pos
	for n := 0; n < needed; n++ {
		var found *comparison
		for i := range comparisons {
			if comparisons[i].cmpIdx == cursor {
				found = &comparisons[i]
				break
			}
		}
		if found == nil {
			return nil
		}
		chain = append(chain, *found)
		cursor -= 3
	}
	return refinementsFromComparisons(chain)
}

// refinementsFromComparisons groups same-field, same-op comparisons and
// turns each group into a refinement. Groups mixing == and != on the same
// field produce no refinement for that field, and a chain spanning more
// than one field produces no refinement at all.
func refinementsFromComparisons(cs []comparison) []refinement {
	type key struct {
		field     Field
		gtxnIndex int
	}
	byField := map[key][]comparison{}
	for _, c := range cs {
		k := key{c.push.field, c.push.gtxnIndex}
		byField[k] = append(byField[k], c)
	}
	if len(byField) > 1 {
		return nil
	}
	var out []refinement
	for k, group := range byField {
		allEq, allNeq := true, true
		for _, c := range group {
			if c.op != "==" {
				allEq = false
			}
			if c.op != "!=" {
				allNeq = false
			}
		}
		switch {
		case allEq:
			scalars := make([]Scalar, 0, len(group))
			for _, c := range group {
				scalars = append(scalars, c.value)
			}
			out = append(out, refinement{field: k.field, gtxnIndex: k.gtxnIndex, value: SetOf(scalars...)})
		case allNeq && len(group) == 1:
			// A lone `!= c; assert` rules out exactly one value; since the
			// lattice represents possibility sets rather than exclusions,
			// this is left at ⊤ (sound, just imprecise).
		}
	}
	return out
}

// branchRefinement is what a bnz/bz at the end of a block establishes along
// its taken and not-taken successor edges.
type branchRefinement struct {
	field           Field
	gtxnIndex       int
	takenValue      Value
	hasTaken        bool
	notTakenValue   Value
	hasNotTaken     bool
}

// recognizeBranchCondition inspects a block ending in bnz/bz and reports the
// refinement each outgoing edge gets, per spec.md §4.6. Only a single
// trailing `==`/`!=` comparison immediately before the branch is recognized;
// anything else collapses to ⊤ (no refinement) on both edges.
func recognizeBranchCondition(instrs []*teal.Instruction) (branchRefinement, bool) {
	n := len(instrs)
	if n < 3 {
		return branchRefinement{}, false
	}
	branchOp := instrs[n-1].Opcode
	if branchOp != "bnz" && branchOp != "bz" {
		return branchRefinement{}, false
	}
	cmps := scanComparisons(instrs)
	var c *comparison
	for i := range cmps {
		if cmps[i].cmpIdx == n-2 {
			c = &cmps[i]
		}
	}
	if c == nil {
		return branchRefinement{}, false
	}
	br := branchRefinement{field: c.push.field, gtxnIndex: c.push.gtxnIndex}
	conditionTrueValue := SetOf(c.value)
	switch {
	case c.op == "==" && branchOp == "bnz":
		br.hasTaken, br.takenValue = true, conditionTrueValue
	case c.op == "==" && branchOp == "bz":
		br.hasNotTaken, br.notTakenValue = true, conditionTrueValue
	case c.op == "!=" && branchOp == "bnz":
		br.hasNotTaken, br.notTakenValue = true, conditionTrueValue
	case c.op == "!=" && branchOp == "bz":
		br.hasTaken, br.takenValue = true, conditionTrueValue
	}
	if !br.hasTaken && !br.hasNotTaken {
		return branchRefinement{}, false
	}
	return br, true
}
