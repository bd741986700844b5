package dataflow

import "go-tealer/cfg"

// Seed is an externally supplied field value fixed at one block, independent
// of anything its predecessors establish. This is how the optional
// group-configuration file feeds GroupSize (or a sibling transaction's
// field) into the engine as a read-only initial-state refinement
// (SPEC_FULL.md §6, spec.md §4.6): a declared group size is intersected
// into GroupSize at the program's entry block, and into each function's
// dispatch-path entry block, the same way a recognized assert idiom narrows
// a field within one block.
type Seed struct {
	BlockID int
	Field   Field
	// GtxnIndex is -1 for the current transaction, or the absolute group
	// index of a sibling transaction.
	GtxnIndex int
	Value     Value
}

// Run implements C6: a worklist fixed-point over the CFG's basic blocks,
// propagating per-field lattice values forward along every edge (including
// the callsub/retsub edges callgraph.Recover synthesized), refining on
// recognized comparison-and-assert and comparison-and-branch idioms
// (spec.md §4.6). It must run after callgraph.Recover so retsub-to-
// return-site edges exist. seeds, if given, additionally pins fields at
// specific blocks per SPEC_FULL.md §6.
//
// The result is also written into each block's cfg.BasicBlock.Context slot.
func Run(g *cfg.CFG, seeds ...Seed) map[int]*BlockContext {
	contexts := make(map[int]*BlockContext, len(g.Blocks))
	for _, b := range g.Blocks {
		contexts[b.ID] = newUnconstrainedContext()
	}

	seedsByBlock := make(map[int][]Seed, len(seeds))
	for _, s := range seeds {
		seedsByBlock[s.BlockID] = append(seedsByBlock[s.BlockID], s)
	}

	localRefs := make(map[int][]refinement, len(g.Blocks))
	branchRefs := make(map[int]branchRefinement, len(g.Blocks))
	for _, b := range g.Blocks {
		instrs := b.Instructions(g.Program)
		localRefs[b.ID] = localAssertRefinements(instrs)
		if br, ok := recognizeBranchCondition(instrs); ok {
			branchRefs[b.ID] = br
		}
	}

	inQueue := make(map[int]bool, len(g.Blocks))
	queue := make([]int, 0, len(g.Blocks))
	for _, b := range g.Blocks {
		queue = append(queue, b.ID)
		inQueue[b.ID] = true
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		inQueue[id] = false

		b := g.Block(id)
		bc := contexts[id]
		newIn := applySeeds(computeIn(g, b, contexts, branchRefs), seedsByBlock[id])
		if sameState(bc.In, newIn) && len(bc.In) > 0 {
			continue
		}
		bc.In = newIn
		newOut := applyLocalRefinements(newIn, localRefs[id])
		if sameState(bc.Out, newOut) {
			continue
		}
		bc.Out = newOut

		for _, succ := range g.Successors(b) {
			if !inQueue[succ.ID] {
				queue = append(queue, succ.ID)
				inQueue[succ.ID] = true
			}
		}
	}

	for _, b := range g.Blocks {
		b.Context = contexts[b.ID]
	}
	return contexts
}

// computeIn joins every predecessor's Out across the incoming edges,
// applying the taken/not-taken branch refinement recognized at the
// predecessor for edges of that kind.
func computeIn(g *cfg.CFG, b *cfg.BasicBlock, contexts map[int]*BlockContext, branchRefs map[int]branchRefinement) map[stateKey]Value {
	if len(b.Predecessors) == 0 {
		return map[stateKey]Value{}
	}
	joined := map[stateKey]Value{}
	keysSeen := map[stateKey]bool{}
	for _, e := range b.Predecessors {
		predOut := contexts[e.From].Out
		for k := range predOut {
			keysSeen[k] = true
		}
		if br, ok := branchRefs[e.From]; ok && br.gtxnIndex == currentTxn {
			keysSeen[stateKey{field: br.field, gtxnIndex: currentTxn}] = true
		}
	}
	for k := range keysSeen {
		var acc Value
		first := true
		for _, e := range b.Predecessors {
			contribution := contextValue(contexts[e.From], k)
			contribution = applyBranchEdge(contribution, k, e, branchRefs[e.From])
			if first {
				acc = contribution
				first = false
			} else {
				acc = Join(acc, contribution)
			}
		}
		if acc.Kind != KindTop {
			joined[k] = acc
		}
	}
	return joined
}

func contextValue(bc *BlockContext, k stateKey) Value {
	if v, ok := bc.Out[k]; ok {
		return v
	}
	return Top()
}

// applyBranchEdge narrows the value flowing along edge e from a predecessor
// that ends in a recognized bnz/bz, if the state key matches the recognized
// condition's field.
func applyBranchEdge(v Value, k stateKey, e cfg.Edge, br branchRefinement) Value {
	if !br.hasTaken && !br.hasNotTaken {
		return v
	}
	if br.gtxnIndex != currentTxn || k.gtxnIndex != currentTxn || k.field != br.field {
		return v
	}
	switch e.Kind {
	case cfg.EdgeBranchTaken:
		if br.hasTaken {
			return Intersect(v, br.takenValue)
		}
	case cfg.EdgeBranchNotTaken:
		if br.hasNotTaken {
			return Intersect(v, br.notTakenValue)
		}
	}
	return v
}

// applyLocalRefinements narrows In by every refinement recognized in the
// block, producing Out. Fields untouched by any refinement pass through
// unchanged (spec.md §4.6's "PRSV" behavior).
func applyLocalRefinements(in map[stateKey]Value, refs []refinement) map[stateKey]Value {
	out := make(map[stateKey]Value, len(in)+len(refs))
	for k, v := range in {
		out[k] = v
	}
	for _, r := range refs {
		k := stateKey{field: r.field, gtxnIndex: r.gtxnIndex}
		cur, ok := out[k]
		if !ok {
			cur = Top()
		}
		out[k] = Intersect(cur, r.value)
	}
	return out
}

// applySeeds intersects every Seed targeting this block into in, the same
// narrowing applyLocalRefinements performs for an in-program assert.
func applySeeds(in map[stateKey]Value, seeds []Seed) map[stateKey]Value {
	if len(seeds) == 0 {
		return in
	}
	out := make(map[stateKey]Value, len(in)+len(seeds))
	for k, v := range in {
		out[k] = v
	}
	for _, s := range seeds {
		k := stateKey{field: s.Field, gtxnIndex: s.GtxnIndex}
		cur, ok := out[k]
		if !ok {
			cur = Top()
		}
		out[k] = Intersect(cur, s.Value)
	}
	return out
}

func sameState(a, b map[stateKey]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
