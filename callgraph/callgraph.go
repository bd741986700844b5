// Package callgraph implements C5: recovers subroutine boundaries and the
// call graph from an already-built cfg.CFG, pairing callsub sites with the
// retsub blocks of their callees.
package callgraph

import (
	"strconv"

	"go-tealer/cfg"
)

const mainName = "main"

// Subroutine is a region bounded by a callsub entry and its retsub exits
// (spec.md §3), or the top-level "main" region.
type Subroutine struct {
	Name      string
	Entry     *cfg.BasicBlock
	Blocks    []*cfg.BasicBlock
	CallSites []*cfg.BasicBlock // blocks, anywhere in the program, that callsub into this subroutine
}

// CallGraph's nodes are subroutines (plus main); edges are call-sites.
type CallGraph struct {
	Subroutines map[string]*Subroutine
	// Edges[callerName] lists the names of subroutines called from that
	// subroutine (duplicates kept — one entry per call-site).
	Edges map[string][]string
}

// Recover implements C5. It mutates g's blocks in place: each
// cfg.BasicBlock.Subroutine is set to its owning subroutine's name, and
// retsub-to-return-site edges (spec.md §3) are synthesized and linked into
// both Successors and Predecessors.
func Recover(g *cfg.CFG) *CallGraph {
	entries := discoverEntries(g)

	cg := &CallGraph{Subroutines: map[string]*Subroutine{}, Edges: map[string][]string{}}
	owned := map[int]string{} // block ID -> subroutine name, first claim wins

	for _, e := range entries {
		name := entryName(e)
		e.Subroutine = name
		sub := &Subroutine{Name: name, Entry: e}
		cg.Subroutines[name] = sub
		collectOwnedBlocks(g, e, owned, sub)
	}
	for _, b := range g.Blocks {
		if name, ok := owned[b.ID]; ok {
			b.Subroutine = name
		} else {
			b.Subroutine = mainName
		}
	}

	linkCallSitesAndReturns(g, cg)
	return cg
}

func entryName(e *cfg.BasicBlock) string {
	if e.ID == 0 {
		return mainName
	}
	return blockSubroutineName(e.ID)
}

func blockSubroutineName(entryID int) string {
	return "sub@" + strconv.Itoa(entryID)
}

// discoverEntries finds every callsub target plus the program entry block.
func discoverEntries(g *cfg.CFG) []*cfg.BasicBlock {
	seen := map[int]bool{0: true}
	entries := []*cfg.BasicBlock{g.Entry()}
	for _, b := range g.Blocks {
		for _, e := range b.Successors {
			if e.Kind != cfg.EdgeCallsubToEntry {
				continue
			}
			if !seen[e.To] {
				seen[e.To] = true
				entries = append(entries, g.Block(e.To))
			}
		}
	}
	return entries
}

// collectOwnedBlocks walks from entry without crossing a callsub into
// another entry and without crossing retsub, per spec.md §4.5.
func collectOwnedBlocks(g *cfg.CFG, entry *cfg.BasicBlock, owned map[int]string, sub *Subroutine) {
	name := entryName(entry)
	stack := []*cfg.BasicBlock{entry}
	visited := map[int]bool{}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[b.ID] {
			continue
		}
		if existing, ok := owned[b.ID]; ok && existing != name {
			continue // already claimed by another subroutine; first wins
		}
		visited[b.ID] = true
		owned[b.ID] = name
		sub.Blocks = append(sub.Blocks, b)

		if b.IsRetsubBlock(g.Program) {
			continue // retsub exits the subroutine; don't follow further
		}
		for _, e := range b.Successors {
			if e.Kind == cfg.EdgeCallsubToEntry {
				continue // callee is not owned by the caller
			}
			if e.Kind == cfg.EdgeHalt {
				continue
			}
			if !visited[e.To] {
				stack = append(stack, g.Block(e.To))
			}
		}
	}
}

// linkCallSitesAndReturns synthesizes retsub-to-return-site edges and
// records call graph edges (spec.md §4.5).
func linkCallSitesAndReturns(g *cfg.CFG, cg *CallGraph) {
	for _, b := range g.Blocks {
		if !b.IsCallsubBlock(g.Program) {
			continue
		}
		var calleeEntryID int
		for _, e := range b.Successors {
			if e.Kind == cfg.EdgeCallsubToEntry {
				calleeEntryID = e.To
			}
		}
		callee := g.Block(calleeEntryID)
		calleeName := entryName(callee)
		callerName := b.Subroutine

		callee2 := cg.Subroutines[calleeName]
		callee2.CallSites = append(callee2.CallSites, b)
		cg.Edges[callerName] = append(cg.Edges[callerName], calleeName)

		returnSite := returnSiteOf(g, b)
		if returnSite == nil {
			continue
		}
		for _, rb := range cg.Subroutines[calleeName].Blocks {
			if !rb.IsRetsubBlock(g.Program) {
				continue
			}
			edge := cfg.Edge{From: rb.ID, To: returnSite.ID, Kind: cfg.EdgeRetsubToReturnSite}
			rb.Successors = append(rb.Successors, edge)
			returnSite.Predecessors = append(returnSite.Predecessors, edge)
		}
	}
}

func returnSiteOf(g *cfg.CFG, callsubBlock *cfg.BasicBlock) *cfg.BasicBlock {
	next := callsubBlock.Last + 1
	if next >= len(g.Program.Instructions) {
		return nil
	}
	return g.BlockOf(next)
}
