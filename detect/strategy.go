package detect

import "go-tealer/cfg"

// WalkEntryToReturn enumerates every simple path (loop suppressed) from the
// program entry block to a halting block (return/err/retsub with no
// caller), per spec.md §4.7's "entry-to-return" strategy. visit is called
// once per maximal path, entry first, sink last.
func WalkEntryToReturn(g *cfg.CFG, visit func(path []*cfg.BasicBlock)) {
	walkPaths(g, g.Entry(), nil, visit)
}

// WalkEntryToStateChangingOp enumerates paths from the program entry up to
// (and including) the first block on each path where isSink reports true,
// per spec.md §4.7's second strategy. Detectors use this to reach an
// app_global_put, itxn_submit, or similar effectful instruction without
// needing to see what happens after it.
func WalkEntryToStateChangingOp(g *cfg.CFG, isSink func(b *cfg.BasicBlock) bool, visit func(path []*cfg.BasicBlock)) {
	walkPaths(g, g.Entry(), isSink, visit)
}

// WalkSubroutine enumerates paths confined to a single subroutine's owned
// blocks (spec.md §4.7's third strategy), starting from its entry block.
// Blocks outside the subroutine are never visited, even if reachable.
func WalkSubroutine(g *cfg.CFG, entry *cfg.BasicBlock, owned map[int]bool, visit func(path []*cfg.BasicBlock)) {
	walkPathsFiltered(g, entry, nil, owned, visit)
}

func walkPaths(g *cfg.CFG, start *cfg.BasicBlock, isSink func(b *cfg.BasicBlock) bool, visit func(path []*cfg.BasicBlock)) {
	walkPathsFiltered(g, start, isSink, nil, visit)
}

// walkPathsFiltered is the shared DFS. It suppresses loops by refusing to
// revisit a block already on the current path, matching the
// "if bb in current_path: return" idiom the underlying path search builds
// on. When allowed is non-nil, only blocks in allowed are traversable.
func walkPathsFiltered(g *cfg.CFG, start *cfg.BasicBlock, isSink func(b *cfg.BasicBlock) bool, allowed map[int]bool, visit func(path []*cfg.BasicBlock)) {
	onPath := map[int]bool{}
	var path []*cfg.BasicBlock

	var dfs func(b *cfg.BasicBlock)
	dfs = func(b *cfg.BasicBlock) {
		if onPath[b.ID] {
			return // loop suppression: never revisit a block on the current path
		}
		if allowed != nil && !allowed[b.ID] {
			return
		}
		onPath[b.ID] = true
		path = append(path, b)

		successors := g.Successors(b)
		sink := isSink != nil && isSink(b)
		if sink || len(successors) == 0 {
			visit(append([]*cfg.BasicBlock(nil), path...))
		} else {
			for _, s := range successors {
				dfs(s)
			}
		}

		path = path[:len(path)-1]
		onPath[b.ID] = false
	}
	dfs(start)
}
