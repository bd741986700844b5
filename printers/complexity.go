package printers

import "go-tealer/cfg"

// Complexity computes McCabe cyclomatic complexity of a CFG the way the
// original's code_complexity module does: M = E - N + 2P, where E and N are
// edge/node counts and P is the number of strongly connected components
// (Kosaraju's algorithm).
func Complexity(g *cfg.CFG) int {
	e := 0
	for _, b := range g.Blocks {
		e += len(g.Successors(b))
	}
	n := len(g.Blocks)
	p := len(stronglyConnectedComponents(g))
	return e - n + 2*p
}

func stronglyConnectedComponents(g *cfg.CFG) [][]int {
	visited := map[int]bool{}
	var order []int

	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, s := range g.Successors(g.Block(id)) {
			visit(s.ID)
		}
		order = append(order, id)
	}
	for _, b := range g.Blocks {
		visit(b.ID)
	}

	assigned := map[int]bool{}
	var components [][]int

	var assign func(id int, root *[]int)
	assign = func(id int, root *[]int) {
		if assigned[id] {
			return
		}
		assigned[id] = true
		*root = append(*root, id)
		for _, p := range g.Predecessors(g.Block(id)) {
			assign(p.ID, root)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if assigned[id] {
			continue
		}
		var component []int
		assign(id, &component)
		if len(component) > 0 {
			components = append(components, component)
		}
	}
	return components
}
