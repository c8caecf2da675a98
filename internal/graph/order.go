// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package graph

// Order returns the references of the graph with dependencies first.
// Members of a cycle are placed together where the first of them is reached.
// The result only depends on discovery order, so unchanged documents give identical output.
func Order(g *Graph) []string {
	visited := make(map[string]bool, len(g.refs))
	out := make([]string, 0, len(g.refs))

	var visit func(ref string)
	visit = func(ref string) {
		if visited[ref] {
			return
		}
		visited[ref] = true
		for _, dep := range g.nodes[ref].Transitive {
			visit(dep)
		}
		out = append(out, ref)
	}

	for _, ref := range g.refs {
		visit(ref)
	}
	return out
}
