// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_LeavesFirst(t *testing.T) {
	g := buildGraph(t, ref("A"))
	assert.Equal(t, []string{ref("C"), ref("B"), ref("A")}, Order(g))
}

func TestOrder_WholeDocument(t *testing.T) {
	g := buildGraph(t)

	order := Order(g)
	assert.Len(t, order, g.Len())

	position := make(map[string]int, len(order))
	for i, r := range order {
		position[r] = i
	}

	for _, r := range g.Refs() {
		n, _ := g.Node(r)
		for _, dep := range n.Direct {
			depNode, _ := g.Node(dep)
			if depNode.Circular && n.Circular {
				continue
			}
			assert.Less(t, position[dep], position[r], "%s must come after %s", r, dep)
		}
	}

	assert.Equal(t, []string{
		ref("C"), ref("B"), ref("A"), ref("Node"), ref("Right"), ref("Left"), ref("Dict"),
	}, order)
}
