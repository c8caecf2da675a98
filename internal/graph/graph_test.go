// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/zodgen/internal/openapi"
	"github.com/api2spec/zodgen/pkg/types"
)

const graphDoc = `openapi: 3.0.3
info: {title: graph, version: "1"}
components:
  schemas:
    A:
      type: object
      properties:
        b: {$ref: '#/components/schemas/B'}
    B:
      type: array
      items: {$ref: '#/components/schemas/C'}
    C:
      type: string
    Node:
      type: object
      properties:
        value: {type: string}
        children:
          type: array
          items: {$ref: '#/components/schemas/Node'}
    Left:
      allOf:
        - $ref: '#/components/schemas/Right'
    Right:
      oneOf:
        - $ref: '#/components/schemas/Left'
        - $ref: '#/components/schemas/C'
    Dict:
      type: object
      additionalProperties: {$ref: '#/components/schemas/A'}
      not: {$ref: '#/components/schemas/Node'}
`

func buildGraph(t *testing.T, roots ...string) *Graph {
	t.Helper()
	doc, err := openapi.Parse("graph.yaml", []byte(graphDoc))
	require.NoError(t, err)
	if len(roots) == 0 {
		roots = doc.SchemaRefs()
	}
	g, err := Build(openapi.NewResolver(doc), roots)
	require.NoError(t, err)
	return g
}

func ref(name string) string {
	return "#/components/schemas/" + name
}

func TestBuild_DirectAndTransitive(t *testing.T) {
	g := buildGraph(t, ref("A"))

	assert.Equal(t, []string{ref("A"), ref("B"), ref("C")}, g.Refs())

	a, ok := g.Node(ref("A"))
	require.True(t, ok)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, []string{ref("B")}, a.Direct)
	assert.Equal(t, []string{ref("B"), ref("C")}, a.Transitive)
	assert.False(t, a.Circular)
	assert.Equal(t, 2, a.Depth)

	c, _ := g.Node(ref("C"))
	assert.Empty(t, c.Direct)
	assert.Equal(t, 0, c.Depth)
	assert.Equal(t, []string{ref("B")}, c.Dependents)
}

func TestBuild_Circular(t *testing.T) {
	g := buildGraph(t)

	assert.True(t, g.IsCircular(ref("Node")))
	assert.True(t, g.IsCircular(ref("Left")))
	assert.True(t, g.IsCircular(ref("Right")))
	assert.False(t, g.IsCircular(ref("A")))
	assert.False(t, g.IsCircular(ref("Dict")))
	assert.Equal(t, []string{ref("Node"), ref("Left"), ref("Right")}, g.CircularRefs())

	node, _ := g.Node("#components/schemas/Node")
	assert.Equal(t, 1, node.Depth)

	right, _ := g.Node(ref("Right"))
	assert.Equal(t, 1, right.Depth, "the edge back to Left is ignored, C has depth 0")
}

func TestBuild_NotIsIgnored(t *testing.T) {
	g := buildGraph(t, ref("Dict"))

	dict, _ := g.Node(ref("Dict"))
	assert.Equal(t, []string{ref("A")}, dict.Direct)
	_, ok := g.Node(ref("Node"))
	assert.False(t, ok)
}

func TestBuild_Deterministic(t *testing.T) {
	first := buildGraph(t)
	for i := 0; i < 5; i++ {
		again := buildGraph(t)
		assert.Equal(t, first.Refs(), again.Refs())
		for _, r := range first.Refs() {
			want, _ := first.Node(r)
			got, _ := again.Node(r)
			assert.Equal(t, want, got)
		}
		assert.Equal(t, Order(first), Order(again))
	}
}

func TestBuild_MissingReference(t *testing.T) {
	doc, err := openapi.Parse("broken.yaml", []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
components:
  schemas:
    A:
      properties:
        b: {$ref: '#/components/schemas/Missing'}
`))
	require.NoError(t, err)

	_, err = Build(openapi.NewResolver(doc), doc.SchemaRefs())
	assert.ErrorIs(t, err, openapi.ErrSchemaNotFound)
}

func TestCollectRefs(t *testing.T) {
	s := &types.Schema{
		Properties: types.Properties{
			{Name: "x", Schema: &types.Schema{Ref: "#/components/schemas/X"}},
			{Name: "y", Schema: &types.Schema{Ref: "components/schemas/X"}},
		},
		Items: &types.Items{Tuple: []*types.Schema{{Ref: "#/components/schemas/T"}}},
		AnyOf: []*types.Schema{{Ref: "#/components/schemas/U"}},
		Not:   &types.Schema{Ref: "#/components/schemas/N"},
	}

	refs, err := CollectRefs(s)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"#/components/schemas/X",
		"#/components/schemas/T",
		"#/components/schemas/U",
	}, refs)

	_, err = CollectRefs(&types.Schema{Ref: "other.yaml#/X"})
	assert.ErrorIs(t, err, openapi.ErrInvalidReference)
}
