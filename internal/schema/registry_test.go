// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ReserveAndFill(t *testing.T) {
	reg := NewRegistry()

	require.True(t, reg.Reserve("User", "#/components/schemas/User"))
	assert.False(t, reg.Reserve("User", "#/components/schemas/User"))

	placeholder, ok := reg.Get("User")
	require.True(t, ok)
	assert.False(t, placeholder.Done())
	assert.Empty(t, reg.Entries(), "placeholders are not listed")

	e, ok := reg.Fill("User", "{ id: string }", "z.object({ id: z.string() })")
	require.True(t, ok)
	assert.True(t, e.Done())
	assert.True(t, e.NewType)
	assert.Equal(t, "#/components/schemas/User", e.Ref)
	assert.Len(t, reg.Entries(), 1)
}

func TestRegistry_FillUnknown(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Fill("Missing", "string", "z.string()")
	assert.False(t, ok)
}

func TestRegistry_NewType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{typ: "string", want: false},
		{typ: "number", want: false},
		{typ: "never", want: false},
		{typ: "string | null", want: true},
		{typ: "Array<string>", want: true},
		{typ: "Pet", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			reg := NewRegistry()
			reg.Reserve("X", "")
			e, _ := reg.Fill("X", tt.typ, "z.unknown()")
			assert.Equal(t, tt.want, e.NewType)
		})
	}
}

func TestRegistry_MarkCircular(t *testing.T) {
	reg := NewRegistry()

	reg.Reserve("Node", "#/components/schemas/Node")
	reg.MarkCircular("Node")
	e, _ := reg.Fill("Node", "{ children: Array<Node> }", "z.object({ children: z.array(Node) })")
	assert.True(t, e.Circular)
	assert.Equal(t, "z.lazy(() => z.object({ children: z.array(Node) }))", e.Validator)

	reg.Reserve("Leaf", "")
	reg.Fill("Leaf", "string", "z.string()")
	reg.MarkCircular("Leaf")
	reg.MarkCircular("Leaf")
	leaf, _ := reg.Get("Leaf")
	assert.Equal(t, "z.lazy(() => z.string())", leaf.Validator)
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry()

	reg.Reserve("A", "")
	reg.Reserve("B", "")
	reg.Fill("B", "string", "z.string()")

	assert.True(t, reg.Remove("A"))
	assert.False(t, reg.Remove("A"))
	assert.False(t, reg.Has("A"))
	assert.Equal(t, []string{"B"}, reg.Names())
	assert.Equal(t, 1, reg.Count())
	require.Len(t, reg.Entries(), 1)
	assert.Equal(t, "B", reg.Entries()[0].Name)
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()

	reg.Reserve("Zebra", "")
	reg.Reserve("Apple", "")
	reg.Reserve("Mango", "")

	assert.Equal(t, []string{"Apple", "Mango", "Zebra"}, reg.Names())
}
