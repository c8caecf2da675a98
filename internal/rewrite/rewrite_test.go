// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/zodgen/pkg/types"
)

func decode(t *testing.T, src string) *types.Schema {
	t.Helper()
	var s types.Schema
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	return &s
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "empty predicate", rules: []Rule{{Set: map[string]any{"type": "string"}}}},
		{name: "nothing to do", rules: []Rule{{When: "true"}}},
		{name: "syntax error", rules: []Rule{{When: "format ==", Set: map[string]any{"type": "string"}}}},
		{name: "not a predicate", rules: []Rule{{When: `"text"`, Set: map[string]any{"type": "string"}}}},
		{name: "unknown field", rules: []Rule{{When: `fromat == "binary"`, Set: map[string]any{"type": "string"}}}},
		{name: "mismatched types", rules: []Rule{{When: `format > 3`, Set: map[string]any{"type": "string"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	r, err := Compile([]Rule{
		{When: `format == "binary"`, Set: map[string]any{"type": "string", "format": "byte"}},
		{When: `type == "integer" && format == "int64"`, Set: map[string]any{"type": "string"}, Unset: []string{"minimum", "format"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	original := decode(t, "{type: integer, format: int64, minimum: 0, description: id}")
	out, err := r.Apply(original)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Type.Is("string"))
	assert.Empty(t, out.Format)
	assert.Nil(t, out.Minimum)
	assert.Equal(t, "id", out.Description)

	assert.True(t, original.Type.Is("integer"), "the input is left untouched")
	assert.NotNil(t, original.Minimum)

	out, err = r.Apply(decode(t, "{type: string, format: date}"))
	require.NoError(t, err)
	assert.Nil(t, out, "no rule matched")
}

func TestApply_RulesChain(t *testing.T) {
	r, err := Compile([]Rule{
		{When: `format == "binary"`, Set: map[string]any{"format": "int64", "type": "integer"}},
		{When: `format == "int64"`, Set: map[string]any{"type": "string"}, Unset: []string{"format"}},
	})
	require.NoError(t, err)

	out, err := r.Apply(decode(t, "{type: string, format: binary}"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Type.Is("string"))
	assert.Empty(t, out.Format)
}

func TestApply_KeepsPropertyOrder(t *testing.T) {
	r, err := Compile([]Rule{
		{When: `"id" in properties`, Set: map[string]any{"required": []string{"id"}}},
	})
	require.NoError(t, err)

	out, err := r.Apply(decode(t, "{type: object, properties: {zeta: {type: string}, id: {type: integer}, alpha: {type: boolean}}}"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{"zeta", "id", "alpha"}, out.Properties.Names())
	assert.Equal(t, []string{"id"}, out.Required)
}

func TestApply_LowercasedKeys(t *testing.T) {
	r, err := Compile([]Rule{
		{
			When:  `type == "array"`,
			Set:   map[string]any{"minitems": 1, "items": map[string]any{"type": "string", "minlength": 2}},
			Unset: []string{"MAXITEMS"},
		},
	})
	require.NoError(t, err)

	out, err := r.Apply(decode(t, "{type: array, maxItems: 5}"))
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.MinItems)
	assert.EqualValues(t, 1, *out.MinItems)
	assert.Nil(t, out.MaxItems)
	require.NotNil(t, out.Items)
	require.NotNil(t, out.Items.Schema)
	require.NotNil(t, out.Items.Schema.MinLength)
	assert.EqualValues(t, 2, *out.Items.Schema.MinLength)
}

func TestHook(t *testing.T) {
	var empty *Rewriter
	assert.Nil(t, empty.Hook(nil))

	r, err := Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, r.Hook(nil))

	r, err = Compile([]Rule{{When: "nullable", Set: map[string]any{"nullable": false}}})
	require.NoError(t, err)
	hook := r.Hook(nil)
	require.NotNil(t, hook)

	out := hook(decode(t, "{type: string, nullable: true}"))
	require.NotNil(t, out)
	assert.False(t, out.Nullable)
	assert.Nil(t, hook(decode(t, "type: string")))
}

func TestHook_ReportsEvaluationErrors(t *testing.T) {
	r, err := Compile([]Rule{{When: `enum[0] == "a"`, Set: map[string]any{"type": "string"}}})
	require.NoError(t, err)

	var reported []error
	hook := r.Hook(func(err error) { reported = append(reported, err) })

	out := hook(decode(t, "{enum: [a]}"))
	require.NotNil(t, out)
	assert.True(t, out.Type.Is("string"))
	assert.Empty(t, reported)

	assert.Nil(t, hook(decode(t, "type: integer")))
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "rewrite rule 0: failed to evaluate")
}
