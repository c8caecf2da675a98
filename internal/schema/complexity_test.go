// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{name: "primitive", src: "type: string", want: 1},
		{name: "unknown", src: "{}", want: 1},
		{name: "reference", src: "$ref: '#/components/schemas/Pet'", want: 2},
		{name: "enum", src: "{type: string, enum: [a, b, c]}", want: 4},
		{name: "array", src: "{type: array, items: {type: string}}", want: 2},
		{name: "object", src: "{properties: {a: {type: string}, b: {$ref: '#/components/schemas/Pet'}}}", want: 5},
		{name: "open object", src: "{type: object, additionalProperties: true}", want: 3},
		{name: "record", src: "additionalProperties: {type: integer}", want: 3},
		{name: "oneOf", src: "oneOf: [{type: string}, {type: number}]", want: 4},
		{name: "anyOf", src: "anyOf: [{type: string}, {type: number}]", want: 5},
		{name: "allOf", src: "allOf: [{$ref: '#/components/schemas/Pet'}, {required: [a]}]", want: 5},
		{name: "type list", src: `type: [string, "null"]`, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Complexity(inline(t, tt.src)))
		})
	}

	assert.Equal(t, 0, Complexity(nil))
}
