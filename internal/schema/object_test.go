// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObject_RequiredRoundTrip(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), "{properties: {a: {type: string}}, required: [a]}")
	assert.Equal(t, "{ a: string }", typ)
	assert.Equal(t, "z.object({ a: z.string() })", validator)

	typ, validator = expression(t, c, newContext(t, false), "{properties: {a: {type: string}}, required: []}")
	assert.Equal(t, "{ a?: string | undefined }", typ)
	assert.Equal(t, "z.object({ a: z.string().optional() })", validator)
}

func TestObject_Modes(t *testing.T) {
	tests := []struct {
		name      string
		opts      func(*Options)
		src       string
		wantType  string
		wantValid string
	}{
		{
			name:      "partial without required list",
			src:       "{type: object, properties: {a: {type: string}, b: {type: number}}}",
			wantType:  "Partial<{ a: string; b: number }>",
			wantValid: "z.object({ a: z.string(), b: z.number() }).partial()",
		},
		{
			name:      "implicit required",
			opts:      func(o *Options) { o.ImplicitRequired = true },
			src:       "{type: object, properties: {a: {type: string}}}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() })",
		},
		{
			name:      "empty object",
			src:       "type: object",
			wantType:  "{}",
			wantValid: "z.object({})",
		},
		{
			name:      "strict",
			opts:      func(o *Options) { o.Strict = true },
			src:       "{type: object, required: [a], properties: {a: {type: string}}}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() }).strict()",
		},
		{
			name:      "strict wins over passthrough",
			opts:      func(o *Options) { o.Strict = true; o.Passthrough = true },
			src:       "{type: object, required: [a], properties: {a: {type: string}}}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() }).strict()",
		},
		{
			name:      "passthrough",
			opts:      func(o *Options) { o.Passthrough = true },
			src:       "{type: object, required: [a], properties: {a: {type: string}}}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() }).passthrough()",
		},
		{
			name:      "additional properties true",
			src:       "{type: object, required: [a], properties: {a: {type: string}}, additionalProperties: true}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() }).passthrough()",
		},
		{
			name:      "additional properties false",
			opts:      func(o *Options) { o.Passthrough = true },
			src:       "{type: object, required: [a], properties: {a: {type: string}}, additionalProperties: false}",
			wantType:  "{ a: string }",
			wantValid: "z.object({ a: z.string() })",
		},
		{
			name:      "readonly",
			opts:      func(o *Options) { o.Readonly = true },
			src:       "{properties: {a: {type: string}}}",
			wantType:  "Readonly<Partial<{ a: string }>>",
			wantValid: "z.object({ a: z.string() }).partial().readonly()",
		},
		{
			name:      "readonly record",
			opts:      func(o *Options) { o.Readonly = true },
			src:       "additionalProperties: {type: string}",
			wantType:  "Readonly<Record<string, string>>",
			wantValid: "z.record(z.string()).readonly()",
		},
		{
			name:      "record skips properties",
			src:       "{properties: {a: {type: number}}, additionalProperties: {type: boolean}}",
			wantType:  "Record<string, boolean>",
			wantValid: "z.record(z.boolean())",
		},
		{
			name:      "quoted keys",
			src:       "{required: [x-id, ok], properties: {x-id: {type: string}, ok: {type: boolean}, 9lives: {type: integer}}}",
			wantType:  `{ "x-id": string; ok: boolean; "9lives"?: number | undefined }`,
			wantValid: `z.object({ "x-id": z.string(), ok: z.boolean(), "9lives": z.number().int().optional() })`,
		},
		{
			name:      "nested presence",
			src:       "{required: [inner], properties: {inner: {properties: {v: {type: string, nullable: true}}, required: []}}}",
			wantType:  "{ inner: { v?: string | null | undefined } }",
			wantValid: "z.object({ inner: z.object({ v: z.string().nullish() }) })",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			typ, validator := expression(t, NewConverter(opts), newContext(t, false), tt.src)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantValid, validator)
		})
	}
}
