// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposition_SingleMemberCollapses(t *testing.T) {
	members := []string{
		"{type: string, minLength: 2}",
		"{type: string, nullable: true}",
		"{type: object, required: [a], properties: {a: {type: integer}}}",
		"{$ref: '#/components/schemas/Pet'}",
		"{type: array, items: {type: boolean}}",
		"{type: string, default: x}",
		"{type: string, description: hi}",
		"{type: string, enum: [a, b], description: letter, default: a}",
	}

	opts := DefaultOptions()
	opts.Descriptions = true
	c := NewConverter(opts)
	for _, member := range members {
		for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
			t.Run(keyword+" "+member, func(t *testing.T) {
				direct, err := c.Convert(newContext(t, false), inline(t, member), Meta{IsRequired: true})
				require.NoError(t, err)
				wrapped, err := c.Convert(newContext(t, false), inline(t, keyword+": ["+member+"]"), Meta{IsRequired: true})
				require.NoError(t, err)
				assert.Equal(t, direct, wrapped)

				directType, directValidator := expression(t, c, newContext(t, false), member)
				wrappedType, wrappedValidator := expression(t, c, newContext(t, false), keyword+": ["+member+"]")
				assert.Equal(t, directType, wrappedType)
				assert.Equal(t, directValidator, wrappedValidator)
			})
		}
	}
}

func TestComposition_OuterAnnotationsWin(t *testing.T) {
	opts := DefaultOptions()
	opts.Descriptions = true
	c := NewConverter(opts)

	_, validator := expression(t, c, newContext(t, false), `{description: outer, default: y, oneOf: [{type: string, description: inner, default: x}]}`)
	assert.Equal(t, `z.string().describe("outer").default("y")`, validator)

	_, validator = expression(t, c, newContext(t, false), `{description: outer, allOf: [{type: string, default: x}]}`)
	assert.Equal(t, `z.string().describe("outer").default("x")`, validator)

	_, validator = expression(t, c, newContext(t, false), `oneOf: [{$ref: '#/components/schemas/Pet', description: ignored}]`)
	assert.Equal(t, "Pet", validator)
}

func TestAllOf_ComposedRequired(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), `allOf: [{required: [a]}, {required: [b]}]`)
	assert.Equal(t, "{ a: unknown; b: unknown }", typ)
	assert.Equal(t, "z.object({ a: z.unknown(), b: z.unknown() })", validator)

	typ, validator = expression(t, c, newContext(t, false), `allOf: [{$ref: '#/components/schemas/Base'}, {required: [a]}, {required: [b, a]}]`)
	assert.Equal(t, "Base & { a: string; b: number }", typ)
	assert.Equal(t, "Base.and(z.object({ a: z.string(), b: z.number().int() }))", validator)

	typ, validator = expression(t, c, newContext(t, false), `allOf: [{$ref: '#/components/schemas/Base'}, {type: object, required: [a]}]`)
	assert.Equal(t, "Base & { a: string }", typ)
	assert.Equal(t, "Base.and(z.object({ a: z.string() }))", validator)

	typ, validator = expression(t, c, newContext(t, false), `allOf: [{type: object, required: [a]}, {type: object, required: [b]}]`)
	assert.Equal(t, "{ a: unknown; b: unknown }", typ)
	assert.Equal(t, "z.object({ a: z.unknown(), b: z.unknown() })", validator)
}

func TestIsRequiredOnly(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{src: "{required: [a]}", want: true},
		{src: "{type: object, required: [a]}", want: true},
		{src: "{type: string, required: [a]}", want: false},
		{src: "{type: [object, null], required: [a]}", want: false},
		{src: "{type: object, required: [a], properties: {a: {type: string}}}", want: false},
		{src: "{$ref: '#/components/schemas/Base', required: [a]}", want: false},
		{src: "{type: object}", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, isRequiredOnly(inline(t, tt.src)))
		})
	}
}

func TestAllOf_Intersection(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), `allOf:
  - {type: object, required: [x], properties: {x: {type: string}}}
  - {type: object, properties: {y: {type: number}}}
  - oneOf: [{type: string}, {type: number}]
`)
	assert.Equal(t, "{ x: string } & Partial<{ y: number }> & (string | number)", typ)
	assert.Equal(t, "z.object({ x: z.string() }).and(z.object({ y: z.number() }).partial()).and(z.union([z.string(), z.number()]))", validator)
}

func TestAllOf_NullableIntersection(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), `{nullable: true, allOf: [{$ref: '#/components/schemas/Pet'}, {$ref: '#/components/schemas/Base'}]}`)
	assert.Equal(t, "Pet & Base | null", typ)
	assert.Equal(t, "Pet.and(Base).nullable()", validator)
}

func TestOneOf_DiscriminatedUnion(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), `
oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
discriminator:
  propertyName: kind
`)
	assert.Equal(t, "Cat | Dog", typ)
	assert.Equal(t, `z.discriminatedUnion("kind", [Cat, Dog])`, validator)
}

func TestOneOf_FallsBackToUnion(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantValid string
	}{
		{
			name: "member with multi-member allOf",
			src: `
oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
  - allOf:
      - $ref: '#/components/schemas/Cat'
      - {type: object, properties: {extra: {type: string}}}
discriminator: {propertyName: kind}
`,
			wantValid: "z.union([Cat, Dog, Cat.and(z.object({ extra: z.string() }).partial())])",
		},
		{
			name: "no discriminator",
			src: `
oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
`,
			wantValid: "z.union([Cat, Dog])",
		},
		{
			name: "non-object member",
			src: `
oneOf:
  - $ref: '#/components/schemas/Cat'
  - {type: string}
discriminator: {propertyName: kind}
`,
			wantValid: "z.union([Cat, z.string()])",
		},
	}

	c := NewConverter(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, validator := expression(t, c, newContext(t, false), tt.src)
			assert.Equal(t, tt.wantValid, validator)
		})
	}
}

func TestOneOf_MemberChains(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), "oneOf: [{type: string, minLength: 1}, {type: integer, nullable: true}]")
	assert.Equal(t, "string | number | null", typ)
	assert.Equal(t, "z.union([z.string().min(1), z.number().int().nullable()])", validator)
}

func TestAnyOf_ValueOrArray(t *testing.T) {
	c := NewConverter(DefaultOptions())

	typ, validator := expression(t, c, newContext(t, false), "anyOf: [{type: string}, {type: number}]")
	assert.Equal(t, "string | number | Array<string | number>", typ)
	assert.Equal(t, "z.union([z.union([z.string(), z.number()]), z.array(z.union([z.string(), z.number()]))])", validator)

	typ, validator = expression(t, c, newContext(t, false), "{nullable: true, anyOf: [{type: string}, {type: number}]}")
	assert.Equal(t, "string | number | Array<string | number> | null", typ)
	assert.Equal(t, "z.union([z.union([z.string(), z.number()]), z.array(z.union([z.string(), z.number()])), z.null()])", validator)

	_, validator, err := c.Expression(newContext(t, false), inline(t, "{nullable: true, anyOf: [{type: string}, {type: number}]}"), Meta{IsRequired: false})
	require.NoError(t, err)
	assert.Equal(t, "z.union([z.union([z.string(), z.number()]), z.array(z.union([z.string(), z.number()])), z.null()]).optional()", validator)
}

func TestComposition_PriorityOverObject(t *testing.T) {
	c := NewConverter(DefaultOptions())

	_, validator := expression(t, c, newContext(t, false), "{type: object, properties: {ignored: {type: string}}, oneOf: [{$ref: '#/components/schemas/Cat'}, {$ref: '#/components/schemas/Dog'}]}")
	assert.Equal(t, "z.union([Cat, Dog])", validator)
}
