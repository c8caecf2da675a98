// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/zodgen/internal/graph"
	"github.com/api2spec/zodgen/internal/openapi"
	"github.com/api2spec/zodgen/pkg/types"
)

const componentsDoc = `openapi: 3.0.3
info: {title: components, version: "1"}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name: {type: string}
        tag: {type: string}
    UserId:
      type: string
      format: uuid
    Base:
      type: object
      properties:
        a: {type: string}
        b: {type: integer}
    Cat:
      type: object
      required: [kind]
      properties:
        kind: {type: string, enum: [cat]}
    Dog:
      type: object
      required: [kind]
      properties:
        kind: {type: string, enum: [dog]}
    Node:
      type: object
      properties:
        value: {type: string}
        children:
          type: array
          items: {$ref: '#/components/schemas/Node'}
    Left:
      type: object
      properties:
        right: {$ref: '#/components/schemas/Right'}
    Right:
      type: object
      properties:
        left: {$ref: '#/components/schemas/Left'}
    Broken:
      type: object
      properties:
        x: {$ref: '#/components/schemas/Missing'}
`

func ref(name string) string {
	return "#/components/schemas/" + name
}

// newContext builds a conversion context over componentsDoc, with the static graph when withGraph is set.
func newContext(t *testing.T, withGraph bool) *Context {
	t.Helper()

	doc, err := openapi.Parse("components.yaml", []byte(componentsDoc))
	require.NoError(t, err)
	resolver := openapi.NewResolver(doc)

	var g *graph.Graph
	if withGraph {
		roots := doc.SchemaRefs()
		roots = roots[:len(roots)-1] // Broken fails to build
		g, err = graph.Build(resolver, roots)
		require.NoError(t, err)
	}
	return NewContext(resolver, NewRegistry(), g)
}

func inline(t *testing.T, src string) *types.Schema {
	t.Helper()
	var s types.Schema
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	return &s
}

// expression converts src as a required node and returns its finished type and validator.
func expression(t *testing.T, c *Converter, ctx *Context, src string) (string, string) {
	t.Helper()
	typ, validator, err := c.Expression(ctx, inline(t, src), Meta{IsRequired: true})
	require.NoError(t, err)
	return typ, validator
}
