// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	r := NewResolver(loadYAML(t))

	endpoints, err := Endpoints(r)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	get := endpoints[0]
	assert.Equal(t, "get", get.Method)
	assert.Equal(t, "/pets/{petId}", get.Path)
	assert.Equal(t, "getPet", get.Alias)

	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "petId", get.Parameters[0].Name)
	assert.True(t, get.Parameters[0].Required, "path parameters are always required")
	assert.Equal(t, "verbose", get.Parameters[1].Name)
	assert.Equal(t, "query", get.Parameters[1].In)
	assert.False(t, get.Parameters[1].Required)

	require.Len(t, get.Responses, 2)
	assert.Equal(t, "200", get.Responses[0].Status)
	assert.Equal(t, "#/components/schemas/Pet", get.Responses[0].Schema.Ref)
	assert.Equal(t, "404", get.Responses[1].Status)
	assert.Equal(t, "not found", get.Responses[1].Description)
	assert.Equal(t, "#/components/schemas/Error", get.Responses[1].Schema.Ref)

	put := endpoints[1]
	assert.Equal(t, "put", put.Method)
	assert.Equal(t, "putPetsPetId", put.Alias)
	require.NotNil(t, put.Body)
	assert.True(t, put.Body.Required)
	assert.Equal(t, "application/merge-patch+json", put.Body.MediaType)

	var statuses []string
	for _, resp := range put.Responses {
		statuses = append(statuses, resp.Status)
	}
	assert.Equal(t, []string{"204", "2XX", "default"}, statuses)
	assert.Nil(t, put.Responses[0].Schema)
}

func TestEndpoints_OperationOverridesPathParameter(t *testing.T) {
	doc, err := Parse("api.yaml", []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items:
    parameters:
      - {name: limit, in: query, schema: {type: string}}
    get:
      parameters:
        - {name: limit, in: query, required: true, schema: {type: integer}}
      responses:
        "200": {description: ok}
`))
	require.NoError(t, err)

	endpoints, err := Endpoints(NewResolver(doc))
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	require.Len(t, endpoints[0].Parameters, 1)
	assert.True(t, endpoints[0].Parameters[0].Required)
	assert.True(t, endpoints[0].Parameters[0].Schema.Type.Is("integer"))
	assert.Equal(t, "getItems", endpoints[0].Alias)
}

func TestEndpoints_BrokenReference(t *testing.T) {
	doc, err := Parse("api.yaml", []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items:
    get:
      parameters:
        - $ref: '#/components/parameters/Missing'
      responses:
        "200": {description: ok}
`))
	require.NoError(t, err)

	_, err = Endpoints(NewResolver(doc))
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}
