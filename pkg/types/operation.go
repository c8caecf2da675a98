// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"sort"
	"strings"
)

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// Operation is the part of an OpenAPI operation the generator reads.
type Operation struct {
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool                `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Doc returns the summary, or the description when there is none.
func (o *Operation) Doc() string {
	if o.Summary != "" {
		return o.Summary
	}
	return o.Description
}

// Parameter is an operation parameter or a $ref to a component parameter.
type Parameter struct {
	Ref      string  `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Content  Content `json:"content,omitempty" yaml:"content,omitempty"`
}

// Key identifies the parameter within an operation.
func (p Parameter) Key() string {
	return p.In + ":" + p.Name
}

// IsRequired reports whether the parameter must be sent. Path parameters
// always are.
func (p Parameter) IsRequired() bool {
	return p.Required || p.In == InPath
}

// ValueSchema returns the schema of the parameter, falling back to the
// preferred media type of its content.
func (p Parameter) ValueSchema() *Schema {
	if p.Schema != nil {
		return p.Schema
	}
	if _, media, ok := p.Content.Preferred(); ok {
		return media.Schema
	}
	return nil
}

// RequestBody is a request body or a $ref to a component request body.
type RequestBody struct {
	Ref      string  `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Content  Content `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response is a response or a $ref to a component response.
type Response struct {
	Ref         string  `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Content     Content `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType carries the schema of one content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Content maps media type names to media types.
type Content map[string]MediaType

// Preferred picks application/json, then any +json type, then the first
// type by name.
func (c Content) Preferred() (string, MediaType, bool) {
	if len(c) == 0 {
		return "", MediaType{}, false
	}
	if m, ok := c["application/json"]; ok {
		return "application/json", m, true
	}

	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasSuffix(name, "+json") {
			return name, c[name], true
		}
	}
	return names[0], c[names[0]], true
}
