// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// OpenAPI is the typed view of an OpenAPI 3.x document. Reusable parameters,
// bodies and responses are read through the raw node tree instead.
type OpenAPI struct {
	OpenAPI    string              `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Swagger    string              `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components *Components         `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info names the API.
type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

// PathItem holds the operations of one path.
type PathItem struct {
	Ref        string      `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Get        *Operation  `json:"get,omitempty" yaml:"get,omitempty"`
	Put        *Operation  `json:"put,omitempty" yaml:"put,omitempty"`
	Post       *Operation  `json:"post,omitempty" yaml:"post,omitempty"`
	Delete     *Operation  `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options    *Operation  `json:"options,omitempty" yaml:"options,omitempty"`
	Head       *Operation  `json:"head,omitempty" yaml:"head,omitempty"`
	Patch      *Operation  `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace      *Operation  `json:"trace,omitempty" yaml:"trace,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// MethodOperation pairs an HTTP method with its operation.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operations returns the defined operations of the path item in a fixed method order.
func (p PathItem) Operations() []MethodOperation {
	all := []MethodOperation{
		{"get", p.Get},
		{"put", p.Put},
		{"post", p.Post},
		{"delete", p.Delete},
		{"options", p.Options},
		{"head", p.Head},
		{"patch", p.Patch},
		{"trace", p.Trace},
	}
	ops := make([]MethodOperation, 0, len(all))
	for _, op := range all {
		if op.Operation != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// Components holds the component schemas.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}
