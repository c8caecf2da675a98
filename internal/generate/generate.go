// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generate runs the conversion pipeline over whole documents.
package generate

import (
	"errors"
	"fmt"

	"github.com/api2spec/zodgen/internal/graph"
	"github.com/api2spec/zodgen/internal/openapi"
	"github.com/api2spec/zodgen/internal/schema"
	"github.com/api2spec/zodgen/internal/util"
	"github.com/api2spec/zodgen/pkg/types"
)

// Options controls a pipeline run.
type Options struct {
	// Conversion holds the converter options
	Conversion schema.Options

	// ExportAllSchemas converts every component schema, not only those reachable from endpoints
	ExportAllSchemas bool

	// ContinueOnError skips failing schemas and reports them together at the end
	ContinueOnError bool

	// Endpoints extracts operations and converts their parameters, bodies and responses
	Endpoints bool
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		Conversion:       schema.DefaultOptions(),
		ExportAllSchemas: true,
		Endpoints:        true,
	}
}

// Declaration is one named schema of the output.
type Declaration struct {
	Name       string `json:"name"`
	Ref        string `json:"ref,omitempty"`
	Type       string `json:"type"`
	Validator  string `json:"validator"`
	Circular   bool   `json:"circular,omitempty"`
	NewType    bool   `json:"newType"`
	Complexity int    `json:"complexity"`
}

// Slot is a converted endpoint parameter, body or response.
type Slot struct {
	Name        string `json:"name,omitempty"`
	In          string `json:"in,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Validator   string `json:"validator"`
}

// Endpoint is a converted operation.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Alias       string `json:"alias"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Parameters  []Slot `json:"parameters,omitempty"`
	Body        *Slot  `json:"body,omitempty"`
	Responses   []Slot `json:"responses,omitempty"`
}

// Output is the result of converting one document.
type Output struct {
	Source    string                 `json:"source,omitempty"`
	Title     string                 `json:"title,omitempty"`
	Version   string                 `json:"version,omitempty"`
	Order     []string               `json:"order"`
	Schemas   map[string]Declaration `json:"schemas"`
	Circular  []string               `json:"circular,omitempty"`
	Endpoints []Endpoint             `json:"endpoints,omitempty"`
}

// Declarations returns the declarations in emission order.
func (o *Output) Declarations() []Declaration {
	out := make([]Declaration, 0, len(o.Order))
	for _, name := range o.Order {
		out = append(out, o.Schemas[name])
	}
	return out
}

type run struct {
	opts      Options
	resolver  *openapi.Resolver
	converter *schema.Converter
	ctx       *schema.Context
	sources   map[string]*types.Schema
	errs      []error
}

// Run converts one document: resolve, build the graph, order, convert.
// With ContinueOnError, the output holds everything that converted and the
// error joins every failure.
func Run(doc *openapi.Document, opts Options) (*Output, error) {
	r := &run{
		opts:      opts,
		resolver:  openapi.NewResolver(doc),
		converter: schema.NewConverter(opts.Conversion),
		sources:   make(map[string]*types.Schema),
	}

	var endpoints []openapi.Endpoint
	if opts.Endpoints {
		var err error
		endpoints, err = openapi.Endpoints(r.resolver)
		if err != nil {
			return nil, fmt.Errorf("failed to extract endpoints: %w", err)
		}
	}

	roots, err := r.roots(doc, endpoints)
	if err != nil {
		return nil, err
	}

	g, err := r.buildGraph(roots)
	if err != nil {
		return nil, err
	}

	r.ctx = schema.NewContext(r.resolver, schema.NewRegistry(), g)

	var order []string
	for _, ref := range graph.Order(g) {
		name, err := r.converter.Register(r.ctx, ref)
		if err != nil {
			if err := r.fail(err); err != nil {
				return nil, err
			}
			continue
		}
		if s, _, err := r.resolver.Resolve(ref); err == nil {
			r.sources[name] = s
		}
		order = append(order, name)
	}

	out := &Output{
		Source:  doc.Path,
		Order:   order,
		Schemas: make(map[string]Declaration),
	}
	if doc.Spec != nil {
		out.Title = doc.Spec.Info.Title
		out.Version = doc.Spec.Info.Version
	}

	for _, ep := range endpoints {
		converted, err := r.endpoint(ep, &out.Order)
		if err != nil {
			if err := r.fail(err); err != nil {
				return nil, err
			}
			continue
		}
		out.Endpoints = append(out.Endpoints, converted)
	}

	// Anything registered outside the graph order, such as schemas referenced
	// only from hoisted endpoint slots, goes last.
	listed := make(map[string]bool, len(out.Order))
	for _, name := range out.Order {
		listed[name] = true
	}
	for _, e := range r.ctx.Registry().Entries() {
		if !listed[e.Name] {
			out.Order = append(out.Order, e.Name)
		}
	}

	for _, name := range out.Order {
		e, ok := r.ctx.Registry().Get(name)
		if !ok {
			continue
		}
		out.Schemas[name] = Declaration{
			Name:       e.Name,
			Ref:        e.Ref,
			Type:       e.Type,
			Validator:  e.Validator,
			Circular:   e.Circular,
			NewType:    e.NewType,
			Complexity: schema.Complexity(r.sources[name]),
		}
		if e.Circular {
			out.Circular = append(out.Circular, name)
		}
	}

	return out, errors.Join(r.errs...)
}

// fail records err when failures are tolerated, otherwise returns it.
func (r *run) fail(err error) error {
	if !r.opts.ContinueOnError {
		return err
	}
	r.errs = append(r.errs, err)
	return nil
}

// roots returns the schema references to convert: every component schema when
// exporting all, plus whatever endpoints reference.
func (r *run) roots(doc *openapi.Document, endpoints []openapi.Endpoint) ([]string, error) {
	var roots []string
	seen := make(map[string]bool)
	add := func(refs ...string) {
		for _, ref := range refs {
			if !seen[ref] {
				seen[ref] = true
				roots = append(roots, ref)
			}
		}
	}

	if r.opts.ExportAllSchemas {
		add(doc.SchemaRefs()...)
	}
	for _, ep := range endpoints {
		for _, s := range endpointSchemas(ep) {
			refs, err := graph.CollectRefs(s)
			if err != nil {
				if err := r.fail(fmt.Errorf("%s %s: %w", ep.Method, ep.Path, err)); err != nil {
					return nil, err
				}
				continue
			}
			add(refs...)
		}
	}
	return roots, nil
}

// buildGraph builds the dependency graph. With ContinueOnError, roots that
// cannot be built are dropped one by one and reported.
func (r *run) buildGraph(roots []string) (*graph.Graph, error) {
	g, err := graph.Build(r.resolver, roots)
	if err == nil {
		return g, nil
	}
	if !r.opts.ContinueOnError {
		return nil, err
	}

	var kept []string
	for _, root := range roots {
		if _, err := graph.Build(r.resolver, []string{root}); err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", root, err))
			continue
		}
		kept = append(kept, root)
	}
	return graph.Build(r.resolver, kept)
}

func (r *run) endpoint(ep openapi.Endpoint, order *[]string) (Endpoint, error) {
	out := Endpoint{
		Method:      ep.Method,
		Path:        ep.Path,
		Alias:       ep.Alias,
		Description: ep.Description,
		Deprecated:  ep.Deprecated,
	}

	for _, p := range ep.Parameters {
		slot, err := r.slot(ep.Alias+"_"+util.PascalCase(p.Name), p.Schema, p.Required, order)
		if err != nil {
			return out, fmt.Errorf("%s parameter %s: %w", ep.Alias, p.Name, err)
		}
		slot.Name = p.Name
		slot.In = p.In
		out.Parameters = append(out.Parameters, slot)
	}

	if ep.Body != nil {
		slot, err := r.slot(ep.Alias+"_Body", ep.Body.Schema, ep.Body.Required, order)
		if err != nil {
			return out, fmt.Errorf("%s body: %w", ep.Alias, err)
		}
		slot.MediaType = ep.Body.MediaType
		out.Body = &slot
	}

	for _, resp := range ep.Responses {
		slot, err := r.slot(ep.Alias+"_"+resp.Status, resp.Schema, true, order)
		if err != nil {
			return out, fmt.Errorf("%s response %s: %w", ep.Alias, resp.Status, err)
		}
		slot.Status = resp.Status
		slot.Description = resp.Description
		slot.MediaType = resp.MediaType
		out.Responses = append(out.Responses, slot)
	}
	return out, nil
}

// slot converts one endpoint schema. Inline schemas above the complexity
// threshold are hoisted into a named declaration.
func (r *run) slot(hoistName string, s *types.Schema, required bool, order *[]string) (Slot, error) {
	slot := Slot{Required: required}
	if s == nil {
		slot.Type, slot.Validator = "unknown", "z.unknown()"
		return slot, nil
	}

	if s.Ref == "" && schema.Complexity(s) > r.opts.Conversion.ComplexityThreshold {
		name := r.resolver.Reserve(hoistName)
		e, err := r.converter.Declare(r.ctx, name, s)
		if err != nil {
			return slot, err
		}
		r.sources[name] = s
		*order = append(*order, name)
		slot.Type, slot.Validator = e.Name, e.Name
		if !required {
			slot.Type += " | undefined"
			slot.Validator += ".optional()"
		}
		return slot, nil
	}

	typ, validator, err := r.converter.Expression(r.ctx, s, schema.Meta{IsRequired: required})
	if err != nil {
		return slot, err
	}
	if !required {
		typ += " | undefined"
	}
	slot.Type, slot.Validator = typ, validator
	return slot, nil
}

func endpointSchemas(ep openapi.Endpoint) []*types.Schema {
	var out []*types.Schema
	for _, p := range ep.Parameters {
		if p.Schema != nil {
			out = append(out, p.Schema)
		}
	}
	if ep.Body != nil && ep.Body.Schema != nil {
		out = append(out, ep.Body.Schema)
	}
	for _, resp := range ep.Responses {
		if resp.Schema != nil {
			out = append(out, resp.Schema)
		}
	}
	return out
}
