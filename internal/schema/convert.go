// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema converts OpenAPI schemas into TypeScript types and Zod validators.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/api2spec/zodgen/internal/openapi"
	"github.com/api2spec/zodgen/pkg/types"
)

// Meta is the presence information of a node in its parent.
type Meta struct {
	// IsRequired is true when the parent requires the value to be present
	IsRequired bool

	// Nullable is true when the node accepts null
	Nullable bool
}

// Result is the converted form of one schema node. Validator holds the base
// expression only; Chain supplies the modifiers.
type Result struct {
	Type      string
	Validator string
	Meta      Meta
}

// Converter turns schema nodes into type and validator expressions.
type Converter struct {
	opts Options
}

// NewConverter creates a converter with the given options.
func NewConverter(opts Options) *Converter {
	return &Converter{opts: opts}
}

// Options returns the converter options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert converts one schema node. The rewrite hook, if any, is applied first.
func (c *Converter) Convert(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	return c.convert(ctx, c.rewrite(s), meta)
}

// Register converts the schema behind ref into a named registry entry and returns its name.
func (c *Converter) Register(ctx *Context, ref string) (string, error) {
	res, err := c.convertRef(ctx, &types.Schema{Ref: ref}, Meta{IsRequired: true})
	if err != nil {
		return "", err
	}
	return res.Validator, nil
}

// Declare converts an inline schema into a registry entry under a name that
// has no reference, such as a hoisted request body.
func (c *Converter) Declare(ctx *Context, name string, s *types.Schema) (Entry, error) {
	if !ctx.registry.Reserve(name, "") {
		return Entry{}, &ConversionError{Op: "declare", Name: name, Err: fmt.Errorf("name already registered")}
	}
	typ, validator, err := c.complete(ctx, s, Meta{IsRequired: true})
	if err != nil {
		ctx.registry.Remove(name)
		return Entry{}, err
	}
	e, _ := ctx.registry.Fill(name, typ, validator)
	return e, nil
}

// Expression converts a node and applies its chain, returning finished type and validator expressions.
func (c *Converter) Expression(ctx *Context, s *types.Schema, meta Meta) (string, string, error) {
	return c.complete(ctx, s, meta)
}

func (c *Converter) rewrite(s *types.Schema) *types.Schema {
	if s == nil || c.opts.Rewrite == nil {
		return s
	}
	if replaced := c.opts.Rewrite(s); replaced != nil {
		return replaced
	}
	return s
}

// complete converts a child node and appends its chain. The type gets "| null"
// when the chain makes the validator nullable.
func (c *Converter) complete(ctx *Context, s *types.Schema, meta Meta) (string, string, error) {
	s = c.rewrite(s)
	res, err := c.convert(ctx, s, meta)
	if err != nil {
		return "", "", err
	}
	typ := res.Type
	if s != nil && presenceNullable(s) {
		typ = withNull(typ)
	}
	return typ, res.Validator + c.Chain(s, meta), nil
}

func (c *Converter) convert(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if s == nil {
		return Result{Type: "unknown", Validator: "z.unknown()", Meta: meta}, nil
	}
	meta.Nullable = s.IsNullable()

	if s.Ref != "" {
		return c.convertRef(ctx, s, meta)
	}

	if len(s.Type) > 1 {
		return c.convertTypeList(ctx, s, meta)
	}

	kind := s.Kind()
	if kind == "null" {
		return Result{Type: "null", Validator: "z.null()", Meta: meta}, nil
	}

	switch {
	case s.OneOf != nil:
		return c.convertOneOf(ctx, s, meta)
	case s.AnyOf != nil:
		return c.convertAnyOf(ctx, s, meta)
	case s.AllOf != nil:
		return c.convertAllOf(ctx, s, meta)
	}

	switch kind {
	case "string", "number", "integer", "boolean":
		if len(s.Enum) > 0 {
			return convertEnum(s, meta), nil
		}
		return convertPrimitive(kind, meta), nil
	case "array":
		return c.convertArray(ctx, s, meta)
	case "object":
		return c.convertObject(ctx, s, meta)
	case "":
		switch {
		case s.Items != nil:
			return c.convertArray(ctx, s, meta)
		case s.IsObjectLike():
			return c.convertObject(ctx, s, meta)
		case len(s.Enum) > 0:
			return convertEnum(s, meta), nil
		}
		return Result{Type: "unknown", Validator: "z.unknown()", Meta: meta}, nil
	}

	return Result{}, &ConversionError{Op: "convert", Name: ctx.current(), Kind: kind, Err: ErrUnsupportedSchemaKind}
}

// convertRef expands a reference through the registry. A name that is already
// being expanded further up the call stack is returned as is and its entry is
// marked circular instead of being expanded again.
func (c *Converter) convertRef(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if s.DefinesType() {
		return Result{}, &ConversionError{
			Op:   "convert",
			Name: ctx.current(),
			Ref:  s.Ref,
			Err:  fmt.Errorf("%w: $ref next to type-defining fields", openapi.ErrInvalidReference),
		}
	}

	target, name, err := ctx.resolver.Resolve(s.Ref)
	if err != nil {
		return Result{}, &ConversionError{Op: "resolve", Name: ctx.current(), Ref: s.Ref, Err: err}
	}
	meta.Nullable = false

	if ctx.onPath(name) {
		ctx.registry.MarkCircular(name)
		return Result{Type: name, Validator: name, Meta: meta}, nil
	}
	if e, ok := ctx.registry.Get(name); ok {
		return c.named(e, meta), nil
	}

	ref, _ := openapi.NormalizeRef(s.Ref)
	ctx.registry.Reserve(name, ref)
	if ctx.staticCircular(ref) {
		ctx.registry.MarkCircular(name)
	}

	ctx.push(name)
	typ, validator, err := c.complete(ctx, target, Meta{IsRequired: true})
	ctx.pop()
	if err != nil {
		ctx.registry.Remove(name)
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			return Result{}, err
		}
		return Result{}, &ConversionError{Op: "convert", Name: name, Ref: ref, Err: err}
	}

	e, _ := ctx.registry.Fill(name, typ, validator)
	return c.named(e, meta), nil
}

// named refers to a registry entry. Bare keyword types are inlined on the type side.
func (c *Converter) named(e Entry, meta Meta) Result {
	typ := e.Name
	if e.Done() && !e.NewType {
		typ = e.Type
	}
	return Result{Type: typ, Validator: e.Name, Meta: meta}
}

// convertTypeList converts `type: [a, b]` into a union with one member per kind.
func (c *Converter) convertTypeList(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	typeParts := make([]string, 0, len(s.Type))
	validators := make([]string, 0, len(s.Type))

	for _, kind := range s.Type {
		member := s.Clone()
		member.Type = types.SchemaType{kind}
		member.Nullable = false
		member.Description = ""
		member.Default = nil

		res, err := c.convert(ctx, member, Meta{IsRequired: true})
		if err != nil {
			return Result{}, err
		}
		typeParts = append(typeParts, res.Type)
		validators = append(validators, res.Validator+strings.Join(constraints(member), ""))
	}

	return Result{
		Type:      unionType(typeParts),
		Validator: "z.union([" + strings.Join(validators, ", ") + "])",
		Meta:      meta,
	}, nil
}

func convertPrimitive(kind string, meta Meta) Result {
	switch kind {
	case "string":
		return Result{Type: "string", Validator: "z.string()", Meta: meta}
	case "boolean":
		return Result{Type: "boolean", Validator: "z.boolean()", Meta: meta}
	}
	return Result{Type: "number", Validator: "z.number()", Meta: meta}
}

func (c *Converter) convertArray(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if s.Items == nil || (s.Items.Schema == nil && len(s.Items.Tuple) == 0) {
		return Result{Type: "Array<unknown>", Validator: "z.array(z.unknown())", Meta: meta}, nil
	}

	if s.Items.Schema == nil {
		typeParts := make([]string, 0, len(s.Items.Tuple))
		validators := make([]string, 0, len(s.Items.Tuple))
		for _, item := range s.Items.Tuple {
			typ, validator, err := c.complete(ctx, item, Meta{IsRequired: true})
			if err != nil {
				return Result{}, err
			}
			typeParts = append(typeParts, typ)
			validators = append(validators, validator)
		}
		return Result{
			Type:      "[" + strings.Join(typeParts, ", ") + "]",
			Validator: "z.tuple([" + strings.Join(validators, ", ") + "])",
			Meta:      meta,
		}, nil
	}

	// Items are required within their own slot, whatever the array's presence.
	typ, validator, err := c.complete(ctx, s.Items.Schema, Meta{IsRequired: true})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Type:      "Array<" + typ + ">",
		Validator: "z.array(" + validator + ")",
		Meta:      meta,
	}, nil
}
