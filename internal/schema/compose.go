// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"strings"

	"github.com/api2spec/zodgen/pkg/types"
)

// maxMemberDepth bounds the search through nested allOf members and references.
const maxMemberDepth = 8

func (c *Converter) convertOneOf(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if len(s.OneOf) == 0 {
		return Result{}, &ConversionError{Op: "oneOf", Name: ctx.current(), Err: ErrEmptyComposition}
	}
	if len(s.OneOf) == 1 {
		return c.Convert(ctx, s.OneOf[0], meta)
	}

	typeParts, validators, err := c.members(ctx, s.OneOf)
	if err != nil {
		return Result{}, err
	}

	res := Result{Type: unionType(typeParts), Meta: meta}
	if c.discriminated(ctx, s) {
		res.Validator = "z.discriminatedUnion(" + quote(s.Discriminator.PropertyName) + ", [" + strings.Join(validators, ", ") + "])"
	} else {
		res.Validator = "z.union([" + strings.Join(validators, ", ") + "])"
	}
	return res, nil
}

// convertAnyOf accepts one value of any member, or an array of them.
func (c *Converter) convertAnyOf(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if len(s.AnyOf) == 0 {
		return Result{}, &ConversionError{Op: "anyOf", Name: ctx.current(), Err: ErrEmptyComposition}
	}
	if len(s.AnyOf) == 1 {
		return c.Convert(ctx, s.AnyOf[0], meta)
	}

	typeParts, validators, err := c.members(ctx, s.AnyOf)
	if err != nil {
		return Result{}, err
	}

	union := "z.union([" + strings.Join(validators, ", ") + "])"
	valueType := unionType(typeParts)

	validator := "z.union([" + union + ", z.array(" + union + ")"
	typ := valueType + " | Array<" + valueType + ">"
	if s.IsNullable() {
		validator += ", z.null()"
		typ += " | null"
	}
	validator += "])"

	return Result{Type: typ, Validator: validator, Meta: meta}, nil
}

// convertAllOf intersects the members. Members that only list required
// properties are folded into one synthetic object that requires all of them,
// with property schemas borrowed from the other members.
func (c *Converter) convertAllOf(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if len(s.AllOf) == 0 {
		return Result{}, &ConversionError{Op: "allOf", Name: ctx.current(), Err: ErrEmptyComposition}
	}
	if len(s.AllOf) == 1 {
		return c.Convert(ctx, s.AllOf[0], meta)
	}

	var required []string
	var members []*types.Schema
	for _, m := range s.AllOf {
		if isRequiredOnly(m) {
			for _, name := range m.Required {
				if !contains(required, name) {
					required = append(required, name)
				}
			}
			continue
		}
		members = append(members, m)
	}

	typeParts, validators, err := c.members(ctx, members)
	if err != nil {
		return Result{}, err
	}

	if len(required) > 0 {
		props := make(types.Properties, 0, len(required))
		for _, name := range required {
			prop := c.findProperty(ctx, members, name, 0)
			if prop == nil {
				prop = &types.Schema{}
			}
			props = append(props, types.Property{Name: name, Schema: prop})
		}
		typ, validator, err := c.objectBody(ctx, props, func(string) bool { return true })
		if err != nil {
			return Result{}, err
		}
		typeParts = append(typeParts, typ)
		validators = append(validators, validator)
	}

	validator := validators[0]
	for _, v := range validators[1:] {
		validator += ".and(" + v + ")"
	}
	return Result{Type: intersectionType(typeParts), Validator: validator, Meta: meta}, nil
}

// members converts composition members, each with its own chain.
func (c *Converter) members(ctx *Context, list []*types.Schema) ([]string, []string, error) {
	typeParts := make([]string, 0, len(list))
	validators := make([]string, 0, len(list))
	for _, m := range list {
		typ, validator, err := c.complete(ctx, m, Meta{IsRequired: true})
		if err != nil {
			return nil, nil, err
		}
		typeParts = append(typeParts, typ)
		validators = append(validators, validator)
	}
	return typeParts, validators, nil
}

// discriminated reports whether a oneOf can be a discriminated union: a
// discriminator is declared and every member is an object that is not a
// multi-member allOf.
func (c *Converter) discriminated(ctx *Context, s *types.Schema) bool {
	if s.Discriminator == nil || s.Discriminator.PropertyName == "" {
		return false
	}
	for _, m := range s.OneOf {
		if !c.isObjectMember(ctx, m, 0) {
			return false
		}
	}
	return true
}

func (c *Converter) isObjectMember(ctx *Context, m *types.Schema, depth int) bool {
	m = c.deref(ctx, m)
	if m == nil || depth > maxMemberDepth || len(m.AllOf) > 1 {
		return false
	}
	if len(m.AllOf) == 1 && len(m.Type) == 0 && len(m.Properties) == 0 {
		return c.isObjectMember(ctx, m.AllOf[0], depth+1)
	}
	return m.IsObjectLike()
}

// findProperty looks for a property schema among allOf members, following
// references and nested allOf lists.
func (c *Converter) findProperty(ctx *Context, members []*types.Schema, name string, depth int) *types.Schema {
	if depth > maxMemberDepth {
		return nil
	}
	for _, m := range members {
		m = c.deref(ctx, m)
		if m == nil {
			continue
		}
		if p, ok := m.Properties.Get(name); ok {
			return p
		}
		if p := c.findProperty(ctx, m.AllOf, name, depth+1); p != nil {
			return p
		}
	}
	return nil
}

// deref follows a member reference. Unresolvable references yield nil; the
// error surfaces when the member itself is converted.
func (c *Converter) deref(ctx *Context, m *types.Schema) *types.Schema {
	for hops := 0; m != nil && m.Ref != ""; hops++ {
		if hops > maxMemberDepth {
			return nil
		}
		target, _, err := ctx.resolver.Resolve(m.Ref)
		if err != nil {
			return nil
		}
		m = target
	}
	return m
}

// isRequiredOnly reports whether an allOf member does nothing but list
// required properties, optionally declaring type: object.
func isRequiredOnly(m *types.Schema) bool {
	if m == nil || m.Ref != "" || len(m.Required) == 0 {
		return false
	}
	if len(m.Type) > 0 && !m.Type.Is("object") {
		return false
	}
	bare := m.Clone()
	bare.Type = nil
	return !bare.DefinesType()
}

// collapsed follows single-member compositions to the node that is actually converted.
func collapsed(s *types.Schema) *types.Schema {
	for depth := 0; s != nil && s.Ref == "" && len(s.Type) <= 1 && depth <= maxMemberDepth; depth++ {
		switch {
		case len(s.OneOf) == 1:
			s = s.OneOf[0]
		case s.OneOf == nil && len(s.AnyOf) == 1:
			s = s.AnyOf[0]
		case s.OneOf == nil && s.AnyOf == nil && len(s.AllOf) == 1:
			s = s.AllOf[0]
		default:
			return s
		}
	}
	return s
}
