// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"strings"

	"github.com/api2spec/zodgen/pkg/types"
)

func (c *Converter) convertObject(ctx *Context, s *types.Schema, meta Meta) (Result, error) {
	if ap := s.AdditionalProperties; ap != nil && ap.Schema != nil {
		return c.convertRecord(ctx, ap.Schema, meta)
	}

	// Without a required list every property is optional, unless the policy says otherwise.
	partial := s.Required == nil && !c.opts.ImplicitRequired

	typ, validator, err := c.objectBody(ctx, s.Properties, func(name string) bool {
		switch {
		case partial:
			return true
		case s.Required != nil:
			return contains(s.Required, name)
		}
		return c.opts.ImplicitRequired
	})
	if err != nil {
		return Result{}, err
	}

	if partial && len(s.Properties) > 0 {
		validator += ".partial()"
		typ = "Partial<" + typ + ">"
	}

	explicitlyClosed := s.AdditionalProperties != nil && !s.AdditionalProperties.Allowed
	explicitlyOpen := s.AdditionalProperties != nil && s.AdditionalProperties.Allowed
	switch {
	case c.opts.Strict:
		validator += ".strict()"
	case (c.opts.Passthrough || explicitlyOpen) && !explicitlyClosed:
		validator += ".passthrough()"
	}

	if c.opts.Readonly {
		validator += ".readonly()"
		typ = "Readonly<" + typ + ">"
	}

	return Result{Type: typ, Validator: validator, Meta: meta}, nil
}

// convertRecord renders a dictionary object whose values follow one schema.
func (c *Converter) convertRecord(ctx *Context, value *types.Schema, meta Meta) (Result, error) {
	valueType, valueValidator, err := c.complete(ctx, value, Meta{IsRequired: true})
	if err != nil {
		return Result{}, err
	}

	typ := "Record<string, " + valueType + ">"
	validator := "z.record(" + valueValidator + ")"
	if c.opts.Readonly {
		validator += ".readonly()"
		typ = "Readonly<" + typ + ">"
	}
	return Result{Type: typ, Validator: validator, Meta: meta}, nil
}

// objectBody renders `z.object({ ... })` and its type literal. Each property
// carries its own chain, computed with the required-ness given by isRequired.
func (c *Converter) objectBody(ctx *Context, props types.Properties, isRequired func(string) bool) (string, string, error) {
	if len(props) == 0 {
		return "{}", "z.object({})", nil
	}

	typeFields := make([]string, 0, len(props))
	validatorFields := make([]string, 0, len(props))
	for _, p := range props {
		required := isRequired(p.Name)
		typ, validator, err := c.complete(ctx, p.Schema, Meta{IsRequired: required})
		if err != nil {
			return "", "", err
		}

		key := propertyKey(p.Name)
		if required {
			typeFields = append(typeFields, key+": "+typ)
		} else {
			typeFields = append(typeFields, key+"?: "+typ+" | undefined")
		}
		validatorFields = append(validatorFields, key+": "+validator)
	}

	return "{ " + strings.Join(typeFields, "; ") + " }",
		"z.object({ " + strings.Join(validatorFields, ", ") + " })",
		nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
