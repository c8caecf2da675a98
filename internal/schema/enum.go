// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"strings"

	"github.com/api2spec/zodgen/pkg/types"
)

// convertEnum builds a literal union from an enum. A string value in an enum
// of a non-string kind makes the schema unsatisfiable; it becomes z.never()
// instead of failing the run. Null members are left to the presence suffix.
func convertEnum(s *types.Schema, meta Meta) Result {
	kind := s.Kind()

	values := make([]any, 0, len(s.Enum))
	allStrings := true
	for _, v := range s.Enum {
		if v == nil {
			continue
		}
		_, isString := v.(string)
		if isString && kind != "" && kind != "string" {
			return Result{Type: "never", Validator: "z.never()", Meta: meta}
		}
		allStrings = allStrings && isString
		values = append(values, v)
	}

	switch {
	case len(values) == 0:
		return Result{Type: "null", Validator: "z.null()", Meta: meta}
	case len(values) == 1:
		lit := literal(values[0])
		return Result{Type: lit, Validator: "z.literal(" + lit + ")", Meta: meta}
	}

	typeParts := make([]string, 0, len(values))
	for _, v := range values {
		typeParts = append(typeParts, literal(v))
	}

	if allStrings {
		return Result{
			Type:      unionType(typeParts),
			Validator: "z.enum([" + strings.Join(typeParts, ", ") + "])",
			Meta:      meta,
		}
	}

	validators := make([]string, 0, len(typeParts))
	for _, lit := range typeParts {
		validators = append(validators, "z.literal("+lit+")")
	}
	return Result{
		Type:      unionType(typeParts),
		Validator: "z.union([" + strings.Join(validators, ", ") + "])",
		Meta:      meta,
	}
}
