// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/api2spec/zodgen/pkg/types"
)

// formatValidators maps string formats to Zod string methods.
var formatValidators = map[string]string{
	"email":     ".email()",
	"uri":       ".url()",
	"url":       ".url()",
	"hostname":  ".url()",
	"uuid":      ".uuid()",
	"date-time": ".datetime({ offset: true })",
	"date":      ".date()",
	"time":      ".time()",
	"duration":  ".duration()",
	"ipv4":      `.ip({ version: "v4" })`,
	"ipv6":      `.ip({ version: "v6" })`,
	"cuid":      ".cuid()",
	"ulid":      ".ulid()",
	"emoji":     ".emoji()",
}

// Chain returns the modifiers appended to the base validator of s, in order:
// kind constraints, description, default, presence. It returns "" when there is nothing to add.
func (c *Converter) Chain(s *types.Schema, meta Meta) string {
	if s == nil {
		return presence(meta.IsRequired, false)
	}

	var sb strings.Builder
	for _, seg := range constraints(effective(s)) {
		sb.WriteString(seg)
	}

	if n := annotation(s, hasDescription); c.opts.Descriptions && n != nil {
		sb.WriteString(".describe(" + quote(n.Description) + ")")
	}
	if n := annotation(s, hasDefault); c.opts.DefaultValues && n != nil {
		sb.WriteString(".default(" + literal(n.Default) + ")")
	}

	sb.WriteString(presence(meta.IsRequired, presenceNullable(s)))
	return sb.String()
}

// annotation returns the node whose annotation applies: s itself when it has
// one, otherwise the member a single-member composition collapses to.
// Annotations next to a $ref are ignored.
func annotation(s *types.Schema, has func(*types.Schema) bool) *types.Schema {
	if s.Ref != "" {
		return nil
	}
	if has(s) {
		return s
	}
	if inner := effective(s); inner != s && inner.Ref == "" && has(inner) {
		return inner
	}
	return nil
}

func hasDescription(s *types.Schema) bool { return s.Description != "" }

func hasDefault(s *types.Schema) bool { return s.Default != nil }

// presence maps required-ness and nullability to a Zod suffix.
func presence(isRequired, isNullable bool) string {
	switch {
	case !isRequired && isNullable:
		return ".nullish()"
	case isNullable:
		return ".nullable()"
	case !isRequired:
		return ".optional()"
	}
	return ""
}

// presenceNullable is nullable for the node and, for single-member compositions,
// for the member the node collapses to.
func presenceNullable(s *types.Schema) bool {
	if inner := effective(s); inner != s {
		return nullable(s) || nullable(inner)
	}
	return nullable(s)
}

func effective(s *types.Schema) *types.Schema {
	if inner := collapsed(s); inner != nil {
		return inner
	}
	return s
}

// nullable reports whether the presence suffix must accept null. Nodes whose
// base expression already includes null, and bare references, return false.
func nullable(s *types.Schema) bool {
	switch {
	case s.Ref != "":
		return false
	case len(s.Type) > 1 && hasKind(s.Type, "null"):
		return false
	case len(s.OneOf) == 0 && len(s.AnyOf) > 1:
		return false
	case nullOnlyEnum(s):
		return false
	}
	return s.IsNullable()
}

// nullOnlyEnum reports whether every enum value is null; such an enum converts to z.null().
func nullOnlyEnum(s *types.Schema) bool {
	if len(s.Enum) == 0 {
		return false
	}
	for _, v := range s.Enum {
		if v != nil {
			return false
		}
	}
	return true
}

// constraints returns the kind-specific modifiers of s. Composition nodes and
// references get none: their base expression is a union, intersection or name.
func constraints(s *types.Schema) []string {
	if s.Ref != "" || len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return nil
	}
	// Literal unions have no string or number methods.
	if len(s.Enum) > 0 {
		return nil
	}

	switch s.Kind() {
	case "string":
		return stringConstraints(s)
	case "number", "integer":
		return numberConstraints(s)
	case "array":
		return arrayConstraints(s)
	case "":
		if s.Items != nil {
			return arrayConstraints(s)
		}
	}
	return nil
}

func stringConstraints(s *types.Schema) []string {
	var out []string
	out = append(out, sizeConstraints(s.MinLength, s.MaxLength)...)
	if s.Pattern != "" {
		out = append(out, ".regex("+regexLiteral(s.Pattern)+")")
	}
	if v, ok := formatValidators[s.Format]; ok {
		out = append(out, v)
	}
	return out
}

func numberConstraints(s *types.Schema) []string {
	var out []string
	if s.Kind() == "integer" {
		out = append(out, ".int()")
	}

	if b := s.ExclusiveMinimum; b != nil && b.Value != nil {
		out = append(out, ".gt("+formatNumber(*b.Value)+")")
	}
	if s.Minimum != nil {
		if b := s.ExclusiveMinimum; b != nil && b.Flag {
			out = append(out, ".gt("+formatNumber(*s.Minimum)+")")
		} else {
			out = append(out, ".gte("+formatNumber(*s.Minimum)+")")
		}
	}

	if b := s.ExclusiveMaximum; b != nil && b.Value != nil {
		out = append(out, ".lt("+formatNumber(*b.Value)+")")
	}
	if s.Maximum != nil {
		if b := s.ExclusiveMaximum; b != nil && b.Flag {
			out = append(out, ".lt("+formatNumber(*s.Maximum)+")")
		} else {
			out = append(out, ".lte("+formatNumber(*s.Maximum)+")")
		}
	}

	if s.MultipleOf != nil {
		out = append(out, ".multipleOf("+formatNumber(*s.MultipleOf)+")")
	}
	return out
}

func arrayConstraints(s *types.Schema) []string {
	if s.Items != nil && s.Items.Schema == nil && len(s.Items.Tuple) > 0 {
		return nil
	}
	return sizeConstraints(s.MinItems, s.MaxItems)
}

func sizeConstraints(minimum, maximum *int) []string {
	if minimum != nil && maximum != nil && *minimum == *maximum {
		return []string{".length(" + strconv.Itoa(*minimum) + ")"}
	}
	var out []string
	if minimum != nil {
		out = append(out, ".min("+strconv.Itoa(*minimum)+")")
	}
	if maximum != nil {
		out = append(out, ".max("+strconv.Itoa(*maximum)+")")
	}
	return out
}

// regexLiteral renders a pattern as a JavaScript regular expression literal.
// Surrounding slashes are stripped, control characters and bare slashes escaped.
func regexLiteral(pattern string) string {
	if len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		pattern = pattern[1 : len(pattern)-1]
	}

	var sb strings.Builder
	sb.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
			continue
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
			continue
		}

		switch r {
		case '/':
			sb.WriteString(`\/`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	if escaped {
		sb.WriteByte('\\')
	}
	sb.WriteByte('/')
	return sb.String()
}

func hasKind(t types.SchemaType, kind string) bool {
	for _, k := range t {
		if k == kind {
			return true
		}
	}
	return false
}
