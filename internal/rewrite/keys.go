// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package rewrite

import (
	"sort"
	"strings"
)

// keywords are the schema keys rules may set or unset. Configuration loaders
// lowercase map keys, so rule keys are matched against them case-insensitively.
var keywords = []string{
	"$ref", "type", "format", "title", "description", "default", "example", "enum",
	"nullable", "readOnly", "writeOnly", "deprecated",
	"minLength", "maxLength", "pattern",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"items", "minItems", "maxItems", "uniqueItems",
	"properties", "required", "additionalProperties", "minProperties", "maxProperties",
	"allOf", "oneOf", "anyOf", "not", "discriminator", "propertyName", "mapping",
}

func canonicalKey(key string) string {
	for _, kw := range keywords {
		if strings.EqualFold(kw, key) {
			return kw
		}
	}
	return key
}

// canonicalValue restores keyword spelling in nested rule values.
func canonicalValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[canonicalKey(k)] = canonicalValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = canonicalValue(item)
		}
		return out
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
