// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import "github.com/api2spec/zodgen/pkg/types"

// Complexity scores the size of the expression a schema converts to.
// References are not followed. Writers hoist inline schemas scoring above
// Options.ComplexityThreshold into named declarations.
func Complexity(s *types.Schema) int {
	if s == nil {
		return 0
	}
	if s.Ref != "" {
		return 2
	}

	score := 0
	switch {
	case len(s.OneOf) > 0:
		score = 2 + sumComplexity(s.OneOf)
	case len(s.AnyOf) > 0:
		score = 3 + sumComplexity(s.AnyOf)
	case len(s.AllOf) > 0:
		score = 2 + sumComplexity(s.AllOf)
	case len(s.Enum) > 0:
		score = 1 + len(s.Enum)
	case s.Kind() == "array" || s.Items != nil:
		score = 1 + sumComplexity(s.Items.All())
	case s.IsObjectLike():
		score = 2
		for _, p := range s.Properties {
			score += Complexity(p.Schema)
		}
		if ap := s.AdditionalProperties; ap != nil {
			if ap.Schema != nil {
				score += Complexity(ap.Schema)
			} else if ap.Allowed {
				score++
			}
		}
	default:
		score = 1
	}

	if len(s.Type) > 1 {
		score += len(s.Type) - 1
	}
	return score
}

func sumComplexity(list []*types.Schema) int {
	total := 0
	for _, s := range list {
		total += Complexity(s)
	}
	return total
}
