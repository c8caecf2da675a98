// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import "github.com/api2spec/zodgen/pkg/types"

// Options controls how schemas are converted. Every option is independent.
type Options struct {
	// ImplicitRequired treats properties of objects without a required list as required
	ImplicitRequired bool

	// DefaultValues appends .default(...) for schemas that declare a default
	DefaultValues bool

	// Strict rejects unknown keys on every object (.strict()); it wins over Passthrough
	Strict bool

	// Passthrough keeps unknown keys on every object (.passthrough())
	Passthrough bool

	// Readonly wraps objects and records in .readonly() / Readonly<...>
	Readonly bool

	// Descriptions appends .describe(...) for schemas with a description
	Descriptions bool

	// ComplexityThreshold is the score above which writers hoist inline schemas
	// into named declarations
	ComplexityThreshold int

	// Rewrite is called before each node is converted and may return a replacement
	Rewrite func(*types.Schema) *types.Schema
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DefaultValues:       true,
		ComplexityThreshold: 4,
	}
}
