// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedSchemaKind is returned for a type keyword the converter does not know.
	ErrUnsupportedSchemaKind = errors.New("unsupported schema kind")

	// ErrEmptyComposition is returned for an allOf, oneOf or anyOf list without members.
	ErrEmptyComposition = errors.New("empty composition")
)

// ConversionError locates a failed conversion in the source document.
type ConversionError struct {
	// Op is the conversion step that failed (convert, allOf, oneOf, ...)
	Op string

	// Name is the canonical name of the declaration being converted, if any
	Name string

	// Ref is the reference being expanded, if any
	Ref string

	// Kind is the offending schema kind, if relevant
	Kind string

	// Err is the underlying error
	Err error
}

func (e *ConversionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Name)
	}
	if e.Ref != "" {
		fmt.Fprintf(&sb, " (%s)", e.Ref)
	}
	sb.WriteString(": ")
	if e.Kind != "" {
		fmt.Fprintf(&sb, "%q: ", e.Kind)
	}
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
