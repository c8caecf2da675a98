// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaNotFound is returned when a reference points at a missing definition.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrInvalidReference is returned when a reference is malformed or not local to the document.
	ErrInvalidReference = errors.New("invalid reference")
)

// RefError records the reference and the operation that failed on it.
type RefError struct {
	// Op is the operation in progress (resolve, lookup, ...)
	Op string

	// Ref is the offending reference
	Ref string

	// Err is the underlying error, one of the sentinels above
	Err error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Ref, e.Err)
}

func (e *RefError) Unwrap() error {
	return e.Err
}
