// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package check

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/api2spec/zodgen/internal/emit"
	"github.com/api2spec/zodgen/internal/generate"
)

// Checker renders output in memory and compares it with the module on disk.
type Checker struct {
	parser *Parser
	writer *emit.Writer
}

// NewChecker creates a Checker rendering with writer.
func NewChecker(writer *emit.Writer) *Checker {
	if writer == nil {
		writer = emit.NewWriter()
	}
	return &Checker{parser: NewParser(), writer: writer}
}

// Check compares out with the file at path. A missing file is reported as
// drift, not as an error. JSON manifests are compared byte for byte.
func (c *Checker) Check(out *generate.Output, path string) (*DiffResult, error) {
	format := emit.FormatFor(path)
	data, err := c.writer.Render(out, format)
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(path)
	missing := errors.Is(err, os.ErrNotExist)
	if err != nil && !missing {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if format == emit.FormatJSON {
		result := &DiffResult{Path: path, Missing: missing}
		if !missing && !bytes.Equal(existing, data) {
			result.Changes = []Change{{Type: DiffTypeModified, Kind: "manifest", Name: path}}
		}
		result.Summary = summarize(result)
		return result, nil
	}

	generated, err := c.parser.Parse(path, data)
	if err != nil {
		return nil, err
	}
	if missing {
		return Missing(path, generated), nil
	}

	current, err := c.parser.Parse(path, existing)
	if err != nil {
		return nil, err
	}
	return Diff(current, generated), nil
}

// Close releases the parser.
func (c *Checker) Close() {
	c.parser.Close()
}
