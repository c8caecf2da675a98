// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package check

import (
	"fmt"
	"sort"
	"strings"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded marks a declaration the existing module lacks.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved marks a declaration that would no longer be generated.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified marks a declaration whose value or annotation changed.
	DiffTypeModified DiffType = "modified"
)

// Change is one declaration-level difference.
type Change struct {
	Type DiffType
	Kind string
	Name string

	// Existing and Generated hold the normalized declaration text on each side
	Existing  string
	Generated string
}

// DiffResult contains the differences between an existing module and fresh output.
type DiffResult struct {
	// Path is the existing module
	Path string

	// Missing indicates the existing module does not exist
	Missing bool

	// Changes lists declaration differences
	Changes []Change

	// SyntaxErrors lists parse problems in the existing module
	SyntaxErrors []SyntaxError

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if the existing module is in sync.
func (d *DiffResult) IsEmpty() bool {
	return !d.Missing && len(d.Changes) == 0 && len(d.SyntaxErrors) == 0
}

// Diff compares an existing module with a generated one, declaration by
// declaration. Formatting and comments are ignored.
func Diff(existing, generated *Module) *DiffResult {
	result := &DiffResult{
		Path:         existing.Path,
		SyntaxErrors: existing.SyntaxErrors,
	}

	have := indexDeclarations(existing.Declarations)
	want := indexDeclarations(generated.Declarations)

	for _, d := range generated.Declarations {
		old, ok := have[d.Key()]
		switch {
		case !ok:
			result.Changes = append(result.Changes, Change{
				Type:      DiffTypeAdded,
				Kind:      d.Kind,
				Name:      d.Name,
				Generated: d.text(),
			})
		case old.text() != d.text() || old.Exported != d.Exported:
			result.Changes = append(result.Changes, Change{
				Type:      DiffTypeModified,
				Kind:      d.Kind,
				Name:      d.Name,
				Existing:  old.text(),
				Generated: d.text(),
			})
		}
	}
	for _, d := range existing.Declarations {
		if _, ok := want[d.Key()]; !ok {
			result.Changes = append(result.Changes, Change{
				Type:     DiffTypeRemoved,
				Kind:     d.Kind,
				Name:     d.Name,
				Existing: d.text(),
			})
		}
	}

	result.Summary = summarize(result)
	return result
}

// Missing reports a module that does not exist yet: every generated
// declaration is an addition.
func Missing(path string, generated *Module) *DiffResult {
	result := Diff(&Module{Path: path}, generated)
	result.Missing = true
	result.Summary = summarize(result)
	return result
}

// Filter returns a copy of the result holding only the changes keep accepts.
func (d *DiffResult) Filter(keep func(Change) bool) *DiffResult {
	out := *d
	out.Changes = nil
	for _, c := range d.Changes {
		if keep(c) {
			out.Changes = append(out.Changes, c)
		}
	}
	out.Summary = summarize(&out)
	return &out
}

func (d Declaration) text() string {
	if d.Annotation == "" {
		return d.Value
	}
	return d.Annotation + " = " + d.Value
}

func indexDeclarations(list []Declaration) map[string]Declaration {
	out := make(map[string]Declaration, len(list))
	for _, d := range list {
		if _, dup := out[d.Key()]; !dup {
			out[d.Key()] = d
		}
	}
	return out
}

func summarize(result *DiffResult) string {
	if result.IsEmpty() {
		return "in sync"
	}

	var added, removed, modified int
	for _, c := range result.Changes {
		switch c.Type {
		case DiffTypeAdded:
			added++
		case DiffTypeRemoved:
			removed++
		case DiffTypeModified:
			modified++
		}
	}

	var parts []string
	if result.Missing {
		parts = append(parts, "module missing")
	}
	if n := len(result.SyntaxErrors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d syntax error(s)", n))
	}
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d declaration(s) added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d declaration(s) removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d declaration(s) modified", modified))
	}
	return strings.Join(parts, ", ")
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return fmt.Sprintf("%s: in sync\n", result.Path)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", result.Path, result.Summary)

	for _, e := range result.SyntaxErrors {
		fmt.Fprintf(&sb, "  ! %s\n", e)
	}

	changes := make([]Change, len(result.Changes))
	copy(changes, result.Changes)
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Name != changes[j].Name {
			return changes[i].Name < changes[j].Name
		}
		return changes[i].Kind > changes[j].Kind
	})

	for _, c := range changes {
		symbol := "  "
		switch c.Type {
		case DiffTypeAdded:
			symbol = "+ "
		case DiffTypeRemoved:
			symbol = "- "
		case DiffTypeModified:
			symbol = "~ "
		}
		fmt.Fprintf(&sb, "  %s%s %s\n", symbol, c.Kind, c.Name)
	}
	return sb.String()
}
