// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sort"
	"sync"
)

// Entry is a named declaration produced by a conversion run.
type Entry struct {
	// Name is the canonical name of the declaration
	Name string

	// Ref is the reference the declaration was resolved from, empty for synthetic ones
	Ref string

	// Type is the TypeScript type expression
	Type string

	// Validator is the Zod expression, wrapped in z.lazy when Circular is set
	Validator string

	// Circular marks declarations that must be evaluated lazily
	Circular bool

	// NewType is false when the type is a bare keyword that is inlined at use sites
	NewType bool

	done bool
}

// Done reports whether the entry holds a completed expression rather than a placeholder.
func (e Entry) Done() bool {
	return e.done
}

// Registry stores converted declarations by canonical name.
// It is shared by every conversion of one run.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewRegistry creates a new declaration registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Reserve registers a placeholder for a declaration that is being converted.
// It returns false when the name is already registered.
func (r *Registry) Reserve(name, ref string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return false
	}
	r.entries[name] = &Entry{Name: name, Ref: ref}
	r.order = append(r.order, name)
	return true
}

// Fill completes a reserved entry.
func (r *Registry) Fill(name, typ, validator string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	e.Type = typ
	e.Validator = validator
	e.NewType = !isKeywordType(typ)
	if e.Circular {
		e.Validator = lazy(validator)
	}
	e.done = true
	return *e, true
}

// MarkCircular flags an entry for lazy evaluation. Entries that are already
// filled are wrapped immediately.
func (r *Registry) MarkCircular(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok || e.Circular {
		return
	}
	e.Circular = true
	if e.done {
		e.Validator = lazy(e.Validator)
	}
}

// Get returns an entry by name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Has checks if an entry exists in the registry, placeholder or not.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

// Remove removes an entry from the registry.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Entries returns the completed entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		if e := r.entries[name]; e.done {
			result = append(result, *e)
		}
	}
	return result
}

// Names returns all entry names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of entries in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func lazy(validator string) string {
	return "z.lazy(() => " + validator + ")"
}

// isKeywordType reports whether a type expression is a bare TypeScript keyword.
func isKeywordType(typ string) bool {
	switch typ {
	case "string", "number", "boolean", "null", "unknown", "never":
		return true
	}
	return false
}
