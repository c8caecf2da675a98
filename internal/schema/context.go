// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/api2spec/zodgen/internal/graph"
	"github.com/api2spec/zodgen/pkg/types"
)

// Resolver resolves references to schemas and canonical names.
type Resolver interface {
	Resolve(ref string) (*types.Schema, string, error)
}

// Context is the state of one conversion run: where references come from, where
// results go, and which references are being expanded on the current call stack.
type Context struct {
	resolver Resolver
	registry *Registry
	graph    *graph.Graph
	path     []string
}

// NewContext creates a conversion context. The graph is optional; when present,
// every declaration it marks circular is registered in lazy form.
func NewContext(resolver Resolver, registry *Registry, g *graph.Graph) *Context {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Context{
		resolver: resolver,
		registry: registry,
		graph:    g,
	}
}

// Registry returns the registry shared by the run.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Path returns the names currently being expanded, outermost first.
func (c *Context) Path() []string {
	out := make([]string, len(c.path))
	copy(out, c.path)
	return out
}

func (c *Context) onPath(name string) bool {
	for _, n := range c.path {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Context) push(name string) {
	c.path = append(c.path, name)
}

func (c *Context) pop() {
	c.path = c.path[:len(c.path)-1]
}

func (c *Context) current() string {
	if len(c.path) == 0 {
		return ""
	}
	return c.path[len(c.path)-1]
}

func (c *Context) staticCircular(ref string) bool {
	return c.graph != nil && c.graph.IsCircular(ref)
}
