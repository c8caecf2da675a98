// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package graph computes the static reference graph of a document's schemas.
package graph

import (
	"fmt"
	"sort"

	"github.com/api2spec/zodgen/internal/openapi"
	"github.com/api2spec/zodgen/pkg/types"
)

// Resolver is the subset of openapi.Resolver the builder needs.
type Resolver interface {
	Resolve(ref string) (*types.Schema, string, error)
}

// Node is the dependency information of one schema reference.
type Node struct {
	// Ref is the normalized reference of the schema
	Ref string

	// Name is the canonical name of the schema
	Name string

	// Direct holds the references found in the schema itself, in discovery order
	Direct []string

	// Transitive holds every reference reachable from the schema, in discovery order
	Transitive []string

	// Dependents holds the references whose schemas point at this one directly
	Dependents []string

	// Depth is 0 for schemas without references, otherwise one more than the
	// deepest dependency outside the schema's own cycle
	Depth int

	// Circular is true when the schema can reach itself
	Circular bool
}

// Graph is the reference graph of a document. It is built once and never patched;
// build a new one when the document changes.
type Graph struct {
	nodes map[string]*Node
	refs  []string
	index map[string]int
}

// Build walks the given roots and every schema they reach.
func Build(r Resolver, roots []string) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]*Node),
		index: make(map[string]int),
	}

	for _, root := range roots {
		ref, err := openapi.NormalizeRef(root)
		if err != nil {
			return nil, err
		}
		if err := g.visit(r, ref); err != nil {
			return nil, err
		}
	}

	g.closeTransitive()
	g.linkDependents()
	g.computeDepths()
	return g, nil
}

func (g *Graph) visit(r Resolver, ref string) error {
	if _, seen := g.nodes[ref]; seen {
		return nil
	}
	s, name, err := r.Resolve(ref)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	direct, err := CollectRefs(s)
	if err != nil {
		return fmt.Errorf("failed to collect references of %s: %w", ref, err)
	}

	g.index[ref] = len(g.refs)
	g.refs = append(g.refs, ref)
	g.nodes[ref] = &Node{Ref: ref, Name: name, Direct: direct}

	for _, dep := range direct {
		if err := g.visit(r, dep); err != nil {
			return err
		}
	}
	return nil
}

// closeTransitive unions direct sets until no set grows.
func (g *Graph) closeTransitive() {
	sets := make(map[string]map[string]bool, len(g.refs))
	for _, ref := range g.refs {
		set := make(map[string]bool)
		for _, dep := range g.nodes[ref].Direct {
			set[dep] = true
		}
		sets[ref] = set
	}

	for changed := true; changed; {
		changed = false
		for _, ref := range g.refs {
			set := sets[ref]
			for _, member := range g.sorted(set) {
				for _, dep := range g.nodes[member].Direct {
					if !set[dep] {
						set[dep] = true
						changed = true
					}
				}
			}
		}
	}

	for _, ref := range g.refs {
		n := g.nodes[ref]
		n.Transitive = g.sorted(sets[ref])
		n.Circular = sets[ref][ref]
	}
}

func (g *Graph) linkDependents() {
	for _, ref := range g.refs {
		for _, dep := range g.nodes[ref].Direct {
			n := g.nodes[dep]
			n.Dependents = append(n.Dependents, ref)
		}
	}
}

func (g *Graph) computeDepths() {
	depths := make(map[string]int, len(g.refs))
	var depth func(ref string) int
	depth = func(ref string) int {
		if d, ok := depths[ref]; ok {
			return d
		}
		n := g.nodes[ref]
		d := 0
		if len(n.Direct) > 0 {
			deepest := 0
			for _, dep := range n.Direct {
				// Skip edges back into the schema's own cycle; the remaining edges form a DAG.
				if dep == ref || g.reaches(dep, ref) {
					continue
				}
				if dd := depth(dep); dd > deepest {
					deepest = dd
				}
			}
			d = deepest + 1
		}
		depths[ref] = d
		return d
	}

	for _, ref := range g.refs {
		g.nodes[ref].Depth = depth(ref)
	}
}

func (g *Graph) reaches(from, to string) bool {
	for _, ref := range g.nodes[from].Transitive {
		if ref == to {
			return true
		}
	}
	return false
}

// sorted returns the members of a set ordered by discovery index.
func (g *Graph) sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for ref := range set {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return g.index[out[i]] < g.index[out[j]] })
	return out
}

// Node returns the graph node of a reference.
func (g *Graph) Node(ref string) (*Node, bool) {
	if normalized, err := openapi.NormalizeRef(ref); err == nil {
		ref = normalized
	}
	n, ok := g.nodes[ref]
	return n, ok
}

// Refs returns every reference of the graph in discovery order.
func (g *Graph) Refs() []string {
	out := make([]string, len(g.refs))
	copy(out, g.refs)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.refs)
}

// IsCircular reports whether the reference can reach itself.
func (g *Graph) IsCircular(ref string) bool {
	n, ok := g.Node(ref)
	return ok && n.Circular
}

// CircularRefs returns the circular references in discovery order.
func (g *Graph) CircularRefs() []string {
	var out []string
	for _, ref := range g.refs {
		if g.nodes[ref].Circular {
			out = append(out, ref)
		}
	}
	return out
}

// CollectRefs returns the references found in a schema, without following them.
// Properties, items, composition members and additionalProperties schemas are walked;
// "not" is not, since it never contributes to the generated type.
func CollectRefs(s *types.Schema) ([]string, error) {
	var refs []string
	seen := make(map[string]bool)

	var walk func(s *types.Schema) error
	walk = func(s *types.Schema) error {
		if s == nil {
			return nil
		}
		if s.Ref != "" {
			ref, err := openapi.NormalizeRef(s.Ref)
			if err != nil {
				return err
			}
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
			return nil
		}

		for _, p := range s.Properties {
			if err := walk(p.Schema); err != nil {
				return err
			}
		}
		for _, item := range s.Items.All() {
			if err := walk(item); err != nil {
				return err
			}
		}
		for _, list := range [][]*types.Schema{s.AllOf, s.OneOf, s.AnyOf} {
			for _, member := range list {
				if err := walk(member); err != nil {
					return err
				}
			}
		}
		if s.AdditionalProperties != nil {
			return walk(s.AdditionalProperties.Schema)
		}
		return nil
	}

	if err := walk(s); err != nil {
		return nil, err
	}
	return refs, nil
}
