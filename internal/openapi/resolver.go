// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/zodgen/internal/util"
	"github.com/api2spec/zodgen/pkg/types"
)

// Resolver resolves local references of a single document.
// Leaves are decoded on first use and cached, so the same reference always
// yields the same *types.Schema. A Resolver is not safe for concurrent use.
type Resolver struct {
	doc *Document

	schemas   map[string]*types.Schema
	refToName map[string]string
	nameToRef map[string]string
}

// NewResolver creates a resolver over the given document.
func NewResolver(doc *Document) *Resolver {
	return &Resolver{
		doc:       doc,
		schemas:   make(map[string]*types.Schema),
		refToName: make(map[string]string),
		nameToRef: make(map[string]string),
	}
}

// Document returns the document the resolver reads from.
func (r *Resolver) Document() *Document {
	return r.doc
}

// NormalizeRef turns common malformed spellings into a "#/..." pointer.
// "#components/schemas/Pet", "components/schemas/Pet" and "/components/schemas/Pet"
// all become "#/components/schemas/Pet". References into other documents are rejected.
func NormalizeRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &RefError{Op: "normalize", Ref: ref, Err: ErrInvalidReference}
	}

	switch {
	case strings.HasPrefix(ref, "#/"):
	case strings.HasPrefix(ref, "#"):
		ref = "#/" + ref[1:]
	case strings.Contains(ref, "#"):
		return "", &RefError{Op: "normalize", Ref: ref, Err: fmt.Errorf("%w: external references are not supported", ErrInvalidReference)}
	case strings.HasPrefix(ref, "/"):
		ref = "#" + ref
	default:
		ref = "#/" + ref
	}
	return ref, nil
}

// Resolve returns the schema a reference points at together with its canonical name.
func (r *Resolver) Resolve(ref string) (*types.Schema, string, error) {
	normalized, err := NormalizeRef(ref)
	if err != nil {
		return nil, "", err
	}
	if s, ok := r.schemas[normalized]; ok {
		return s, r.refToName[normalized], nil
	}

	node, leaf, err := r.locate(normalized)
	if err != nil {
		return nil, "", err
	}

	var s types.Schema
	if err := node.Decode(&s); err != nil {
		return nil, "", &RefError{Op: "resolve", Ref: normalized, Err: fmt.Errorf("%w: %v", ErrInvalidReference, err)}
	}

	name := r.assignName(normalized, leaf)
	r.schemas[normalized] = &s
	return &s, name, nil
}

// ResolveName returns the schema and reference registered under a canonical name.
// Only names produced by an earlier Resolve are known.
func (r *Resolver) ResolveName(name string) (*types.Schema, string, error) {
	ref, ok := r.nameToRef[name]
	if !ok || ref == "" {
		return nil, "", &RefError{Op: "resolve name", Ref: name, Err: ErrSchemaNotFound}
	}
	return r.schemas[ref], ref, nil
}

// Name returns the canonical name of an already resolved reference.
func (r *Resolver) Name(ref string) (string, bool) {
	normalized, err := NormalizeRef(ref)
	if err != nil {
		return "", false
	}
	name, ok := r.refToName[normalized]
	return name, ok
}

// Reserve claims a canonical name for a synthetic declaration that has no reference.
// The returned name is unique among resolved and reserved names.
func (r *Resolver) Reserve(name string) string {
	base := util.CanonicalName(name)
	candidate := base
	for i := 2; ; i++ {
		if _, taken := r.nameToRef[candidate]; !taken {
			break
		}
		candidate = base + strconv.Itoa(i)
	}
	r.nameToRef[candidate] = ""
	return candidate
}

// Lookup decodes the value at a local reference into out. It is used for
// components that are not schemas (parameters, request bodies, responses).
func (r *Resolver) Lookup(ref string, out any) error {
	normalized, err := NormalizeRef(ref)
	if err != nil {
		return err
	}
	node, _, err := r.locate(normalized)
	if err != nil {
		return err
	}
	if err := node.Decode(out); err != nil {
		return &RefError{Op: "lookup", Ref: normalized, Err: fmt.Errorf("%w: %v", ErrInvalidReference, err)}
	}
	return nil
}

// locate walks the container path of a normalized reference and returns the leaf node.
func (r *Resolver) locate(ref string) (*yaml.Node, string, error) {
	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	leaf := unescapePointer(segments[len(segments)-1])
	if leaf == "" {
		return nil, "", &RefError{Op: "resolve", Ref: ref, Err: ErrInvalidReference}
	}

	container := r.doc.Root
	for _, seg := range segments[:len(segments)-1] {
		container = child(container, unescapePointer(seg))
		if container == nil {
			return nil, "", &RefError{Op: "resolve", Ref: ref, Err: ErrSchemaNotFound}
		}
	}
	if container.Kind != yaml.MappingNode && container.Kind != yaml.SequenceNode {
		return nil, "", &RefError{Op: "resolve", Ref: ref, Err: ErrSchemaNotFound}
	}

	node := child(container, leaf)
	if node == nil {
		return nil, "", &RefError{Op: "resolve", Ref: ref, Err: ErrSchemaNotFound}
	}
	return node, leaf, nil
}

func (r *Resolver) assignName(ref, leaf string) string {
	if name, ok := r.refToName[ref]; ok {
		return name
	}
	base := util.CanonicalName(leaf)
	name := base
	for i := 2; ; i++ {
		if _, taken := r.nameToRef[name]; !taken {
			break
		}
		name = base + strconv.Itoa(i)
	}
	r.refToName[ref] = name
	r.nameToRef[name] = ref
	return name
}

// child returns the member of a mapping by key or of a sequence by index.
func child(node *yaml.Node, key string) *yaml.Node {
	node = deref(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		return findKey(node, key)
	case yaml.SequenceNode:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(node.Content) {
			return nil
		}
		return deref(node.Content[i])
	}
	return nil
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
