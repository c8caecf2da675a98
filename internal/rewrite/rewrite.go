// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package rewrite applies configured schema rewrite rules before conversion.
//
// A rule pairs an expr-lang predicate with a set of fields to overlay:
//
//	rewrites:
//	  - when: 'format == "binary"'
//	    set: {type: string, format: ""}
//	  - when: 'type == "integer" && format == "int64"'
//	    set: {type: string}
//	    unset: [minimum, maximum]
package rewrite

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/zodgen/pkg/types"
)

// Rule is one configured rewrite.
type Rule struct {
	// When is an expr-lang predicate over the schema fields
	When string `mapstructure:"when" yaml:"when" json:"when"`

	// Set overlays schema fields, spelled as in the document
	Set map[string]any `mapstructure:"set" yaml:"set,omitempty" json:"set,omitempty"`

	// Unset removes schema fields
	Unset []string `mapstructure:"unset" yaml:"unset,omitempty" json:"unset,omitempty"`
}

type compiledRule struct {
	Rule
	program *exprvm.Program
}

// Rewriter holds compiled rules. Rules run in order; each one sees the output of the previous.
type Rewriter struct {
	rules []compiledRule
}

// Compile validates and compiles rules.
func Compile(rules []Rule) (*Rewriter, error) {
	r := &Rewriter{}
	for i, rule := range rules {
		if rule.When == "" {
			return nil, fmt.Errorf("rewrite rule %d: when must not be empty", i)
		}
		if len(rule.Set) == 0 && len(rule.Unset) == 0 {
			return nil, fmt.Errorf("rewrite rule %d: set or unset is required", i)
		}
		program, err := exprlang.Compile(rule.When,
			exprlang.Env(environment(&types.Schema{})),
			exprlang.AsBool(),
		)
		if err != nil {
			return nil, fmt.Errorf("rewrite rule %d: failed to compile %q: %w", i, rule.When, err)
		}
		r.rules = append(r.rules, compiledRule{Rule: rule, program: program})
	}
	return r, nil
}

// Len returns the number of rules.
func (r *Rewriter) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rules)
}

// Apply runs every matching rule against s. It returns nil when no rule matched,
// otherwise a new schema; s itself is never modified.
func (r *Rewriter) Apply(s *types.Schema) (*types.Schema, error) {
	if r == nil || s == nil {
		return nil, nil
	}

	var out *types.Schema
	current := s
	for i, rule := range r.rules {
		matched, err := exprlang.Run(rule.program, environment(current))
		if err != nil {
			return nil, fmt.Errorf("rewrite rule %d: failed to evaluate %q: %w", i, rule.When, err)
		}
		if ok, _ := matched.(bool); !ok {
			continue
		}
		next, err := overlay(current, rule.Set, rule.Unset)
		if err != nil {
			return nil, fmt.Errorf("rewrite rule %d: %w", i, err)
		}
		current, out = next, next
	}
	return out, nil
}

// Hook adapts the rewriter to the converter's rewrite option. A rule that
// fails to evaluate leaves the schema unchanged and is reported to onError,
// which may be nil.
func (r *Rewriter) Hook(onError func(error)) func(*types.Schema) *types.Schema {
	if r.Len() == 0 {
		return nil
	}
	return func(s *types.Schema) *types.Schema {
		out, err := r.Apply(s)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return nil
		}
		return out
	}
}

// environment exposes the schema to rule predicates. The zero schema's
// environment types the predicates at compile time.
func environment(s *types.Schema) map[string]any {
	kinds := []string(s.Type)
	if kinds == nil {
		kinds = []string{}
	}
	return map[string]any{
		"type":        s.Kind(),
		"types":       kinds,
		"format":      s.Format,
		"pattern":     s.Pattern,
		"title":       s.Title,
		"description": s.Description,
		"ref":         s.Ref,
		"nullable":    s.IsNullable(),
		"deprecated":  s.Deprecated,
		"readOnly":    s.ReadOnly,
		"writeOnly":   s.WriteOnly,
		"enum":        s.Enum,
		"required":    s.Required,
		"properties":  s.Properties.Names(),
		"hasItems":    s.Items != nil,
	}
}

// overlay re-encodes the schema as YAML, replaces or removes top-level keys and decodes it again.
func overlay(s *types.Schema, set map[string]any, unset []string) (*types.Schema, error) {
	var node yaml.Node
	if err := node.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema did not encode to a mapping")
	}

	for _, key := range unset {
		removeKey(&node, canonicalKey(key))
	}
	for _, key := range sortedKeys(set) {
		var value yaml.Node
		if err := value.Encode(canonicalValue(set[key])); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		setKey(&node, canonicalKey(key), &value)
	}

	var out types.Schema
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode rewritten schema: %w", err)
	}
	return &out, nil
}

func setKey(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func removeKey(node *yaml.Node, key string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content = append(node.Content[:i], node.Content[i+2:]...)
			return
		}
	}
}
