// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package check compares generated TypeScript modules with freshly generated output.
package check

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Declaration kinds.
const (
	KindType  = "type"
	KindConst = "const"
)

// Parser parses TypeScript modules using tree-sitter.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new TypeScript parser.
func NewParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return &Parser{parser: parser}
}

// Module is a parsed TypeScript module.
type Module struct {
	// Path is the file path
	Path string

	// Declarations are the top-level type aliases and constants, in source order
	Declarations []Declaration

	// SyntaxErrors lists the places tree-sitter could not parse
	SyntaxErrors []SyntaxError
}

// Declaration is a top-level `type` or `const` declaration.
type Declaration struct {
	// Kind is KindType or KindConst
	Kind string

	// Name is the declared identifier
	Name string

	// Annotation is the type annotation of a constant, if any
	Annotation string

	// Value is the declared expression, normalized to its tokens
	Value string

	// Exported indicates the declaration is exported
	Exported bool

	// Line is the source line number
	Line int
}

// Key identifies a declaration across modules.
func (d Declaration) Key() string {
	return d.Kind + " " + d.Name
}

// SyntaxError is a region tree-sitter reported as erroneous or missing.
type SyntaxError struct {
	Line   int
	Column int
	Text   string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%d:%d: unexpected %q", e.Line, e.Column, e.Text)
}

// Parse parses TypeScript source code from bytes.
func (p *Parser) Parse(path string, content []byte) (*Module, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TypeScript: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	m := &Module{Path: path}
	if root.HasError() {
		m.SyntaxErrors = syntaxErrors(root, content)
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		exported := false
		if node.Type() == "export_statement" {
			decl := node.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
			node, exported = decl, true
		}
		for _, d := range declarations(node, content) {
			d.Exported = exported
			m.Declarations = append(m.Declarations, d)
		}
	}

	return m, nil
}

// ParseFile parses a TypeScript module from disk.
func (p *Parser) ParseFile(path string) (*Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return p.Parse(path, content)
}

// Close cleans up parser resources.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

func declarations(node *sitter.Node, content []byte) []Declaration {
	switch node.Type() {
	case "type_alias_declaration":
		name := node.ChildByFieldName("name")
		value := node.ChildByFieldName("value")
		if name == nil || value == nil {
			return nil
		}
		return []Declaration{{
			Kind:  KindType,
			Name:  name.Content(content),
			Value: tokens(value, content),
			Line:  int(node.StartPoint().Row) + 1,
		}}

	case "lexical_declaration", "variable_declaration":
		var out []Declaration
		for i := 0; i < int(node.NamedChildCount()); i++ {
			declarator := node.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			name := declarator.ChildByFieldName("name")
			if name == nil {
				continue
			}
			d := Declaration{
				Kind: KindConst,
				Name: name.Content(content),
				Line: int(declarator.StartPoint().Row) + 1,
			}
			if annotation := declarator.ChildByFieldName("type"); annotation != nil {
				d.Annotation = strings.TrimSpace(strings.TrimPrefix(tokens(annotation, content), ":"))
			}
			if value := declarator.ChildByFieldName("value"); value != nil {
				d.Value = tokens(value, content)
			}
			out = append(out, d)
		}
		return out
	}
	return nil
}

// tokens renders node as its leaf tokens separated by single spaces, so
// formatting and comments do not affect comparisons.
func tokens(node *sitter.Node, content []byte) string {
	var parts []string
	walkNodes(node, func(n *sitter.Node) bool {
		if n.Type() == "comment" {
			return false
		}
		if n.ChildCount() == 0 || isStringLike(n) {
			if text := n.Content(content); text != "" {
				parts = append(parts, text)
			}
			return false
		}
		return true
	})
	return strings.Join(parts, " ")
}

// isStringLike reports nodes whose inner whitespace is significant.
func isStringLike(n *sitter.Node) bool {
	switch n.Type() {
	case "string", "template_string", "regex":
		return true
	}
	return false
}

func syntaxErrors(root *sitter.Node, content []byte) []SyntaxError {
	var out []SyntaxError
	walkNodes(root, func(n *sitter.Node) bool {
		if n.Type() != "ERROR" && !n.IsMissing() {
			return n.HasError()
		}
		text := n.Content(content)
		if n.IsMissing() {
			text = n.Type()
		}
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		start := n.StartPoint()
		out = append(out, SyntaxError{
			Line:   int(start.Row) + 1,
			Column: int(start.Column) + 1,
			Text:   text,
		})
		return false
	})
	return out
}

// walkNodes walks all nodes in the tree, calling fn for each node.
// If fn returns false, it stops recursing into that node's children.
func walkNodes(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkNodes(node.Child(i), fn)
	}
}
