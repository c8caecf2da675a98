// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package emit writes conversion output as a TypeScript module or a JSON manifest.
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goccy/go-json"

	"github.com/api2spec/zodgen/internal/generate"
)

//go:embed templates/module.ts.tpl
var templatesFS embed.FS

// Supported output formats.
const (
	FormatTypeScript = "ts"
	FormatJSON       = "json"
)

// Writer renders generate.Output documents.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int

	// Endpoints includes the endpoint table in TypeScript output
	Endpoints bool

	// Check refuses to write and reports files that would change
	Check bool

	tpl *template.Template
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent:    2,
		Endpoints: true,
	}
}

type moduleView struct {
	Source       string
	Title        string
	Version      string
	Declarations []declarationView
	Endpoints    []generate.Endpoint
}

type declarationView struct {
	generate.Declaration
	Doc       string
	Annotated bool
}

// WriteModule writes out as a TypeScript module.
func (w *Writer) WriteModule(out *generate.Output, dst io.Writer) error {
	tpl, err := w.template()
	if err != nil {
		return err
	}

	view := moduleView{
		Title:   out.Title,
		Version: out.Version,
	}
	if out.Source != "" {
		view.Source = filepath.Base(out.Source)
	}
	for _, d := range out.Declarations() {
		view.Declarations = append(view.Declarations, declarationView{
			Declaration: d,
			Doc:         docComment(d.Ref),
			// The annotation breaks the inference cycle of a lazy validator.
			Annotated: d.Circular && d.NewType,
		})
	}
	if w.Endpoints {
		view.Endpoints = out.Endpoints
	}

	if err := tpl.Execute(dst, view); err != nil {
		return fmt.Errorf("failed to render module: %w", err)
	}
	return nil
}

// WriteManifest writes out as indented JSON.
func (w *Writer) WriteManifest(out *generate.Output, dst io.Writer) error {
	manifest := *out
	if manifest.Source != "" {
		manifest.Source = filepath.Base(manifest.Source)
	}
	data, err := json.MarshalIndent(&manifest, "", strings.Repeat(" ", w.Indent))
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// Render returns the output in the given format.
func (w *Writer) Render(out *generate.Output, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatTypeScript, "typescript", "":
		if err := w.WriteModule(out, &buf); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := w.WriteManifest(out, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the output to path and reports whether the file changed.
// The format is inferred from the file extension when empty. Unchanged files
// are left alone; other files are replaced through a temporary file.
func (w *Writer) WriteFile(out *generate.Output, path string, format string) (bool, error) {
	if format == "" {
		format = FormatFor(path)
	}

	data, err := w.Render(out, format)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("failed to read existing file: %w", err)
	}
	if w.Check {
		return false, fmt.Errorf("%s is out of date", path)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("failed to replace file: %w", err)
	}
	return true, nil
}

// FormatFor infers the output format from a file name.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTypeScript
}

func (w *Writer) template() (*template.Template, error) {
	if w.tpl != nil {
		return w.tpl, nil
	}

	text, err := templatesFS.ReadFile("templates/module.ts.tpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read module template: %w", err)
	}

	tpl, err := template.New("module").Funcs(template.FuncMap{"quote": quote}).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse module template: %w", err)
	}
	w.tpl = tpl
	return tpl, nil
}

// quote renders s as a TypeScript string literal.
func quote(s string) string {
	data, err := json.MarshalNoEscape(s)
	if err != nil {
		return `""`
	}
	return string(data)
}

// docComment points a declaration back at its schema. Comment terminators in
// the reference are broken up.
func docComment(ref string) string {
	if ref == "" {
		return ""
	}
	return strings.ReplaceAll(ref, "*/", "*\\/")
}
