// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers OpenAPI documents on disk.
package scanner

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is a discovered spec document.
type Document struct {
	// Path is the absolute path to the file
	Path string

	// Format is "yaml" or "json"
	Format string

	// ModTime is the last modification time
	ModTime time.Time
}

var documentExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
}

// DetectFormat returns the document format for a file path, or "" when the
// extension is not a spec document extension.
func DetectFormat(path string) string {
	return documentExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsOpenAPIDocument reports whether content has a top-level `openapi` or
// `swagger` version key. JSON is read as YAML.
func IsOpenAPIDocument(content []byte) bool {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	var head struct {
		OpenAPI string `yaml:"openapi"`
		Swagger string `yaml:"swagger"`
	}
	if err := yaml.Unmarshal(content, &head); err != nil {
		return false
	}
	return head.OpenAPI != "" || head.Swagger != ""
}
