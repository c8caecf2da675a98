// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludePatterns match every YAML and JSON file.
var DefaultIncludePatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// DefaultExcludePatterns skip dependency and VCS directories.
var DefaultExcludePatterns = []string{"**/node_modules/**", "**/.git/**"}

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory for scanning (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "specs/**/*.yaml")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "**/fixtures/**")
	ExcludePatterns []string

	// SkipSniff includes matching files without checking for an openapi or swagger key
	SkipSniff bool
}

// Scanner discovers spec documents.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}
	if config.ExcludePatterns == nil {
		config.ExcludePatterns = DefaultExcludePatterns
	}
	return &Scanner{config: config}
}

// Scan discovers the documents under the base path, sorted by path.
func (s *Scanner) Scan() ([]Document, error) {
	base, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	info, err := os.Stat(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", base)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return s.scanFile(base, info)
	}

	fsys := os.DirFS(base)
	seen := make(map[string]bool)
	var docs []Document
	for _, pattern := range s.config.IncludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
		err := doublestar.GlobWalk(fsys, pattern, func(rel string, d fs.DirEntry) error {
			if seen[rel] || d.IsDir() || s.excluded(rel) {
				return nil
			}
			seen[rel] = true

			doc, ok, err := s.document(filepath.Join(base, filepath.FromSlash(rel)), d)
			if err != nil || !ok {
				// Unreadable files are skipped like non-matching ones.
				return nil
			}
			docs = append(docs, doc)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// ScanPaths scans several files or directories, deduplicating documents.
// Explicit files are taken as given, without pattern matching.
func (s *Scanner) ScanPaths(paths []string) ([]Document, error) {
	var all []Document
	seen := make(map[string]bool)

	for _, path := range paths {
		sub := *s
		sub.config.BasePath = path
		docs, err := sub.Scan()
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if !seen[doc.Path] {
				seen[doc.Path] = true
				all = append(all, doc)
			}
		}
	}
	return all, nil
}

// Paths returns the document paths of docs.
func Paths(docs []Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.Path
	}
	return out
}

// Match reports whether a path relative to the base path would be scanned,
// ignoring document sniffing. Watchers use it to filter events.
func (s *Scanner) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return DetectFormat(rel) != "" && !s.excluded(rel) && matchAny(s.config.IncludePatterns, rel)
}

func (s *Scanner) scanFile(path string, info fs.FileInfo) ([]Document, error) {
	format := DetectFormat(path)
	if format == "" {
		return nil, fmt.Errorf("not a YAML or JSON file: %s", path)
	}
	return []Document{{Path: path, Format: format, ModTime: info.ModTime()}}, nil
}

func (s *Scanner) document(path string, d fs.DirEntry) (Document, bool, error) {
	format := DetectFormat(path)
	if format == "" {
		return Document{}, false, nil
	}

	info, err := d.Info()
	if err != nil {
		return Document{}, false, err
	}

	if !s.config.SkipSniff {
		content, err := os.ReadFile(path)
		if err != nil {
			return Document{}, false, err
		}
		if !IsOpenAPIDocument(content) {
			return Document{}, false, nil
		}
	}

	return Document{Path: path, Format: format, ModTime: info.ModTime()}, true, nil
}

func (s *Scanner) excluded(rel string) bool {
	return matchAny(s.config.ExcludePatterns, rel)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
