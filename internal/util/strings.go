// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides identifier helpers shared by the generator packages.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToLowerCamelCase converts PascalCase to camelCase.
func ToLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// CanonicalName turns a declared schema name into a TypeScript-safe identifier.
// Every character outside [A-Za-z0-9_$] becomes "_" and a leading digit gets a "_" prefix.
func CanonicalName(name string) string {
	if name == "" {
		return "_"
	}
	var sb strings.Builder
	for _, r := range name {
		if IsIdentifierRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// IsIdentifierRune reports whether r may appear in a generated identifier.
func IsIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// IsIdentifier reports whether s can be used unquoted as an object key.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !IsIdentifierRune(r) {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// PascalCase joins the words of s, title-casing each one.
// Word boundaries are any characters that are not letters or digits.
func PascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	titleCaser := cases.Title(language.English, cases.NoLower)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(w))
	}
	return sb.String()
}

// OperationAlias derives a camelCase alias for an operation. The operationId wins
// when present; otherwise the alias is built from the method and the path.
func OperationAlias(operationID, method, path string) string {
	if operationID != "" {
		return CanonicalName(ToLowerCamelCase(PascalCase(operationID)))
	}
	return CanonicalName(strings.ToLower(method) + PascalCase(path))
}
