// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import "strings"

func unionType(parts []string) string {
	return strings.Join(parts, " | ")
}

func intersectionType(parts []string) string {
	grouped := make([]string, 0, len(parts))
	for _, p := range parts {
		if hasTopLevel(p, '|') {
			p = "(" + p + ")"
		}
		grouped = append(grouped, p)
	}
	return strings.Join(grouped, " & ")
}

func withNull(typ string) string {
	if typ == "null" || strings.HasSuffix(typ, " | null") {
		return typ
	}
	return typ + " | null"
}

// hasTopLevel reports whether op occurs outside any brackets or string literals.
func hasTopLevel(typ string, op byte) bool {
	depth := 0
	inString := false
	for i := 0; i < len(typ); i++ {
		ch := typ[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '(', '<', '{', '[':
			depth++
		case ')', '>', '}', ']':
			depth--
		case op:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
