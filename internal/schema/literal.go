// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/api2spec/zodgen/internal/util"
)

// literal serializes a value as a JavaScript literal.
func literal(v any) string {
	if s, ok := numberLiteral(v); ok {
		return s
	}
	data, err := json.MarshalNoEscape(v)
	if err != nil {
		return quote(fmt.Sprint(v))
	}
	return string(data)
}

// quote returns s as a double-quoted string literal.
func quote(s string) string {
	data, err := json.MarshalNoEscape(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(data)
}

func numberLiteral(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float64:
		return formatNumber(n), true
	case json.Number:
		return n.String(), true
	}
	return "", false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// propertyKey renders an object key, quoting it when it is not a valid identifier.
func propertyKey(name string) string {
	if util.IsIdentifier(name) {
		return name
	}
	return quote(name)
}
