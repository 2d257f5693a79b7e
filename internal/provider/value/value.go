// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package value converts raw constant data read from catalogs or source
// files into Go values whose dynamic type matches the declared field type,
// so the literal formatter can pick the right rendering.
package value

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// Char is a single character value. It renders as a quoted character literal.
type Char rune

// String returns the character as a quoted literal.
func (c Char) String() string {
	switch c {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	}
	return "'" + string(rune(c)) + "'"
}

// Expr is source text that is not a plain literal, such as a constant
// reference or a method call. It renders verbatim.
type Expr string

// String returns the expression text.
func (e Expr) String() string { return string(e) }

// kinds maps declared type names onto the Go kind the value is coerced to.
var kinds = map[string]string{
	"long": "int64", "java.lang.Long": "int64", "int64": "int64",
	"int": "int32", "java.lang.Integer": "int32", "int32": "int32",
	"short": "int16", "java.lang.Short": "int16", "int16": "int16",
	"byte": "int8", "java.lang.Byte": "int8", "int8": "int8",
	"double": "float64", "java.lang.Double": "float64", "float64": "float64",
	"float": "float32", "java.lang.Float": "float32", "float32": "float32",
	"boolean": "bool", "java.lang.Boolean": "bool", "bool": "bool",
	"char": "char", "java.lang.Character": "char", "rune": "char",
	"java.lang.String": "string", "String": "string", "string": "string",
}

// Coerce converts raw to the Go type matching t. Nil and Expr values pass
// through unchanged, as does any value whose declared type has no literal
// form.
func Coerce(raw any, t types.TypeRef) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if e, ok := raw.(Expr); ok {
		return e, nil
	}
	kind, ok := kinds[t.Name]
	if !ok || t.Kind != types.Named {
		return raw, nil
	}

	switch kind {
	case "string":
		switch x := raw.(type) {
		case string:
			return x, nil
		case Char:
			return string(rune(x)), nil
		}
		return nil, errors.Newf("cannot use %T as %s", raw, t.Name)
	case "bool":
		switch x := raw.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %q as %s", x, t.Name)
			}
			return b, nil
		}
		return nil, errors.Newf("cannot use %T as %s", raw, t.Name)
	case "char":
		switch x := raw.(type) {
		case Char:
			return x, nil
		case rune:
			return Char(x), nil
		case string:
			r, size := utf8.DecodeRuneInString(x)
			if size == 0 || size != len(x) {
				return nil, errors.Newf("%q is not a single character", x)
			}
			return Char(r), nil
		}
		return nil, errors.Newf("cannot use %T as %s", raw, t.Name)
	case "float64", "float32":
		f, err := toFloat(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "coercing to %s", t.Name)
		}
		if kind == "float32" {
			return float32(f), nil
		}
		return f, nil
	default:
		n, err := toInt(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "coercing to %s", t.Name)
		}
		return narrow(n, kind)
	}
}

func toInt(raw any) (int64, error) {
	switch x := raw.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, errors.Newf("%d overflows int64", x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, errors.Newf("%v is not an integer", x)
		}
		return int64(x), nil
	case string:
		s := strings.TrimRight(strings.ReplaceAll(x, "_", ""), "lL")
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing %q", x)
		}
		return n, nil
	}
	return 0, errors.Newf("unsupported integer value %T", raw)
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case string:
		s := strings.TrimRight(strings.ReplaceAll(x, "_", ""), "fFdD")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing %q", x)
		}
		return f, nil
	}
	n, err := toInt(raw)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

func narrow(n int64, kind string) (any, error) {
	switch kind {
	case "int8":
		if n < math.MinInt8 || n > math.MaxInt8 {
			return nil, errors.Newf("%d overflows byte", n)
		}
		return int8(n), nil
	case "int16":
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, errors.Newf("%d overflows short", n)
		}
		return int16(n), nil
	case "int32":
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, errors.Newf("%d overflows int", n)
		}
		return int32(n), nil
	}
	return n, nil
}
