// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package javasrc

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/stubgen/internal/provider/value"
	"github.com/petar-djukic/stubgen/pkg/types"
)

// literal evaluates a constant expression node. Literals become typed Go
// values; casts to a primitive convert the operand; anything else is kept
// verbatim as a value.Expr.
func (x *extractor) literal(n *sitter.Node) any {
	raw := x.text(n)
	switch n.Type() {
	case "null_literal":
		return nil
	case "true":
		return true
	case "false":
		return false
	case "string_literal":
		if s, err := strconv.Unquote(raw); err == nil {
			return s
		}
	case "character_literal":
		if r, _, tail, err := strconv.UnquoteChar(strings.Trim(raw, "'"), '\''); err == nil && tail == "" {
			return value.Char(r)
		}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		if v, ok := integer(raw); ok {
			return v
		}
	case "decimal_floating_point_literal":
		if v, ok := float(raw); ok {
			return v
		}
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return x.literal(n.NamedChild(0))
		}
	case "unary_expression":
		operand := n.ChildByFieldName("operand")
		if operand != nil && strings.HasPrefix(strings.TrimSpace(raw), "-") {
			switch v := x.literal(operand).(type) {
			case int32:
				return -v
			case int64:
				return -v
			case float32:
				return -v
			case float64:
				return -v
			}
		}
	case "cast_expression":
		target := stripSpace(x.text(n.ChildByFieldName("type")))
		operand := x.literal(n.ChildByFieldName("value"))
		if _, isExpr := operand.(value.Expr); !isExpr {
			if v, err := value.Coerce(operand, types.NamedRef(target)); err == nil {
				return v
			}
		}
	}
	return value.Expr(strings.TrimSpace(raw))
}

// integer parses a Java integer literal. An L suffix yields int64, anything
// else int32.
func integer(raw string) (any, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	long := strings.HasSuffix(s, "L") || strings.HasSuffix(s, "l")
	s = strings.TrimRight(s, "lL")
	if len(s) > 1 && s[0] == '0' && s[1] != 'x' && s[1] != 'X' && s[1] != 'b' && s[1] != 'B' {
		s = "0o" + s[1:]
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return nil, false
		}
		n = int64(u)
	}
	if long {
		return n, true
	}
	return int32(n), true
}

// float parses a Java floating point literal. An f suffix yields float32,
// anything else float64.
func float(raw string) (any, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	single := strings.HasSuffix(s, "f") || strings.HasSuffix(s, "F")
	s = strings.TrimRight(s, "fFdD")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	if single {
		return float32(f), true
	}
	return f, true
}
