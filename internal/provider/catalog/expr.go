// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// ParseTypeExpr parses a type expression such as
// "java.util.Map<java.lang.String, com.acme.Item[]>", "? extends T" or
// "(int, error)". Identifiers listed in vars become type variables.
func ParseTypeExpr(s string, vars map[string]bool) (types.TypeRef, error) {
	p := &exprParser{src: s, vars: vars}
	ref, err := p.parseType()
	if err != nil {
		return types.TypeRef{}, errors.Wrapf(err, "parsing type %q", s)
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return types.TypeRef{}, errors.Newf("parsing type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}
	return ref, nil
}

type exprParser struct {
	src  string
	pos  int
	vars map[string]bool
}

func (p *exprParser) parseType() (types.TypeRef, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return types.TypeRef{}, errors.New("unexpected end of expression")
	}

	var ref types.TypeRef
	switch p.src[p.pos] {
	case '?':
		p.pos++
		p.skipSpace()
		save := p.pos
		switch p.ident() {
		case "extends", "super":
			super := strings.HasPrefix(p.src[save:], "super")
			bound, err := p.parseType()
			if err != nil {
				return types.TypeRef{}, err
			}
			return types.WildcardRef(&bound, super), nil
		default:
			p.pos = save
			return types.WildcardRef(nil, false), nil
		}
	case '(':
		p.pos++
		elems, err := p.parseList(')')
		if err != nil {
			return types.TypeRef{}, err
		}
		ref = types.TupleRef(elems...)
	default:
		name := p.ident()
		if name == "" {
			return types.TypeRef{}, errors.Newf("expected type name at %d", p.pos)
		}
		ref = types.NamedRef(name)
		if p.vars[name] {
			ref = types.VarRef(name)
		}
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '<' {
			p.pos++
			args, err := p.parseList('>')
			if err != nil {
				return types.TypeRef{}, err
			}
			ref = types.GenericRef(name, args...)
		}
	}

	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "[") {
			return ref, nil
		}
		p.pos++
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "]") {
			return types.TypeRef{}, errors.Newf("expected ] at %d", p.pos)
		}
		p.pos++
		ref = types.ArrayRef(ref)
	}
}

// parseList parses comma-separated types up to and including close.
func (p *exprParser) parseList(close byte) ([]types.TypeRef, error) {
	var out []types.TypeRef
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == close {
		p.pos++
		return out, nil
	}
	for {
		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, errors.Newf("missing %q", close)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case close:
			p.pos++
			return out, nil
		default:
			return nil, errors.Newf("unexpected %q at %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *exprParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '.' || r == '/') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
