// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render reconstructs the declaration of one type from its
// descriptor. Each referenced type is handed back to the caller through a
// visit callback so the whole reachable graph can be expanded.
package render

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// DefaultVersionConstant is the static field rendered as a long constant.
const DefaultVersionConstant = "serialVersionUID"

// rootSupertypes are never rendered in an extends clause.
var rootSupertypes = map[string]bool{
	"":                 true,
	"java.lang.Object": true,
}

// VisitFunc is invoked for every type a declaration references.
type VisitFunc func(ref types.TypeRef) error

// Options tunes what the formatters render and walk.
type Options struct {
	WalkExceptions     bool   // Pass method exception types to the visitor
	RenderStaticFields bool   // Render static fields other than the version constant
	VersionConstant    string // Name of the version constant; DefaultVersionConstant when empty
}

// Formatter renders declarations. It reads enumerated constant data through
// the provider and reports referenced types through visit.
type Formatter struct {
	provider types.Provider
	visit    VisitFunc
	opts     Options
}

// NewFormatter returns a Formatter. A nil visit ignores references.
func NewFormatter(provider types.Provider, visit VisitFunc, opts Options) *Formatter {
	if visit == nil {
		visit = func(types.TypeRef) error { return nil }
	}
	if opts.VersionConstant == "" {
		opts.VersionConstant = DefaultVersionConstant
	}
	return &Formatter{provider: provider, visit: visit, opts: opts}
}

// Format renders d with the variant matching its category.
func (f *Formatter) Format(d *types.Descriptor) (*Declaration, error) {
	decl := &Declaration{
		Namespace:  d.Namespace,
		SimpleName: d.SimpleName(),
	}

	var err error
	switch d.Category {
	case types.Contract:
		err = f.formatContract(d, decl)
	case types.Enumerated:
		err = f.formatEnumerated(d, decl)
	case types.Structured:
		err = f.formatStructured(d, decl)
	default:
		err = errors.Newf("unknown category %d", d.Category)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", d.QualifiedName)
	}
	return decl, nil
}

// visitAll hands every ref to the visitor, stopping at the first error.
func (f *Formatter) visitAll(refs []types.TypeRef) error {
	for _, r := range refs {
		if err := f.visit(r); err != nil {
			return err
		}
	}
	return nil
}

// header builds "<modifiers> <keyword> <Name><params>".
func (f *Formatter) header(d *types.Descriptor, keyword string, drop ...string) (string, error) {
	mods := filterModifiers(d.Modifiers, drop...)
	if len(mods) == 0 {
		mods = []string{"public"}
	}

	var b strings.Builder
	b.WriteString(strings.Join(mods, " "))
	b.WriteByte(' ')
	b.WriteString(keyword)
	b.WriteByte(' ')
	b.WriteString(d.SimpleName())

	if len(d.TypeParams) > 0 {
		params := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			params[i] = tp.Name
			if len(tp.Bounds) == 0 {
				continue
			}
			bounds := make([]string, len(tp.Bounds))
			for j, bound := range tp.Bounds {
				bounds[j] = bound.String()
				if err := f.visit(bound); err != nil {
					return "", err
				}
			}
			params[i] += " extends " + strings.Join(bounds, " & ")
		}
		b.WriteByte('<')
		b.WriteString(strings.Join(params, ", "))
		b.WriteByte('>')
	}

	return b.String(), nil
}

// contractClause renders " <keyword> A, B" and visits every contract.
func (f *Formatter) contractClause(keyword string, contracts []types.TypeRef) (string, error) {
	if len(contracts) == 0 {
		return "", nil
	}
	names := make([]string, len(contracts))
	for i, c := range contracts {
		names[i] = c.String()
	}
	if err := f.visitAll(contracts); err != nil {
		return "", err
	}
	return " " + keyword + " " + strings.Join(names, ", "), nil
}

// fieldLine renders "<modifiers> <type> <name>;" and visits the field type.
func (f *Formatter) fieldLine(fd types.Field) (string, error) {
	if err := f.visit(fd.Type); err != nil {
		return "", err
	}
	return joinWords(filterModifiers(fd.Modifiers, "static"), fd.Type.String(), fd.Name) + ";", nil
}

func filterModifiers(mods []string, drop ...string) []string {
	var out []string
	for _, m := range mods {
		skip := false
		for _, d := range drop {
			if m == d {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, m)
		}
	}
	return out
}

func joinWords(prefix []string, words ...string) string {
	return strings.Join(append(append([]string(nil), prefix...), words...), " ")
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}
