// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package javasrc provides type metadata parsed from Java source files with
// tree-sitter. Class, interface, enum and record declarations are indexed
// by qualified name; member types are indexed under their enclosing type,
// as in com.acme.Api.Status.
package javasrc

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/internal/provider/value"
	"github.com/petar-djukic/stubgen/pkg/types"
)

type entry struct {
	decl *decl
	unit *unit
	// scopes holds the qualified names of the type and its enclosing
	// types, innermost first.
	scopes []string
}

// Provider serves descriptors for scanned Java declarations.
type Provider struct {
	index    map[string]entry
	packages map[string]bool
	errors   []ScanError

	mu          sync.Mutex
	descriptors map[string]*types.Descriptor
}

// Load scans the given files and directories and indexes their
// declarations. Files that fail to parse cleanly are reported by Errors;
// whatever declarations they yielded are still indexed.
func Load(ctx context.Context, roots ...string) (*Provider, error) {
	res, err := Scan(ctx, roots, 0)
	if err != nil {
		return nil, errors.Wrap(err, "scanning java sources")
	}
	p := &Provider{
		index:       make(map[string]entry),
		packages:    make(map[string]bool),
		errors:      res.Errors,
		descriptors: make(map[string]*types.Descriptor),
	}
	for _, u := range res.Units {
		p.packages[u.pkg] = true
		for _, d := range u.decls {
			if err := p.add(u.pkg, d, u, nil); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// add indexes d under prefix and then its member types under d.
func (p *Provider) add(prefix string, d *decl, u *unit, outer []string) error {
	name := d.name
	if prefix != "" {
		name = prefix + "." + d.name
	}
	if prev, dup := p.index[name]; dup {
		return errors.Newf("type %s declared in both %s and %s", name, prev.unit.path, u.path)
	}
	scopes := append([]string{name}, outer...)
	p.index[name] = entry{decl: d, unit: u, scopes: scopes}
	for _, n := range d.nested {
		if err := p.add(name, n, u, scopes); err != nil {
			return err
		}
	}
	return nil
}

// Errors returns the per-file parse errors encountered while scanning.
func (p *Provider) Errors() []ScanError {
	return p.errors
}

// Names returns the qualified names of every indexed type, sorted.
func (p *Provider) Names() []string {
	out := make([]string, 0, len(p.index))
	for n := range p.index {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the descriptor of the type with the given qualified name.
func (p *Provider) Lookup(name string) (*types.Descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.descriptors[name]; ok {
		return d, nil
	}
	e, ok := p.index[name]
	if !ok {
		return nil, errors.Wrap(types.ErrTypeNotFound, name)
	}
	d := p.describe(name, e)
	p.descriptors[name] = d
	return d, nil
}

// Constants returns the constants of an enum in declaration order.
func (p *Provider) Constants(d *types.Descriptor) ([]types.EnumConstant, error) {
	e, ok := p.index[d.QualifiedName]
	if !ok {
		return nil, errors.Wrap(types.ErrTypeNotFound, d.QualifiedName)
	}
	out := make([]types.EnumConstant, len(e.decl.constants))
	for i, c := range e.decl.constants {
		out[i] = types.EnumConstant{Name: c.name, Ordinal: i}
	}
	return out, nil
}

// FieldValue returns the constructor argument of constant c aligned with
// instance field f. Arguments map positionally onto instance fields.
func (p *Provider) FieldValue(d *types.Descriptor, c types.EnumConstant, f types.Field) (any, error) {
	e, ok := p.index[d.QualifiedName]
	if !ok || c.Ordinal < 0 || c.Ordinal >= len(e.decl.constants) {
		return nil, errors.Wrapf(types.ErrFieldAccess, "no constant %s on %s", c.Name, d.QualifiedName)
	}
	idx := -1
	for i, fd := range d.InstanceFields() {
		if fd.Name == f.Name {
			idx = i
			break
		}
	}
	args := e.decl.constants[c.Ordinal].args
	if idx < 0 || idx >= len(args) {
		return nil, errors.Wrapf(types.ErrFieldAccess, "no argument for %s.%s", c.Name, f.Name)
	}
	v, err := value.Coerce(args[idx], f.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", c.Name, f.Name)
	}
	return v, nil
}

func (p *Provider) known(name string) bool {
	_, ok := p.index[name]
	return ok
}

func (p *Provider) knownPackage(name string) bool {
	return p.packages[name]
}

func (p *Provider) describe(name string, e entry) *types.Descriptor {
	src := e.decl
	r := resolver{known: p.known, knownPackage: p.knownPackage, unit: e.unit, scopes: e.scopes}
	names := make([]string, len(src.typeParams))
	for i, tp := range src.typeParams {
		names[i] = tp.name
	}
	r = r.withVars(names...)

	d := &types.Descriptor{
		QualifiedName: name,
		Namespace:     e.unit.pkg,
		Category:      src.category,
		Modifiers:     src.modifiers,
	}
	for _, tp := range src.typeParams {
		d.TypeParams = append(d.TypeParams, types.TypeParam{Name: tp.name, Bounds: r.refs(tp.bounds)})
	}

	if src.category == types.Contract {
		d.Contracts = r.refs(src.extends)
	} else if len(src.extends) > 0 {
		super := r.ref(src.extends[0])
		d.Supertype = &super
	}
	d.Contracts = append(d.Contracts, r.refs(src.implements)...)

	for _, f := range src.fields {
		typ := r.ref(f.typ)
		field := types.Field{
			Name:      f.name,
			Type:      typ,
			Modifiers: f.modifiers,
			Static:    f.static,
		}
		if f.static && f.init != nil {
			if v, err := value.Coerce(f.init, typ); err == nil {
				field.Value = v
			} else {
				field.Value = f.init
			}
		}
		d.Members = append(d.Members, field)
	}

	for _, m := range src.methods {
		mr := r.withVars(m.typeParams...)
		method := types.Method{
			Name:       m.name,
			Params:     mr.refs(m.params),
			Exceptions: mr.refs(m.throws),
		}
		if m.ret != nil {
			method.Return = mr.ref(*m.ret)
		}
		d.Members = append(d.Members, method)
	}
	return d
}
