// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/internal/provider/value"
	"github.com/petar-djukic/stubgen/pkg/types"
)

// Provider serves descriptors compiled from one or more catalogs.
type Provider struct {
	descriptors map[string]*types.Descriptor
	constants   map[string][]ConstantSpec
}

// New compiles catalogs into a Provider. A type declared in more than one
// catalog is an error.
func New(catalogs ...*Catalog) (*Provider, error) {
	p := &Provider{
		descriptors: make(map[string]*types.Descriptor),
		constants:   make(map[string][]ConstantSpec),
	}
	for _, c := range catalogs {
		for _, ts := range c.Types {
			if _, dup := p.descriptors[ts.Name]; dup {
				return nil, errors.Newf("type %s declared more than once", ts.Name)
			}
			d, err := compile(ts)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", ts.Name)
			}
			p.descriptors[ts.Name] = d
			if len(ts.Constants) > 0 {
				p.constants[ts.Name] = ts.Constants
			}
		}
	}
	return p, nil
}

// Len returns the number of types in the catalog.
func (p *Provider) Len() int {
	return len(p.descriptors)
}

// Lookup returns the descriptor of name.
func (p *Provider) Lookup(name string) (*types.Descriptor, error) {
	d, ok := p.descriptors[name]
	if !ok {
		return nil, errors.Wrap(types.ErrTypeNotFound, name)
	}
	return d, nil
}

// Constants returns the constants of an enumerated type in catalog order.
func (p *Provider) Constants(d *types.Descriptor) ([]types.EnumConstant, error) {
	specs := p.constants[d.QualifiedName]
	out := make([]types.EnumConstant, len(specs))
	for i, c := range specs {
		out[i] = types.EnumConstant{Name: c.Name, Ordinal: i}
	}
	return out, nil
}

// FieldValue returns the value of instance field f on constant c, coerced to
// the field's declared type.
func (p *Provider) FieldValue(d *types.Descriptor, c types.EnumConstant, f types.Field) (any, error) {
	specs := p.constants[d.QualifiedName]
	if c.Ordinal < 0 || c.Ordinal >= len(specs) || specs[c.Ordinal].Name != c.Name {
		return nil, errors.Wrapf(types.ErrFieldAccess, "no constant %s on %s", c.Name, d.QualifiedName)
	}
	idx := -1
	for i, fd := range d.InstanceFields() {
		if fd.Name == f.Name {
			idx = i
			break
		}
	}
	values := specs[c.Ordinal].Values
	if idx < 0 || idx >= len(values) {
		return nil, errors.Wrapf(types.ErrFieldAccess, "no value for %s.%s", c.Name, f.Name)
	}
	v, err := value.Coerce(values[idx], f.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", c.Name, f.Name)
	}
	return v, nil
}

func compile(ts TypeSpec) (*types.Descriptor, error) {
	if ts.Name == "" {
		return nil, errors.New("missing name")
	}
	category, ok := types.ParseCategory(ts.Kind)
	if !ok {
		return nil, errors.Newf("unknown kind %q", ts.Kind)
	}

	d := &types.Descriptor{
		QualifiedName: ts.Name,
		Namespace:     ts.Namespace,
		Category:      category,
		Modifiers:     ts.Modifiers,
	}
	if d.Namespace == "" {
		if i := strings.LastIndex(ts.Name, "."); i > 0 {
			d.Namespace = ts.Name[:i]
		}
	}

	vars := make(map[string]bool, len(ts.TypeParams))
	for _, tp := range ts.TypeParams {
		vars[tp.Name] = true
	}
	parse := func(s string) (types.TypeRef, error) { return ParseTypeExpr(s, vars) }
	parseAll := func(ss []string) ([]types.TypeRef, error) {
		var out []types.TypeRef
		for _, s := range ss {
			ref, err := parse(s)
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}
		return out, nil
	}

	for _, tp := range ts.TypeParams {
		bounds, err := parseAll(tp.Bounds)
		if err != nil {
			return nil, err
		}
		d.TypeParams = append(d.TypeParams, types.TypeParam{Name: tp.Name, Bounds: bounds})
	}

	if ts.Extends != "" {
		super, err := parse(ts.Extends)
		if err != nil {
			return nil, err
		}
		if category == types.Contract {
			d.Contracts = append(d.Contracts, super)
		} else {
			d.Supertype = &super
		}
	}
	contracts, err := parseAll(ts.Implements)
	if err != nil {
		return nil, err
	}
	d.Contracts = append(d.Contracts, contracts...)

	for _, fs := range ts.Fields {
		ref, err := parse(fs.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", fs.Name)
		}
		f := types.Field{
			Name:      fs.Name,
			Type:      ref,
			Modifiers: fs.Modifiers,
			Static:    fs.Static || hasModifier(fs.Modifiers, "static"),
		}
		if f.Static {
			if f.Value, err = value.Coerce(fs.Value, ref); err != nil {
				return nil, errors.Wrapf(err, "field %s", fs.Name)
			}
		}
		d.Members = append(d.Members, f)
	}

	for _, ms := range ts.Methods {
		m := types.Method{Name: ms.Name}
		if ms.Returns != "" && ms.Returns != "void" {
			if m.Return, err = parse(ms.Returns); err != nil {
				return nil, errors.Wrapf(err, "method %s", ms.Name)
			}
		}
		if m.Params, err = parseAll(ms.Params); err != nil {
			return nil, errors.Wrapf(err, "method %s", ms.Name)
		}
		if m.Exceptions, err = parseAll(ms.Throws); err != nil {
			return nil, errors.Wrapf(err, "method %s", ms.Name)
		}
		d.Members = append(d.Members, m)
	}

	if category != types.Enumerated && len(ts.Constants) > 0 {
		return nil, errors.Newf("constants declared on %s type", category)
	}
	return d, nil
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}
