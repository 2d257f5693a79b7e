// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gotypes provides type metadata for Go packages. Interfaces become
// contract-like types, structs become structured types, and named basic
// types with package-level constants become enumerated types.
package gotypes

import (
	"context"
	"go/types"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	model "github.com/petar-djukic/stubgen/pkg/types"
)

const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
	packages.NeedTypesInfo | packages.NeedDeps | packages.NeedImports

var errorType = types.Universe.Lookup("error").Type()

// Provider serves descriptors for the named types of loaded packages and
// their dependencies.
type Provider struct {
	pkgs  map[string]*types.Package // every loaded package by import path
	roots []*types.Package          // packages matched by the load patterns

	mu          sync.Mutex
	descriptors map[string]*model.Descriptor
	constants   map[string][]model.EnumConstant
}

// Load loads the packages matching patterns, resolved relative to dir.
func Load(ctx context.Context, dir string, patterns ...string) (*Provider, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading packages %s", strings.Join(patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", strings.Join(patterns, " "))
	}

	var loadErrs []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})
	if len(loadErrs) > 0 {
		return nil, errors.Newf("package errors: %s", strings.Join(loadErrs, "; "))
	}

	p := &Provider{
		pkgs:        make(map[string]*types.Package),
		descriptors: make(map[string]*model.Descriptor),
		constants:   make(map[string][]model.EnumConstant),
	}
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if pkg.Types != nil {
			p.pkgs[pkg.PkgPath] = pkg.Types
		}
	})
	for _, pkg := range pkgs {
		if pkg.Types != nil {
			p.roots = append(p.roots, pkg.Types)
		}
	}
	return p, nil
}

// Exported returns the qualified names of the exported named types declared
// in the root packages, sorted.
func (p *Provider) Exported() []string {
	var out []string
	for _, pkg := range p.roots {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			if tn, ok := scope.Lookup(name).(*types.TypeName); ok && tn.Exported() && !tn.IsAlias() {
				out = append(out, pkg.Path()+"."+name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lookup returns the descriptor of the named type "<import path>.<Name>".
func (p *Provider) Lookup(name string) (*model.Descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.descriptors[name]; ok {
		return d, nil
	}
	named, err := p.find(name)
	if err != nil {
		return nil, err
	}
	d := p.describe(named)
	p.descriptors[name] = d
	return d, nil
}

// Constants returns the package-level constants of an enumerated type in
// declaration order.
func (p *Provider) Constants(d *model.Descriptor) ([]model.EnumConstant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.constants[d.QualifiedName], nil
}

// FieldValue always fails: Go enumerations carry no instance fields.
func (p *Provider) FieldValue(d *model.Descriptor, c model.EnumConstant, f model.Field) (any, error) {
	return nil, errors.Wrapf(model.ErrFieldAccess, "%s.%s has no instance data", d.QualifiedName, c.Name)
}

func (p *Provider) find(name string) (*types.Named, error) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return nil, errors.Wrap(model.ErrTypeNotFound, name)
	}
	pkg, ok := p.pkgs[name[:i]]
	if !ok {
		return nil, errors.Wrapf(model.ErrTypeNotFound, "%s: package not loaded", name)
	}
	tn, ok := pkg.Scope().Lookup(name[i+1:]).(*types.TypeName)
	if !ok {
		return nil, errors.Wrap(model.ErrTypeNotFound, name)
	}
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return nil, errors.Wrapf(model.ErrTypeNotFound, "%s is not a named type", name)
	}
	return named, nil
}

func (p *Provider) describe(named *types.Named) *model.Descriptor {
	obj := named.Obj()
	d := &model.Descriptor{
		QualifiedName: obj.Pkg().Path() + "." + obj.Name(),
		Namespace:     obj.Pkg().Path(),
		Category:      model.Structured,
	}
	for i := 0; i < named.TypeParams().Len(); i++ {
		tp := named.TypeParams().At(i)
		param := model.TypeParam{Name: tp.Obj().Name()}
		if bound, ok := constraintRef(tp.Constraint()); ok {
			param.Bounds = []model.TypeRef{bound}
		}
		d.TypeParams = append(d.TypeParams, param)
	}

	switch u := named.Underlying().(type) {
	case *types.Interface:
		d.Category = model.Contract
		for i := 0; i < u.NumEmbeddeds(); i++ {
			if _, ok := types.Unalias(u.EmbeddedType(i)).(*types.Named); ok {
				d.Contracts = append(d.Contracts, typeRef(u.EmbeddedType(i)))
			}
		}
		for i := 0; i < u.NumExplicitMethods(); i++ {
			m := u.ExplicitMethod(i)
			d.Members = append(d.Members, method(m.Name(), m.Type().(*types.Signature)))
		}
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if f.Embedded() && d.Supertype == nil {
				if _, ok := deref(f.Type()).Underlying().(*types.Struct); ok {
					super := typeRef(f.Type())
					d.Supertype = &super
					continue
				}
			}
			if !f.Exported() {
				continue
			}
			d.Members = append(d.Members, model.Field{
				Name:      f.Name(),
				Type:      typeRef(f.Type()),
				Modifiers: []string{"private"},
			})
		}
		d.Contracts = p.implemented(named)
	case *types.Basic:
		if consts := p.enumConstants(named); len(consts) > 0 {
			d.Category = model.Enumerated
			p.constants[d.QualifiedName] = consts
			break
		}
		d.Members = append(d.Members, valueField(u))
	default:
		d.Members = append(d.Members, valueField(u))
	}
	return d
}

// implemented returns the non-empty interfaces of the root packages that
// *named implements, sorted by qualified name.
func (p *Provider) implemented(named *types.Named) []model.TypeRef {
	ptr := types.NewPointer(named)
	var names []string
	for _, pkg := range p.roots {
		scope := pkg.Scope()
		for _, n := range scope.Names() {
			tn, ok := scope.Lookup(n).(*types.TypeName)
			if !ok || tn == named.Obj() || tn.IsAlias() {
				continue
			}
			candidate, ok := tn.Type().(*types.Named)
			if !ok || candidate.TypeParams().Len() > 0 {
				continue
			}
			iface, ok := candidate.Underlying().(*types.Interface)
			if !ok || iface.NumMethods() == 0 {
				continue
			}
			if types.Implements(ptr, iface) {
				names = append(names, pkg.Path()+"."+n)
			}
		}
	}
	sort.Strings(names)
	refs := make([]model.TypeRef, len(names))
	for i, n := range names {
		refs[i] = model.NamedRef(n)
	}
	return refs
}

// enumConstants collects the package-level constants of type named in
// source order.
func (p *Provider) enumConstants(named *types.Named) []model.EnumConstant {
	scope := named.Obj().Pkg().Scope()
	var consts []*types.Const
	for _, n := range scope.Names() {
		if c, ok := scope.Lookup(n).(*types.Const); ok && types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
	out := make([]model.EnumConstant, len(consts))
	for i, c := range consts {
		out[i] = model.EnumConstant{Name: c.Name(), Ordinal: i}
	}
	return out
}

// method converts a signature. A trailing error result becomes the
// exception clause; several remaining results become a tuple.
func method(name string, sig *types.Signature) model.Method {
	m := model.Method{Name: name}
	for i := 0; i < sig.Params().Len(); i++ {
		m.Params = append(m.Params, typeRef(sig.Params().At(i).Type()))
	}

	results := sig.Results()
	n := results.Len()
	if n > 0 && types.Identical(results.At(n-1).Type(), errorType) {
		m.Exceptions = []model.TypeRef{model.NamedRef("error")}
		n--
	}
	switch n {
	case 0:
	case 1:
		m.Return = typeRef(results.At(0).Type())
	default:
		elems := make([]model.TypeRef, n)
		for i := 0; i < n; i++ {
			elems[i] = typeRef(results.At(i).Type())
		}
		m.Return = model.TupleRef(elems...)
	}
	return m
}

func valueField(t types.Type) model.Field {
	return model.Field{Name: "value", Type: typeRef(t), Modifiers: []string{"private"}}
}

func deref(t types.Type) types.Type {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

// constraintRef returns the bound of a type parameter when its constraint
// is a named interface.
func constraintRef(t types.Type) (model.TypeRef, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return model.TypeRef{}, false
	}
	return typeRef(named), true
}

// typeRef converts a Go type to a reference. Pointers are dereferenced,
// slices and arrays become arrays, and maps become map<K, V>.
func typeRef(t types.Type) model.TypeRef {
	switch t := types.Unalias(t).(type) {
	case *types.Pointer:
		return typeRef(t.Elem())
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return model.NamedRef(obj.Name())
		}
		name := obj.Pkg().Path() + "." + obj.Name()
		if args := t.TypeArgs(); args.Len() > 0 {
			refs := make([]model.TypeRef, args.Len())
			for i := 0; i < args.Len(); i++ {
				refs[i] = typeRef(args.At(i))
			}
			return model.GenericRef(name, refs...)
		}
		return model.NamedRef(name)
	case *types.TypeParam:
		return model.VarRef(t.Obj().Name())
	case *types.Basic:
		return model.NamedRef(t.Name())
	case *types.Slice:
		return model.ArrayRef(typeRef(t.Elem()))
	case *types.Array:
		return model.ArrayRef(typeRef(t.Elem()))
	case *types.Map:
		return model.GenericRef("map", typeRef(t.Key()), typeRef(t.Elem()))
	case *types.Chan:
		return model.GenericRef("chan", typeRef(t.Elem()))
	case *types.Signature:
		return model.NamedRef("func")
	case *types.Interface:
		if t.Empty() {
			return model.NamedRef("any")
		}
		return model.NamedRef("interface")
	case *types.Struct:
		return model.NamedRef("struct")
	}
	return model.NamedRef(t.String())
}
