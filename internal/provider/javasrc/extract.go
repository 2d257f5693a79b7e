// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package javasrc

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// unit is the extracted content of one compilation unit. Type expressions
// keep the names as written; they are resolved against the whole index
// when a descriptor is built.
type unit struct {
	path      string
	pkg       string
	imports   map[string]string // simple name -> qualified name
	wildcards []string          // packages imported with .*
	decls     []*decl
}

type decl struct {
	name       string
	category   types.Category
	modifiers  []string
	typeParams []typeParam
	extends    []typeExpr // superclass, or extended interfaces
	implements []typeExpr
	fields     []fieldDecl
	methods    []methodDecl
	constants  []constantDecl
	nested     []*decl // member types
}

type typeParam struct {
	name   string
	bounds []typeExpr
}

type fieldDecl struct {
	name      string
	typ       typeExpr
	modifiers []string
	static    bool
	init      any // literal initializer of a static field
}

type methodDecl struct {
	name       string
	typeParams []string
	ret        *typeExpr // nil for void
	params     []typeExpr
	throws     []typeExpr
}

type constantDecl struct {
	name string
	args []any
}

// typeExpr is a type as written in source.
type typeExpr struct {
	name     string
	args     []typeExpr
	dims     int
	wildcard bool
	super    bool
	bound    *typeExpr
}

var javaLang = java.GetLanguage()

// parseUnit parses one Java file. A file with syntax errors still returns
// the declarations tree-sitter recovered, together with an error.
func parseUnit(ctx context.Context, path string, content []byte) (*unit, error) {
	root, err := sitter.ParseCtx(ctx, content, javaLang)
	if err != nil {
		return nil, errors.Wrap(err, "parsing")
	}
	if root == nil {
		return nil, errors.New("parsing: empty tree")
	}

	x := &extractor{src: content}
	u := &unit{path: path, imports: make(map[string]string)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			u.pkg = x.qualifiedIdent(n)
		case "import_declaration":
			x.importDecl(n, u)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			u.decls = append(u.decls, x.typeDecl(n))
		}
	}

	if root.HasError() {
		return u, errors.New("syntax errors in source")
	}
	return u, nil
}

type extractor struct {
	src []byte
}

func (x *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(x.src)
}

// namedChildren returns the named children of n with the given node type.
func namedChildren(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

func firstNamed(n *sitter.Node, typ string) *sitter.Node {
	if cs := namedChildren(n, typ); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

func (x *extractor) qualifiedIdent(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "scoped_identifier" || c.Type() == "identifier" {
			return stripSpace(x.text(c))
		}
	}
	return ""
}

func (x *extractor) importDecl(n *sitter.Node, u *unit) {
	static, wildcard := false, false
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "static":
			static = true
		case "asterisk", "*":
			wildcard = true
		}
	}
	if static {
		return
	}
	name := x.qualifiedIdent(n)
	if name == "" {
		return
	}
	if wildcard {
		u.wildcards = append(u.wildcards, name)
		return
	}
	u.imports[name[strings.LastIndex(name, ".")+1:]] = name
}

// modifiers returns the keyword modifiers of a declaration; annotations are
// dropped.
func (x *extractor) modifiers(n *sitter.Node) []string {
	m := firstNamed(n, "modifiers")
	if m == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(m.ChildCount()); i++ {
		if c := m.Child(i); !c.IsNamed() {
			out = append(out, x.text(c))
		}
	}
	return out
}

func (x *extractor) typeDecl(n *sitter.Node) *decl {
	d := &decl{
		name:      x.text(n.ChildByFieldName("name")),
		modifiers: x.modifiers(n),
	}
	switch n.Type() {
	case "interface_declaration":
		d.category = types.Contract
	case "enum_declaration":
		d.category = types.Enumerated
	default:
		d.category = types.Structured
	}

	if tp := firstNamed(n, "type_parameters"); tp != nil {
		d.typeParams = x.typeParams(tp)
	}
	if sc := firstNamed(n, "superclass"); sc != nil {
		d.extends = x.typeList(sc)
	}
	if ei := firstNamed(n, "extends_interfaces"); ei != nil {
		d.extends = x.typeList(ei)
	}
	if si := firstNamed(n, "super_interfaces"); si != nil {
		d.implements = x.typeList(si)
	}

	if n.Type() == "record_declaration" {
		if ps := n.ChildByFieldName("parameters"); ps != nil {
			for _, p := range namedChildren(ps, "formal_parameter") {
				d.fields = append(d.fields, fieldDecl{
					name:      x.text(p.ChildByFieldName("name")),
					typ:       x.typeExpr(p.ChildByFieldName("type")),
					modifiers: []string{"private", "final"},
				})
			}
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return d
	}
	x.members(body, d)
	if d.category == types.Enumerated {
		for _, c := range namedChildren(body, "enum_constant") {
			d.constants = append(d.constants, x.enumConstant(c))
		}
		if decls := firstNamed(body, "enum_body_declarations"); decls != nil {
			x.members(decls, d)
		}
	}
	return d
}

func (x *extractor) members(body *sitter.Node, d *decl) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "field_declaration", "constant_declaration":
			x.fieldDecls(c, d)
		case "method_declaration":
			mods := x.modifiers(c)
			if hasModifier(mods, "private") || (d.category == types.Contract && hasModifier(mods, "static")) {
				continue
			}
			d.methods = append(d.methods, x.method(c))
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			d.nested = append(d.nested, x.typeDecl(c))
		}
	}
}

func (x *extractor) fieldDecls(n *sitter.Node, d *decl) {
	mods := x.modifiers(n)
	static := hasModifier(mods, "static") || d.category == types.Contract
	base := x.typeExpr(n.ChildByFieldName("type"))
	for _, v := range namedChildren(n, "variable_declarator") {
		typ := base
		if dims := v.ChildByFieldName("dimensions"); dims != nil {
			typ.dims += strings.Count(x.text(dims), "[")
		}
		f := fieldDecl{
			name:      x.text(v.ChildByFieldName("name")),
			typ:       typ,
			modifiers: mods,
			static:    static,
		}
		if static {
			if init := v.ChildByFieldName("value"); init != nil {
				f.init = x.literal(init)
			}
		}
		d.fields = append(d.fields, f)
	}
}

func (x *extractor) method(n *sitter.Node) methodDecl {
	m := methodDecl{name: x.text(n.ChildByFieldName("name"))}
	if tp := firstNamed(n, "type_parameters"); tp != nil {
		for _, p := range x.typeParams(tp) {
			m.typeParams = append(m.typeParams, p.name)
		}
	}
	if t := n.ChildByFieldName("type"); t != nil && t.Type() != "void_type" {
		ret := x.typeExpr(t)
		m.ret = &ret
	}
	if ps := n.ChildByFieldName("parameters"); ps != nil {
		for i := 0; i < int(ps.NamedChildCount()); i++ {
			p := ps.NamedChild(i)
			switch p.Type() {
			case "formal_parameter":
				m.params = append(m.params, x.typeExpr(p.ChildByFieldName("type")))
			case "spread_parameter":
				for j := 0; j < int(p.NamedChildCount()); j++ {
					if c := p.NamedChild(j); c.Type() != "modifiers" && c.Type() != "variable_declarator" {
						t := x.typeExpr(c)
						t.dims++
						m.params = append(m.params, t)
						break
					}
				}
			}
		}
	}
	if th := firstNamed(n, "throws"); th != nil {
		m.throws = x.typeList(th)
	}
	return m
}

func (x *extractor) enumConstant(n *sitter.Node) constantDecl {
	c := constantDecl{name: x.text(n.ChildByFieldName("name"))}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			c.args = append(c.args, x.literal(args.NamedChild(i)))
		}
	}
	return c
}

func (x *extractor) typeParams(n *sitter.Node) []typeParam {
	var out []typeParam
	for _, p := range namedChildren(n, "type_parameter") {
		tp := typeParam{}
		for i := 0; i < int(p.NamedChildCount()); i++ {
			c := p.NamedChild(i)
			switch c.Type() {
			case "identifier", "type_identifier":
				tp.name = x.text(c)
			case "type_bound":
				tp.bounds = x.typeList(c)
			}
		}
		out = append(out, tp)
	}
	return out
}

// typeList returns every type below n, looking through a nested type_list.
func (x *extractor) typeList(n *sitter.Node) []typeExpr {
	var out []typeExpr
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "type_list":
			out = append(out, x.typeList(c)...)
		case "marker_annotation", "annotation":
		default:
			out = append(out, x.typeExpr(c))
		}
	}
	return out
}

func (x *extractor) typeExpr(n *sitter.Node) typeExpr {
	if n == nil {
		return typeExpr{}
	}
	switch n.Type() {
	case "generic_type":
		t := typeExpr{}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "type_arguments" {
				for j := 0; j < int(c.NamedChildCount()); j++ {
					t.args = append(t.args, x.typeExpr(c.NamedChild(j)))
				}
			} else if t.name == "" {
				t.name = stripSpace(x.text(c))
			}
		}
		return t
	case "array_type":
		t := x.typeExpr(n.ChildByFieldName("element"))
		t.dims += strings.Count(x.text(n.ChildByFieldName("dimensions")), "[")
		return t
	case "wildcard":
		t := typeExpr{name: "?", wildcard: true}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "super":
				t.super = true
			case "marker_annotation", "annotation":
			default:
				b := x.typeExpr(c)
				t.bound = &b
			}
		}
		return t
	case "annotated_type":
		return x.typeExpr(n.NamedChild(int(n.NamedChildCount()) - 1))
	}
	return typeExpr{name: stripSpace(x.text(n))}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}
