// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the type metadata model shared by the stubgen
// packages: descriptors, members, references, and the provider contract
// through which descriptors are obtained.
package types

import "strings"

// Category identifies which declaration shape a type renders as.
type Category int

const (
	Structured Category = iota // Class-like type with instance fields
	Contract                   // Interface-like type declaring only methods
	Enumerated                 // Type with a fixed, named set of instances
)

// String returns the human-readable name of the category.
func (c Category) String() string {
	switch c {
	case Structured:
		return "structured"
	case Contract:
		return "contract"
	case Enumerated:
		return "enumerated"
	default:
		return "unknown"
	}
}

// ParseCategory maps the textual category names used in catalogs and
// configuration onto a Category. It accepts the source-language keywords as
// aliases.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structured", "class", "struct", "record", "":
		return Structured, true
	case "contract", "interface":
		return Contract, true
	case "enumerated", "enum":
		return Enumerated, true
	default:
		return Structured, false
	}
}

// TypeParam is a declared generic parameter with optional upper bounds.
type TypeParam struct {
	Name   string
	Bounds []TypeRef
}

// Descriptor is a read-only view of one type's shape.
type Descriptor struct {
	QualifiedName string
	Namespace     string
	Category      Category
	Modifiers     []string // Declaration modifiers; empty renders as public
	TypeParams    []TypeParam
	Supertype     *TypeRef // Structured types only; nil when absent
	Contracts     []TypeRef
	Members       []Member
}

// SimpleName returns the qualified name without its namespace.
func (d *Descriptor) SimpleName() string {
	if d.Namespace != "" && strings.HasPrefix(d.QualifiedName, d.Namespace+".") {
		return d.QualifiedName[len(d.Namespace)+1:]
	}
	if i := strings.LastIndexAny(d.QualifiedName, "./"); i >= 0 {
		return d.QualifiedName[i+1:]
	}
	return d.QualifiedName
}

// Methods returns the method members in declaration order.
func (d *Descriptor) Methods() []Method {
	var out []Method
	for _, m := range d.Members {
		if mm, ok := m.(Method); ok {
			out = append(out, mm)
		}
	}
	return out
}

// Fields returns the field members in declaration order.
func (d *Descriptor) Fields() []Field {
	var out []Field
	for _, m := range d.Members {
		if f, ok := m.(Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// InstanceFields returns the non-static fields in declaration order.
func (d *Descriptor) InstanceFields() []Field {
	var out []Field
	for _, f := range d.Fields() {
		if !f.Static {
			out = append(out, f)
		}
	}
	return out
}

// Member is a method signature or a field descriptor.
type Member interface {
	MemberName() string
	member()
}

// Method is a method signature. Parameter names are not part of the
// signature; renderers synthesize them positionally.
type Method struct {
	Name       string
	Return     TypeRef
	Params     []TypeRef
	Exceptions []TypeRef
}

// MemberName returns the method name.
func (m Method) MemberName() string { return m.Name }

func (Method) member() {}

// Field is a field descriptor. Value carries the constant value of a static
// constant and is nil otherwise.
type Field struct {
	Name      string
	Type      TypeRef
	Modifiers []string
	Static    bool
	Value     any
}

// MemberName returns the field name.
func (f Field) MemberName() string { return f.Name }

func (Field) member() {}

// EnumConstant is one instance of an enumerated type.
type EnumConstant struct {
	Name    string
	Ordinal int
}
