// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "strings"

// RefKind identifies the shape of a type reference.
type RefKind int

const (
	Named         RefKind = iota // Direct reference to a type by qualified name
	Parameterized                // Raw type plus generic arguments
	Variable                     // Generic type variable such as T
	Array                        // Array of Elem
	Wildcard                     // ?, ? extends Bound, ? super Bound
	Tuple                        // Several result types returned together
)

// String returns the human-readable name of the reference kind.
func (k RefKind) String() string {
	switch k {
	case Named:
		return "named"
	case Parameterized:
		return "parameterized"
	case Variable:
		return "variable"
	case Array:
		return "array"
	case Wildcard:
		return "wildcard"
	case Tuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// TypeRef is a recursive reference to a type as it appears in a member
// signature or a supertype list.
//
// Name holds the qualified name for Named and Parameterized references (the
// raw type for the latter) and the variable name for Variable. Args holds the
// generic arguments of a Parameterized reference or the elements of a Tuple.
// Elem is the element of an Array and the bound of a Wildcard.
type TypeRef struct {
	Kind  RefKind
	Name  string
	Args  []TypeRef
	Elem  *TypeRef
	Super bool // Wildcard bound is a lower bound (? super Elem)
}

// NamedRef returns a direct reference to the type with the given qualified name.
func NamedRef(name string) TypeRef {
	return TypeRef{Kind: Named, Name: name}
}

// GenericRef returns a parameterized reference of raw applied to args.
func GenericRef(raw string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: Parameterized, Name: raw, Args: args}
}

// VarRef returns a reference to the type variable name.
func VarRef(name string) TypeRef {
	return TypeRef{Kind: Variable, Name: name}
}

// ArrayRef returns an array reference whose element is elem.
func ArrayRef(elem TypeRef) TypeRef {
	return TypeRef{Kind: Array, Elem: &elem}
}

// TupleRef returns a reference to several types returned together.
func TupleRef(elems ...TypeRef) TypeRef {
	return TypeRef{Kind: Tuple, Args: elems}
}

// WildcardRef returns an unbounded wildcard when bound is nil, otherwise an
// upper-bounded (or lower-bounded when super is true) wildcard.
func WildcardRef(bound *TypeRef, super bool) TypeRef {
	return TypeRef{Kind: Wildcard, Elem: bound, Super: super}
}

// IsZero reports whether the reference is unset.
func (r TypeRef) IsZero() bool {
	return r.Kind == Named && r.Name == "" && r.Elem == nil && len(r.Args) == 0
}

// String renders the reference as a source-level type name, using qualified
// names for every named type.
func (r TypeRef) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r TypeRef) write(b *strings.Builder) {
	switch r.Kind {
	case Parameterized:
		b.WriteString(r.Name)
		b.WriteByte('<')
		writeList(b, r.Args)
		b.WriteByte('>')
	case Array:
		if r.Elem != nil {
			r.Elem.write(b)
		}
		b.WriteString("[]")
	case Wildcard:
		b.WriteByte('?')
		if r.Elem != nil {
			if r.Super {
				b.WriteString(" super ")
			} else {
				b.WriteString(" extends ")
			}
			r.Elem.write(b)
		}
	case Tuple:
		b.WriteByte('(')
		writeList(b, r.Args)
		b.WriteByte(')')
	default:
		b.WriteString(r.Name)
	}
}

func writeList(b *strings.Builder, refs []TypeRef) {
	for i, a := range refs {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
}
