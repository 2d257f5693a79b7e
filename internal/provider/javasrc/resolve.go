// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package javasrc

import (
	"strings"

	"github.com/petar-djukic/stubgen/pkg/types"
)

var primitives = map[string]bool{
	"byte": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "boolean": true, "char": true, "void": true,
}

// javaLangTypes are the java.lang types resolved without an import.
var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "Class": true, "Enum": true, "Record": true,
	"Boolean": true, "Byte": true, "Character": true, "Short": true, "Integer": true, "Long": true,
	"Float": true, "Double": true, "Number": true, "Void": true, "Iterable": true, "Comparable": true,
	"Runnable": true, "AutoCloseable": true, "Cloneable": true, "Throwable": true, "Exception": true,
	"RuntimeException": true, "Error": true, "IllegalArgumentException": true,
	"IllegalStateException": true, "UnsupportedOperationException": true, "StringBuilder": true,
}

// resolver turns written type names into qualified names from the
// perspective of one declaration.
type resolver struct {
	known        func(string) bool
	knownPackage func(string) bool
	unit         *unit
	scopes       []string // the declaring type and its enclosing types, innermost first
	vars         map[string]bool
}

func (r resolver) withVars(names ...string) resolver {
	vars := make(map[string]bool, len(r.vars)+len(names))
	for k := range r.vars {
		vars[k] = true
	}
	for _, n := range names {
		vars[n] = true
	}
	r.vars = vars
	return r
}

func (r resolver) ref(e typeExpr) types.TypeRef {
	var ref types.TypeRef
	switch {
	case e.wildcard:
		var bound *types.TypeRef
		if e.bound != nil {
			b := r.ref(*e.bound)
			bound = &b
		}
		ref = types.WildcardRef(bound, e.super)
	case r.vars[e.name]:
		ref = types.VarRef(e.name)
	case len(e.args) > 0:
		args := make([]types.TypeRef, len(e.args))
		for i, a := range e.args {
			args[i] = r.ref(a)
		}
		ref = types.GenericRef(r.qualify(e.name), args...)
	default:
		ref = types.NamedRef(r.qualify(e.name))
	}
	for i := 0; i < e.dims; i++ {
		ref = types.ArrayRef(ref)
	}
	return ref
}

func (r resolver) refs(es []typeExpr) []types.TypeRef {
	if len(es) == 0 {
		return nil
	}
	out := make([]types.TypeRef, len(es))
	for i, e := range es {
		out[i] = r.ref(e)
	}
	return out
}

// qualify resolves a written name. Primitives stay as they are. A dotted
// name whose first segment resolves is a member type reference through it;
// any other dotted name is already qualified. A simple name that resolves
// nowhere falls back to java.lang.
func (r resolver) qualify(name string) string {
	if primitives[name] || name == "" {
		return name
	}
	if i := strings.Index(name, "."); i > 0 {
		if q, ok := r.simple(name[:i], false); ok {
			return q + name[i:]
		}
		return name
	}
	if q, ok := r.simple(name, true); ok {
		return q
	}
	return "java.lang." + name
}

// simple resolves a simple name against the member types of the enclosing
// declarations, single-type imports, the unit's own package, wildcard
// imports and java.lang, in that order. With guess set, a name no indexed
// type matches resolves through a lone wildcard import of a package that
// was not scanned.
func (r resolver) simple(name string, guess bool) (string, bool) {
	for _, s := range r.scopes {
		if r.known(s + "." + name) {
			return s + "." + name, true
		}
	}
	u := r.unit
	if q, ok := u.imports[name]; ok {
		return q, true
	}
	if u.pkg != "" && r.known(u.pkg+"."+name) {
		return u.pkg + "." + name, true
	}
	for _, w := range u.wildcards {
		if r.known(w + "." + name) {
			return w + "." + name, true
		}
	}
	if javaLangTypes[name] {
		return "java.lang." + name, true
	}
	if guess && len(u.wildcards) == 1 && !r.scanned(u.wildcards[0]) {
		return u.wildcards[0] + "." + name, true
	}
	return "", false
}

// scanned reports whether w names a scanned package or an indexed type
// whose members a wildcard import would expose.
func (r resolver) scanned(w string) bool {
	if r.known(w) {
		return true
	}
	return r.knownPackage != nil && r.knownPackage(w)
}
