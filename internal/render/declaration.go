// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

const indent = "    "

// Decorations are capabilities a rendered declaration requires but does not
// spell out itself. How they are satisfied depends on the DecorationStyle.
type Decorations struct {
	Accessors          bool // A read accessor per instance field
	AllArgsConstructor bool // A constructor taking every instance field in order
	Data               bool // Accessors, mutators, equality and hashing
}

// DecorationStyle selects how Decorations appear in the text.
type DecorationStyle int

const (
	// StyleAnnotations marks the declaration with Lombok annotations.
	StyleAnnotations DecorationStyle = iota
	// StyleMethods appends the required method signatures to the body.
	StyleMethods
)

// String returns the configuration name of the style.
func (s DecorationStyle) String() string {
	switch s {
	case StyleAnnotations:
		return "annotations"
	case StyleMethods:
		return "methods"
	default:
		return "unknown"
	}
}

// ParseDecorationStyle maps a configuration value onto a DecorationStyle.
func ParseDecorationStyle(s string) (DecorationStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "annotations", "lombok":
		return StyleAnnotations, nil
	case "methods":
		return StyleMethods, nil
	default:
		return StyleAnnotations, errors.Newf("unknown decoration style %q (supported: annotations, methods)", s)
	}
}

// FieldDecl is an instance field as seen by decoration expansion.
type FieldDecl struct {
	Type  string
	Name  string
	Final bool
}

// Declaration is the rendered shape of one type before it becomes text.
type Declaration struct {
	Namespace   string
	SimpleName  string
	Header      string   // Without the opening brace
	Body        []string // Unindented body lines
	Fields      []FieldDecl
	Decorations Decorations
}

// Text lays the declaration out as source text.
func (d *Declaration) Text(style DecorationStyle) string {
	var b strings.Builder

	if d.Namespace != "" {
		b.WriteString("package ")
		b.WriteString(d.Namespace)
		b.WriteString(";\n\n")
	}

	if style == StyleAnnotations {
		for _, a := range d.annotations() {
			b.WriteString(a)
			b.WriteByte('\n')
		}
	}

	b.WriteString(d.Header)
	b.WriteString(" {\n")

	body := d.Body
	if style == StyleMethods {
		body = append(append([]string(nil), body...), d.expandedMethods()...)
	}
	for _, line := range body {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("}\n")
	return b.String()
}

func (d *Declaration) annotations() []string {
	var out []string
	if d.Decorations.Data {
		out = append(out, "@lombok.Data")
	}
	if d.Decorations.Accessors {
		out = append(out, "@lombok.Getter")
	}
	if d.Decorations.AllArgsConstructor {
		out = append(out, "@lombok.AllArgsConstructor")
	}
	return out
}

func (d *Declaration) expandedMethods() []string {
	var out []string
	if d.Decorations.AllArgsConstructor {
		params := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			params[i] = f.Type + " " + f.Name
		}
		out = append(out, d.SimpleName+"("+strings.Join(params, ", ")+");")
	}
	if d.Decorations.Accessors || d.Decorations.Data {
		for _, f := range d.Fields {
			out = append(out, "public "+f.Type+" "+accessorName(f)+"();")
		}
	}
	if d.Decorations.Data {
		for _, f := range d.Fields {
			if f.Final {
				continue
			}
			out = append(out, "public void set"+capitalize(f.Name)+"("+f.Type+" "+f.Name+");")
		}
	}
	return out
}

func accessorName(f FieldDecl) string {
	if f.Type == "boolean" {
		return "is" + capitalize(f.Name)
	}
	return "get" + capitalize(f.Name)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
