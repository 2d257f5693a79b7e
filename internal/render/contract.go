// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strconv"
	"strings"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// formatContract renders an interface-like declaration: one signature line
// per method with positional parameter names.
func (f *Formatter) formatContract(d *types.Descriptor, decl *Declaration) error {
	header, err := f.header(d, "interface", "abstract", "interface")
	if err != nil {
		return err
	}
	clause, err := f.contractClause("extends", d.Contracts)
	if err != nil {
		return err
	}
	decl.Header = header + clause

	for _, m := range d.Methods() {
		line, err := f.methodLine(m)
		if err != nil {
			return err
		}
		decl.Body = append(decl.Body, line)
	}
	return nil
}

func (f *Formatter) methodLine(m types.Method) (string, error) {
	ret := "void"
	if !m.Return.IsZero() {
		if err := f.visit(m.Return); err != nil {
			return "", err
		}
		ret = m.Return.String()
	}

	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String() + " var" + strconv.Itoa(i)
		if err := f.visit(p); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	b.WriteString(ret)
	b.WriteByte(' ')
	b.WriteString(m.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(params, ", "))
	b.WriteByte(')')

	if len(m.Exceptions) > 0 {
		names := make([]string, len(m.Exceptions))
		for i, e := range m.Exceptions {
			names[i] = e.String()
		}
		b.WriteString(" throws ")
		b.WriteString(strings.Join(names, ", "))
		if f.opts.WalkExceptions {
			if err := f.visitAll(m.Exceptions); err != nil {
				return "", err
			}
		}
	}

	b.WriteByte(';')
	return b.String(), nil
}
