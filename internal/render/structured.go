// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// formatStructured renders a class-like declaration. Instance fields become
// body lines; of the static fields only the version constant is rendered
// unless Options.RenderStaticFields is set.
func (f *Formatter) formatStructured(d *types.Descriptor, decl *Declaration) error {
	header, err := f.header(d, "class")
	if err != nil {
		return err
	}

	if d.Supertype != nil && !rootSupertypes[d.Supertype.Name] {
		if err := f.visit(*d.Supertype); err != nil {
			return err
		}
		header += " extends " + d.Supertype.String()
	}

	clause, err := f.contractClause("implements", d.Contracts)
	if err != nil {
		return err
	}
	decl.Header = header + clause
	decl.Decorations = Decorations{Data: true}

	for _, fd := range d.Fields() {
		if fd.Static {
			line, ok, err := f.staticLine(fd)
			if err != nil {
				return err
			}
			if ok {
				decl.Body = append(decl.Body, line)
			}
			continue
		}

		line, err := f.fieldLine(fd)
		if err != nil {
			return err
		}
		decl.Body = append(decl.Body, line)
		decl.Fields = append(decl.Fields, FieldDecl{
			Type:  fd.Type.String(),
			Name:  fd.Name,
			Final: hasModifier(fd.Modifiers, "final"),
		})
	}
	return nil
}

// staticLine renders a static field. It reports false for static fields that
// are left out of the declaration.
func (f *Formatter) staticLine(fd types.Field) (string, bool, error) {
	if fd.Name == f.opts.VersionConstant {
		if fd.Value == nil {
			return "", false, errors.Wrapf(types.ErrFieldAccess, "constant %s has no value", fd.Name)
		}
		return fmt.Sprintf("private static final long %s = %vL;", fd.Name, fd.Value), true, nil
	}

	if !f.opts.RenderStaticFields {
		return "", false, nil
	}

	if err := f.visit(fd.Type); err != nil {
		return "", false, err
	}
	mods := fd.Modifiers
	if !hasModifier(mods, "static") {
		mods = append(append([]string(nil), mods...), "static")
	}
	line := joinWords(mods, fd.Type.String(), fd.Name)
	if fd.Value != nil {
		line += " = " + FormatLiteral(fd.Value)
	}
	return line + ";", true, nil
}
