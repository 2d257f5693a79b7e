// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// formatEnumerated renders an enum declaration. Without instance fields each
// constant is listed bare; with instance fields each constant carries the
// literal values of those fields followed by the field declarations.
func (f *Formatter) formatEnumerated(d *types.Descriptor, decl *Declaration) error {
	header, err := f.header(d, "enum", "final", "abstract")
	if err != nil {
		return err
	}
	clause, err := f.contractClause("implements", d.Contracts)
	if err != nil {
		return err
	}
	decl.Header = header + clause
	decl.Decorations = Decorations{Accessors: true, AllArgsConstructor: true}

	constants, err := f.provider.Constants(d)
	if err != nil {
		return errors.Wrap(err, "reading constants")
	}
	if len(constants) == 0 {
		return nil
	}

	fields := d.InstanceFields()
	if len(fields) == 0 {
		for _, c := range constants {
			decl.Body = append(decl.Body, c.Name+",")
		}
		decl.Body = append(decl.Body, ";")
		return nil
	}

	for i, c := range constants {
		values := make([]string, len(fields))
		for j, fd := range fields {
			v, err := f.provider.FieldValue(d, c, fd)
			if err != nil {
				return errors.Wrapf(err, "reading %s.%s", c.Name, fd.Name)
			}
			values[j] = FormatLiteral(v)
		}
		term := ","
		if i == len(constants)-1 {
			term = ";"
		}
		decl.Body = append(decl.Body, c.Name+"("+strings.Join(values, ", ")+")"+term)
	}

	for _, fd := range fields {
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
