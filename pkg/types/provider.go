// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "github.com/cockroachdb/errors"

var (
	// ErrTypeNotFound is returned by Provider.Lookup for names it does not know.
	ErrTypeNotFound = errors.New("type not found")

	// ErrFieldAccess is returned by Provider.FieldValue when a field value
	// cannot be read, even with forced access.
	ErrFieldAccess = errors.New("field access denied")
)

// Provider supplies type metadata. Implementations may be backed by runtime
// reflection, by loaded source code, or by descriptors generated ahead of
// time; the engine only reads through this interface and never mutates the
// returned values.
type Provider interface {
	// Lookup returns the descriptor for a qualified type name.
	Lookup(qualifiedName string) (*Descriptor, error)

	// Constants returns the constants of an enumerated type in ordinal order.
	Constants(d *Descriptor) ([]EnumConstant, error)

	// FieldValue reads instance field f off constant c of enumerated type d.
	// Access is always forced regardless of the field's declared visibility.
	FieldValue(d *Descriptor, c EnumConstant, f Field) (any, error)
}
