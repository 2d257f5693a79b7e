// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type colorName string

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"text", "x", `"x"`},
		{"text with quotes", `say "hi"`, `"say \"hi\""`},
		{"text with newline", "a\nb", `"a\nb"`},
		{"bytes", []byte("raw"), `"raw"`},
		{"int64", int64(1), "1L"},
		{"negative int64", int64(-42), "-42L"},
		{"int16", int16(3), "(short)3"},
		{"int32 falls back", int32(7), "7"},
		{"int falls back", 9, "9"},
		{"bool falls back", true, "true"},
		{"float falls back", 1.5, "1.5"},
		{"named string falls back", colorName("RED"), "RED"},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLiteral(tt.value))
		})
	}
}
