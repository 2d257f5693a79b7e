// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enumDecl() *Declaration {
	return &Declaration{
		Namespace:  "com.acme.api",
		SimpleName: "Code",
		Header:     "public enum Code",
		Body: []string{
			`A("x", 1L);`,
			"private final java.lang.String label;",
			"private long weight;",
		},
		Fields: []FieldDecl{
			{Type: "java.lang.String", Name: "label", Final: true},
			{Type: "long", Name: "weight"},
		},
		Decorations: Decorations{Accessors: true, AllArgsConstructor: true},
	}
}

func TestDeclaration_TextAnnotations(t *testing.T) {
	want := `package com.acme.api;

@lombok.Getter
@lombok.AllArgsConstructor
public enum Code {
    A("x", 1L);
    private final java.lang.String label;
    private long weight;
}
`
	assert.Equal(t, want, enumDecl().Text(StyleAnnotations))
}

func TestDeclaration_TextMethods(t *testing.T) {
	want := `package com.acme.api;

public enum Code {
    A("x", 1L);
    private final java.lang.String label;
    private long weight;
    Code(java.lang.String label, long weight);
    public java.lang.String getLabel();
    public long getWeight();
}
`
	assert.Equal(t, want, enumDecl().Text(StyleMethods))
}

func TestDeclaration_TextDataMethods(t *testing.T) {
	d := &Declaration{
		SimpleName: "Flag",
		Header:     "public class Flag",
		Body:       []string{"private boolean enabled;", "private final java.lang.String name;"},
		Fields: []FieldDecl{
			{Type: "boolean", Name: "enabled"},
			{Type: "java.lang.String", Name: "name", Final: true},
		},
		Decorations: Decorations{Data: true},
	}

	want := `public class Flag {
    private boolean enabled;
    private final java.lang.String name;
    public boolean isEnabled();
    public java.lang.String getName();
    public void setEnabled(boolean enabled);
}
`
	assert.Equal(t, want, d.Text(StyleMethods))
	assert.Equal(t, "@lombok.Data\n"+`public class Flag {
    private boolean enabled;
    private final java.lang.String name;
}
`, d.Text(StyleAnnotations))
}

func TestDeclaration_TextDoesNotMutateBody(t *testing.T) {
	d := enumDecl()
	before := append([]string(nil), d.Body...)
	_ = d.Text(StyleMethods)
	assert.Equal(t, before, d.Body)
}

func TestParseDecorationStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    DecorationStyle
		wantErr bool
	}{
		{"", StyleAnnotations, false},
		{"annotations", StyleAnnotations, false},
		{"Lombok", StyleAnnotations, false},
		{"methods", StyleMethods, false},
		{"macros", StyleAnnotations, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecorationStyle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}
