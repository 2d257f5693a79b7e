// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/stubgen/internal/provider/catalog"
)

const shopCatalog = `
types:
  - name: com.acme.shop.Cart
    kind: interface
    methods:
      - name: add
        returns: com.acme.shop.Line
        params: [com.acme.shop.Sku, int]
  - name: com.acme.shop.Line
    kind: class
    fields:
      - name: sku
        type: com.acme.shop.Sku
        modifiers: [private]
      - name: quantity
        type: int
        modifiers: [private]
  - name: com.acme.shop.Sku
    kind: class
    fields:
      - name: code
        type: java.lang.String
        modifiers: [private]
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopCatalog), 0o644))
	return path
}

func validConfig(t *testing.T) Config {
	return Config{
		Sources:  []string{writeCatalog(t)},
		Prefixes: []string{"com.acme.shop"},
		Roots:    []string{"com.acme.shop.Cart"},
		Output:   filepath.Join(t.TempDir(), "out"),
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no prefixes", func(c *Config) { c.Prefixes = nil }},
		{"blank prefix", func(c *Config) { c.Prefixes = []string{" "} }},
		{"no roots", func(c *Config) { c.Roots = nil }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "cobol" }},
		{"no sources", func(c *Config) { c.Sources = nil }},
		{"unknown decorations", func(c *Config) { c.Decorations = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestNew_TypeProviderNeedsNoSources(t *testing.T) {
	p, err := catalog.Load(writeCatalog(t))
	require.NoError(t, err)

	cfg := validConfig(t)
	cfg.Sources = nil
	cfg.Provider = "ignored"
	cfg.TypeProvider = p

	g, err := New(cfg)
	require.NoError(t, err)
	res, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Emitted, 3)
}

func TestGenerate_WritesDeclarations(t *testing.T) {
	cfg := validConfig(t)
	g, err := New(cfg)
	require.NoError(t, err)

	res, err := g.Generate(context.Background())
	require.NoError(t, err)

	var names []string
	for _, e := range res.Emitted {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"com.acme.shop.Cart", "com.acme.shop.Line", "com.acme.shop.Sku"}, names)

	line, err := os.ReadFile(filepath.Join(cfg.Output, "com", "acme", "shop", "Line.java"))
	require.NoError(t, err)
	assert.Contains(t, string(line), "@lombok.Data")
	assert.Contains(t, string(line), "private com.acme.shop.Sku sku;")
}

func TestGenerate_MethodDecorations(t *testing.T) {
	cfg := validConfig(t)
	cfg.Decorations = "methods"
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	require.NoError(t, err)

	line, err := os.ReadFile(filepath.Join(cfg.Output, "com", "acme", "shop", "Line.java"))
	require.NoError(t, err)
	assert.NotContains(t, string(line), "@lombok")
	assert.Contains(t, string(line), "getQuantity();")
}

func TestGenerate_MissingRootIsProviderError(t *testing.T) {
	cfg := validConfig(t)
	cfg.Roots = []string{"com.acme.shop.Nope"}
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	assert.True(t, errors.Is(err, ErrProvider), "got %v", err)
}

func TestGenerate_BadCatalogIsProviderError(t *testing.T) {
	cfg := validConfig(t)
	cfg.Sources = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	assert.True(t, errors.Is(err, ErrProvider), "got %v", err)
}

func TestGenerate_UnsafeOutputIsOutputError(t *testing.T) {
	cfg := validConfig(t)
	cfg.Output = "/"
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	assert.True(t, errors.Is(err, ErrOutput), "got %v", err)
}

func TestCheck_ReportsDrift(t *testing.T) {
	cfg := validConfig(t)
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	require.NoError(t, err)

	res, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.UpToDate())

	require.NoError(t, os.Remove(filepath.Join(cfg.Output, "com", "acme", "shop", "Sku.java")))
	res, err = g.Check(context.Background())
	assert.ErrorIs(t, err, ErrOutOfDate)
	assert.Equal(t, []string{filepath.Join("com", "acme", "shop", "Sku.java")}, res.Missing)
}

func TestGenerate_JavaSources(t *testing.T) {
	src := t.TempDir()
	dir := filepath.Join(src, "com", "acme", "shop")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cart.java"), []byte(`package com.acme.shop;

public interface Cart {
    Line add(String sku, int quantity);
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Line.java"), []byte(`package com.acme.shop;

public class Line {
    private String sku;
    private int quantity;
}
`), 0o644))

	cfg := Config{
		Provider: ProviderJava,
		Sources:  []string{src},
		Prefixes: []string{"com.acme.shop"},
		Roots:    []string{"com.acme.shop.Cart"},
		Output:   filepath.Join(t.TempDir(), "out"),
	}
	g, err := New(cfg)
	require.NoError(t, err)

	res, err := g.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Emitted, 2)
	assert.Equal(t, "com.acme.shop.Line", res.Emitted[1].Name)

	cart, err := os.ReadFile(filepath.Join(cfg.Output, "com", "acme", "shop", "Cart.java"))
	require.NoError(t, err)
	assert.Contains(t, string(cart), "public interface Cart {")
	assert.Contains(t, string(cart), "com.acme.shop.Line add(java.lang.String var0, int var1);")
}

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, ProviderCatalog, NormalizeProvider(""))
	assert.Equal(t, ProviderGo, NormalizeProvider(" Go "))
	assert.Equal(t, ProviderJava, NormalizeProvider("JAVA"))
	assert.Equal(t, "other", NormalizeProvider("other"))
}
