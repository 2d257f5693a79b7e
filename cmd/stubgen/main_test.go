// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/stubgen/pkg/stubgen"
)

func TestConfigFromViper(t *testing.T) {
	newRootCmd()
	t.Cleanup(viper.Reset)

	viper.Set("provider", "java")
	viper.Set("source", []string{"src/main/java"})
	viper.Set("prefix", []string{"com.acme"})
	viper.Set("root", []string{"com.acme.Api"})
	viper.Set("output", "build/stubs")
	viper.Set("walk-exceptions", true)

	cfg := configFromViper(nil)
	assert.Equal(t, "java", cfg.Provider)
	assert.Equal(t, []string{"src/main/java"}, cfg.Sources)
	assert.Equal(t, []string{"com.acme"}, cfg.Prefixes)
	assert.Equal(t, []string{"com.acme.Api"}, cfg.Roots)
	assert.Equal(t, "build/stubs", cfg.Output)
	assert.Equal(t, "java", cfg.Ext)
	assert.Equal(t, "annotations", cfg.Decorations)
	assert.Equal(t, "serialVersionUID", cfg.Policy.VersionConstant)
	assert.True(t, cfg.Policy.WalkExceptions)
	assert.False(t, cfg.Policy.WalkArrayElements)
}

func TestWatchTargets(t *testing.T) {
	tests := []struct {
		name      string
		cfg       stubgen.Config
		wantPaths []string
		wantExts  []string
	}{
		{"catalog", stubgen.Config{Sources: []string{"api.yaml"}}, []string{"api.yaml"}, []string{"yaml", "yml", "toml", "json"}},
		{"java", stubgen.Config{Provider: stubgen.ProviderJava, Sources: []string{"src"}}, []string{"src"}, []string{"java"}},
		{"go", stubgen.Config{Provider: stubgen.ProviderGo, Sources: []string{"./..."}, Dir: "mod"}, []string{"mod"}, []string{"go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPaths, watchPaths(tt.cfg))
			assert.Equal(t, tt.wantExts, watchExtensions(tt.cfg.Provider))
		})
	}
}

func TestConfigFromViper_NormalizesProvider(t *testing.T) {
	newRootCmd()
	t.Cleanup(viper.Reset)

	viper.Set("provider", " Go ")
	viper.Set("source", []string{"./..."})
	viper.Set("dir", "mod")

	cfg := configFromViper(nil)
	assert.Equal(t, stubgen.ProviderGo, cfg.Provider)
	assert.Equal(t, []string{"mod"}, watchPaths(cfg))
	assert.Equal(t, []string{"go"}, watchExtensions(cfg.Provider))
}

func TestRootCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "Generate stub declarations from a type graph", cmd.Short)
	assert.Equal(t, "stubgen walks the types reachable from a set of root types and writes one declaration per in-scope type.", cmd.Long)
}
