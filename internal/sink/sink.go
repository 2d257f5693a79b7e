// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sink persists rendered declarations, one file per type, under a
// path derived from the type's namespace and simple name.
package sink

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// DefaultExt is the file extension of emitted declarations.
const DefaultExt = "java"

// Sink receives one rendered declaration per emitted type.
type Sink interface {
	// Location returns where d will be written.
	Location(d *types.Descriptor) string
	// Write stores text for d, replacing any previous content.
	Write(d *types.Descriptor, text string) error
}

// RelPath returns the relative path of d's declaration: one
// directory per namespace segment and the simple name as the file stem.
func RelPath(d *types.Descriptor, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	parts := NamespaceSegments(d.Namespace)
	parts = append(parts, d.SimpleName()+"."+strings.TrimPrefix(ext, "."))
	return filepath.Join(parts...)
}

// NamespaceSegments splits a namespace on dots and slashes, so both
// "com.acme.api" and "github.com/acme/api" become directory levels.
func NamespaceSegments(ns string) []string {
	return strings.FieldsFunc(ns, func(r rune) bool {
		return r == '.' || r == '/'
	})
}

// Memory keeps declarations in memory, keyed by relative path.
type Memory struct {
	Ext string

	mu    sync.Mutex
	files map[string]string
}

// NewMemory returns an empty in-memory sink.
func NewMemory(ext string) *Memory {
	return &Memory{Ext: ext, files: make(map[string]string)}
}

// Location returns the relative path of d.
func (m *Memory) Location(d *types.Descriptor) string {
	return RelPath(d, m.Ext)
}

// Write stores text under d's relative path.
func (m *Memory) Write(d *types.Descriptor, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.Location(d)] = text
	return nil
}

// Files returns a copy of the stored declarations.
func (m *Memory) Files() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

// Paths returns the stored relative paths in sorted order.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
