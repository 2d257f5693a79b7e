// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scope decides which discovered types are eligible for emission.
package scope

import (
	"sort"
	"strings"
)

// Filter accepts qualified type names that start with one of a configured
// set of namespace prefixes. The zero value accepts nothing.
type Filter struct {
	prefixes []string
}

// New returns a Filter over the given prefixes. Duplicate and empty
// prefixes are dropped.
func New(prefixes ...string) Filter {
	seen := make(map[string]bool, len(prefixes))
	var out []string
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return Filter{prefixes: out}
}

// Allows reports whether name starts with any configured prefix.
func (f Filter) Allows(name string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Prefixes returns the configured prefixes in sorted order.
func (f Filter) Prefixes() []string {
	out := make([]string, len(f.prefixes))
	copy(out, f.prefixes)
	return out
}
