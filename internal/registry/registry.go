// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package registry records which types a run has already claimed.
package registry

import "sync"

// Entry associates a type with the output location assigned to it.
type Entry struct {
	Name     string // Qualified type name
	Location string // Output location assigned at registration
}

// Registry is the visit ledger of one run. A type is accepted at most once;
// entries are never removed. TryRegister is an atomic check-and-set, so a
// Registry may be shared by concurrent walkers.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
	byName  map[string]int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// TryRegister records name with its location and returns true on the first
// call for that name. Every later call for the same name returns false and
// leaves the original entry untouched.
func (r *Registry) TryRegister(name, location string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return false
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Location: location})
	return true
}

// Has reports whether name has been registered.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byName[name]
	return ok
}

// Location returns the location assigned to name.
func (r *Registry) Location(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byName[name]
	if !ok {
		return "", false
	}
	return r.entries[idx].Location, true
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns a snapshot of all entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
