// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stubgen defines the public interface for stubgen, a generator of
// stub declarations for every type reachable from a set of root types.
package stubgen

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// Error types for the stubgen API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrProvider      = errors.New("type metadata unavailable")
	ErrOutput        = errors.New("output root failure")
	ErrOutOfDate     = errors.New("output root is out of date")
)

// Provider names accepted in Config.Provider.
const (
	ProviderCatalog = "catalog"
	ProviderGo      = "go"
	ProviderJava    = "java"
)

// NormalizeProvider lowercases and trims a provider name. The empty name
// selects the catalog provider.
func NormalizeProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ProviderCatalog
	}
	return name
}

// Policy selects optional traversal behaviors. The zero value walks method
// parameters, return types, generic arguments, supertypes, contracts and
// instance field types only.
type Policy struct {
	WalkExceptions     bool   // Walk method exception types
	RenderStaticFields bool   // Render non-constant static fields of structured types
	WalkArrayElements  bool   // Walk the element type of array references
	ContractRootsOnly  bool   // Only contract-like roots start a traversal
	VersionConstant    string // Static constant rendered as a long literal (default serialVersionUID)
}

// Config configures a Generator.
type Config struct {
	Provider     string         // catalog, go or java (default catalog); ignored when TypeProvider is set
	Sources      []string       // Catalog files or directories, Go package patterns, or Java source roots
	Dir          string         // Directory Go package patterns resolve against (default ".")
	TypeProvider types.Provider // Preloaded metadata; overrides Provider and Sources
	Prefixes     []string       // Namespace prefixes in scope (required)
	Roots        []string       // Qualified names of the root types (required)
	Output       string         // Output root, cleared on every run (required)
	Ext          string         // Declaration file extension (default java)
	Decorations  string         // annotations or methods (default annotations)
	Policy       Policy
	Commit       bool // Commit the regenerated output tree when it lies in a git work tree
	Logger       *zap.SugaredLogger
}

// Entry is one emitted declaration.
type Entry struct {
	Name     string // Qualified type name
	Location string // File the declaration was written to
}

// Result holds the outcome of Generator.Generate.
type Result struct {
	Emitted  []Entry  // In emission order
	Commit   string   // Hash of the publish commit; empty when none was made
	Added    []string // Repository-relative paths committed as new
	Modified []string
	Deleted  []string
	Duration time.Duration
}

// FileDiff is a declaration whose rendered text differs from the file on disk.
type FileDiff struct {
	Path string // Relative to the output root
	Diff string // Line diff; "-" lines are on disk, "+" lines are rendered
}

// CheckResult holds the outcome of Generator.Check.
type CheckResult struct {
	Emitted []Entry
	Changed []FileDiff
	Missing []string // Rendered but absent from the output root
	Extra   []string // Present in the output root but not rendered
}

// UpToDate reports whether the output root matches the rendered tree.
func (r *CheckResult) UpToDate() bool {
	return len(r.Changed) == 0 && len(r.Missing) == 0 && len(r.Extra) == 0
}

// Generator emits stub declarations for a configured set of roots.
type Generator interface {
	// Generate loads type metadata, clears the output root, writes one
	// declaration per reachable in-scope type, and commits the output tree
	// when configured to.
	Generate(ctx context.Context) (*Result, error)

	// Check renders the declarations in memory and compares them with the
	// output root without writing anything. A drifted output root returns
	// the full result together with ErrOutOfDate.
	Check(ctx context.Context) (*CheckResult, error)
}
