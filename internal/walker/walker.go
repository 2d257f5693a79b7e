// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package walker expands the type graph reachable from a set of root types,
// emitting one declaration per in-scope type exactly once.
package walker

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/registry"
	"github.com/petar-djukic/stubgen/internal/render"
	"github.com/petar-djukic/stubgen/internal/scope"
	"github.com/petar-djukic/stubgen/internal/sink"
	"github.com/petar-djukic/stubgen/pkg/types"
)

// Policy selects the optional traversal behaviors.
type Policy struct {
	WalkExceptions     bool   // Walk method exception types
	RenderStaticFields bool   // Render non-constant static fields of structured types
	WalkArrayElements  bool   // Walk the element type of array references
	ContractRootsOnly  bool   // Start traversals only from contract-like roots
	VersionConstant    string // Static constant rendered as a long literal
}

// Deps holds the collaborators of a Walker. Registry and Logger are
// optional; a fresh registry and a no-op logger are used when nil. The
// zero Scope accepts nothing.
type Deps struct {
	Provider types.Provider
	Scope    scope.Filter
	Registry *registry.Registry
	Sink     sink.Sink
	Style    render.DecorationStyle
	Policy   Policy
	Logger   *zap.SugaredLogger
}

// Walker visits type references depth-first. Sharing one Walker across
// several roots emits a type referenced from more than one root once.
type Walker struct {
	deps      Deps
	formatter *render.Formatter
}

// New returns a Walker over deps.
func New(deps Deps) *Walker {
	if deps.Registry == nil {
		deps.Registry = registry.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}
	w := &Walker{deps: deps}
	w.formatter = render.NewFormatter(deps.Provider, w.Visit, render.Options{
		WalkExceptions:     deps.Policy.WalkExceptions,
		RenderStaticFields: deps.Policy.RenderStaticFields,
		VersionConstant:    deps.Policy.VersionConstant,
	})
	return w
}

// Registry returns the registry recording the emitted types.
func (w *Walker) Registry() *registry.Registry {
	return w.deps.Registry
}

// VisitRoot starts a traversal at the type with the given qualified name.
// Under ContractRootsOnly an in-scope root that is not contract-like is
// skipped.
func (w *Walker) VisitRoot(name string) error {
	if w.deps.Policy.ContractRootsOnly && w.deps.Scope.Allows(name) {
		d, err := w.deps.Provider.Lookup(name)
		if err != nil {
			return errors.Wrapf(err, "resolving root %s", name)
		}
		if d.Category != types.Contract {
			w.deps.Logger.Infow("skipping root", "type", name, "category", d.Category)
			return nil
		}
	}
	return w.Visit(types.NamedRef(name))
}

// Visit processes ref. A parameterized reference visits its raw type and
// then each argument from left to right. Type variables and wildcards are
// never walked.
func (w *Walker) Visit(ref types.TypeRef) error {
	switch ref.Kind {
	case types.Named:
		return w.visitType(ref.Name)
	case types.Parameterized:
		if err := w.visitType(ref.Name); err != nil {
			return err
		}
		return w.visitAll(ref.Args)
	case types.Tuple:
		return w.visitAll(ref.Args)
	case types.Array:
		if w.deps.Policy.WalkArrayElements && ref.Elem != nil {
			return w.Visit(*ref.Elem)
		}
	}
	return nil
}

func (w *Walker) visitAll(refs []types.TypeRef) error {
	for _, r := range refs {
		if err := w.Visit(r); err != nil {
			return err
		}
	}
	return nil
}

// visitType emits the declaration of name unless it is out of scope or
// already registered. The type is registered before its body is rendered so
// cyclic references terminate.
func (w *Walker) visitType(name string) error {
	log := w.deps.Logger
	if name == "" {
		return nil
	}
	if !w.deps.Scope.Allows(name) {
		log.Debugw("out of scope", "type", name)
		return nil
	}
	if w.deps.Registry.Has(name) {
		return nil
	}

	d, err := w.deps.Provider.Lookup(name)
	if err != nil {
		return errors.Wrapf(err, "looking up %s", name)
	}
	location := w.deps.Sink.Location(d)
	if !w.deps.Registry.TryRegister(name, location) {
		return nil
	}
	log.Debugw("visiting", "type", name, "category", d.Category)

	decl, err := w.formatter.Format(d)
	if err != nil {
		return err
	}
	if err := w.deps.Sink.Write(d, decl.Text(w.deps.Style)); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	log.Debugw("emitted", "type", name, "location", location)
	return nil
}
