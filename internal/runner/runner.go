// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner wires a provider, the walker, and an output sink into one
// generation run.
package runner

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	gitpkg "github.com/petar-djukic/stubgen/internal/git"
	"github.com/petar-djukic/stubgen/internal/registry"
	"github.com/petar-djukic/stubgen/internal/render"
	"github.com/petar-djukic/stubgen/internal/scope"
	"github.com/petar-djukic/stubgen/internal/sink"
	"github.com/petar-djukic/stubgen/internal/walker"
	"github.com/petar-djukic/stubgen/pkg/types"
)

// ErrOutput marks failures to clear, write, or read the output root.
var ErrOutput = errors.New("output failure")

// RunResult holds the outcome of Runner.Run. This is the internal result
// type; pkg/stubgen converts it to the public Result.
type RunResult struct {
	Emitted  []registry.Entry // In emission order
	Commit   string           // Publish commit hash; empty when none was made
	Changes  gitpkg.Changes
	Duration time.Duration
}

// CheckResult holds the outcome of Runner.Check.
type CheckResult struct {
	Emitted []registry.Entry
	Report  *sink.Report
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Provider types.Provider
	Prefixes []string // Scope prefixes
	Roots    []string // Qualified names of the root types, visited in order
	Output   string   // Output root, owned exclusively by the run
	Ext      string
	Style    render.DecorationStyle
	Policy   walker.Policy
	Commit   bool // Publish the output tree as a git commit after the run
	Logger   *zap.SugaredLogger
}

// Runner orchestrates generation runs.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}
	if deps.Ext == "" {
		deps.Ext = sink.DefaultExt
	}
	return &Runner{deps: deps}
}

// Run clears the output root, emits the declarations reachable from every
// root into it, and publishes the result when Commit is set. A failure
// aborts the run and leaves the output root partially populated.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	log := r.deps.Logger
	result := &RunResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := sink.Reset(r.deps.Output); err != nil {
		return result, errors.Mark(err, ErrOutput)
	}
	log.Infow("generating", "output", r.deps.Output, "roots", len(r.deps.Roots))

	emitted, err := r.walk(ctx, sink.NewFile(r.deps.Output, r.deps.Ext))
	result.Emitted = emitted
	if err != nil {
		return result, err
	}

	if r.deps.Commit {
		if err := r.publish(result); err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	log.Infow("generation complete", "emitted", len(result.Emitted), "duration", result.Duration)
	return result, nil
}

// Check renders into memory and compares the result with the output root
// without touching the disk.
func (r *Runner) Check(ctx context.Context) (*CheckResult, error) {
	mem := sink.NewMemory(r.deps.Ext)
	emitted, err := r.walk(ctx, mem)
	result := &CheckResult{Emitted: emitted}
	if err != nil {
		return result, err
	}
	report, err := sink.Compare(mem.Files(), r.deps.Output, r.deps.Ext)
	if err != nil {
		return result, errors.Mark(err, ErrOutput)
	}
	result.Report = report
	r.deps.Logger.Infow("check complete",
		"emitted", len(emitted),
		"changed", len(report.Changed),
		"missing", len(report.Missing),
		"extra", len(report.Extra))
	return result, nil
}

// walk visits every root with one walker so that types shared between
// roots are emitted once.
func (r *Runner) walk(ctx context.Context, s sink.Sink) ([]registry.Entry, error) {
	w := walker.New(walker.Deps{
		Provider: r.deps.Provider,
		Scope:    scope.New(r.deps.Prefixes...),
		Sink:     outputSink{s},
		Style:    r.deps.Style,
		Policy:   r.deps.Policy,
		Logger:   r.deps.Logger,
	})

	for _, root := range r.deps.Roots {
		if err := ctx.Err(); err != nil {
			return w.Registry().Entries(), err
		}
		if err := w.VisitRoot(root); err != nil {
			return w.Registry().Entries(), errors.Wrapf(err, "walking root %s", root)
		}
	}
	return w.Registry().Entries(), nil
}

// outputSink marks write failures with ErrOutput.
type outputSink struct {
	sink.Sink
}

func (s outputSink) Write(d *types.Descriptor, text string) error {
	if err := s.Sink.Write(d, text); err != nil {
		return errors.Mark(err, ErrOutput)
	}
	return nil
}

func (r *Runner) publish(result *RunResult) error {
	repo, err := gitpkg.Open(r.deps.Output)
	if errors.Is(err, gitpkg.ErrNoGit) {
		r.deps.Logger.Warnw("output root is not in a git work tree, skipping commit", "output", r.deps.Output)
		return nil
	}
	if err != nil {
		return err
	}
	hash, changes, err := repo.Publish(r.deps.Output)
	if err != nil {
		return errors.Wrap(err, "publishing output tree")
	}
	result.Changes = changes
	if !hash.IsZero() {
		result.Commit = hash.String()
		r.deps.Logger.Infow("committed", "hash", hash.String()[:8],
			"added", len(changes.Added), "modified", len(changes.Modified), "deleted", len(changes.Deleted))
	}
	return nil
}
