// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubgen

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/provider/catalog"
	"github.com/petar-djukic/stubgen/internal/provider/gotypes"
	"github.com/petar-djukic/stubgen/internal/provider/javasrc"
	"github.com/petar-djukic/stubgen/internal/registry"
	"github.com/petar-djukic/stubgen/internal/render"
	"github.com/petar-djukic/stubgen/internal/runner"
	"github.com/petar-djukic/stubgen/internal/sink"
	"github.com/petar-djukic/stubgen/internal/walker"
	"github.com/petar-djukic/stubgen/pkg/types"
)

// New validates the config and returns a ready-to-use Generator. Type
// metadata is loaded on every Generate or Check call, so a long-lived
// Generator sees source changes.
func New(cfg Config) (Generator, error) {
	applyDefaults(&cfg)
	style, err := validateConfig(cfg)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid config"), ErrInvalidConfig)
	}
	return &generator{cfg: cfg, style: style}, nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	cfg.Provider = NormalizeProvider(cfg.Provider)
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Ext == "" {
		cfg.Ext = sink.DefaultExt
	}
	cfg.Ext = strings.TrimPrefix(cfg.Ext, ".")
	if cfg.Policy.VersionConstant == "" {
		cfg.Policy.VersionConstant = render.DefaultVersionConstant
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
}

// validateConfig checks that required fields are present and returns the
// parsed decoration style.
func validateConfig(cfg Config) (render.DecorationStyle, error) {
	if len(cfg.Prefixes) == 0 {
		return 0, errors.New("at least one prefix is required")
	}
	for _, p := range cfg.Prefixes {
		if strings.TrimSpace(p) == "" {
			return 0, errors.New("prefixes must not be empty")
		}
	}
	if len(cfg.Roots) == 0 {
		return 0, errors.New("at least one root type is required")
	}
	if cfg.Output == "" {
		return 0, errors.New("Output is required")
	}
	if cfg.TypeProvider == nil {
		switch cfg.Provider {
		case ProviderCatalog, ProviderGo, ProviderJava:
		default:
			return 0, errors.Newf("unknown provider %q (supported: catalog, go, java)", cfg.Provider)
		}
		if len(cfg.Sources) == 0 {
			return 0, errors.Newf("the %s provider needs at least one source", cfg.Provider)
		}
	}
	return render.ParseDecorationStyle(cfg.Decorations)
}

// generator adapts internal/runner.Runner to the public Generator interface.
type generator struct {
	cfg   Config
	style render.DecorationStyle
}

func (g *generator) Generate(ctx context.Context) (*Result, error) {
	r, err := g.runner(ctx)
	if err != nil {
		return &Result{}, err
	}
	ir, err := r.Run(ctx)
	if ir == nil {
		return &Result{}, classify(err)
	}
	return &Result{
		Emitted:  entries(ir.Emitted),
		Commit:   ir.Commit,
		Added:    ir.Changes.Added,
		Modified: ir.Changes.Modified,
		Deleted:  ir.Changes.Deleted,
		Duration: ir.Duration,
	}, classify(err)
}

func (g *generator) Check(ctx context.Context) (*CheckResult, error) {
	r, err := g.runner(ctx)
	if err != nil {
		return &CheckResult{}, err
	}
	ir, err := r.Check(ctx)
	if ir == nil {
		return &CheckResult{}, classify(err)
	}
	result := &CheckResult{Emitted: entries(ir.Emitted)}
	if ir.Report != nil {
		for _, d := range ir.Report.Changed {
			result.Changed = append(result.Changed, FileDiff{Path: d.Path, Diff: d.Diff})
		}
		result.Missing = ir.Report.Missing
		result.Extra = ir.Report.Extra
	}
	if err == nil && !result.UpToDate() {
		return result, ErrOutOfDate
	}
	return result, classify(err)
}

func (g *generator) runner(ctx context.Context) (*runner.Runner, error) {
	p, err := g.provider(ctx)
	if err != nil {
		return nil, errors.Mark(err, ErrProvider)
	}
	return runner.NewRunner(runner.Deps{
		Provider: p,
		Prefixes: g.cfg.Prefixes,
		Roots:    g.cfg.Roots,
		Output:   g.cfg.Output,
		Ext:      g.cfg.Ext,
		Style:    g.style,
		Policy: walker.Policy{
			WalkExceptions:     g.cfg.Policy.WalkExceptions,
			RenderStaticFields: g.cfg.Policy.RenderStaticFields,
			WalkArrayElements:  g.cfg.Policy.WalkArrayElements,
			ContractRootsOnly:  g.cfg.Policy.ContractRootsOnly,
			VersionConstant:    g.cfg.Policy.VersionConstant,
		},
		Commit: g.cfg.Commit,
		Logger: g.cfg.Logger,
	}), nil
}

// provider loads the configured type metadata.
func (g *generator) provider(ctx context.Context) (types.Provider, error) {
	if g.cfg.TypeProvider != nil {
		return g.cfg.TypeProvider, nil
	}
	log := g.cfg.Logger

	switch g.cfg.Provider {
	case ProviderGo:
		p, err := gotypes.Load(ctx, g.cfg.Dir, g.cfg.Sources...)
		if err != nil {
			return nil, errors.Wrap(err, "loading Go packages")
		}
		log.Infow("loaded Go packages", "types", len(p.Exported()))
		return p, nil

	case ProviderJava:
		p, err := javasrc.Load(ctx, g.cfg.Sources...)
		if err != nil {
			return nil, errors.Wrap(err, "loading Java sources")
		}
		for _, se := range p.Errors() {
			log.Warnw("java source not fully parsed", "file", se.FilePath, "error", se.Err)
		}
		log.Infow("loaded Java sources", "types", len(p.Names()))
		return p, nil

	default:
		p, err := catalog.Load(g.cfg.Sources...)
		if err != nil {
			return nil, errors.Wrap(err, "loading catalogs")
		}
		log.Infow("loaded catalogs", "types", p.Len())
		return p, nil
	}
}

// classify marks internal failures with the public sentinel errors.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, runner.ErrOutput):
		return errors.Mark(err, ErrOutput)
	case errors.Is(err, types.ErrTypeNotFound), errors.Is(err, types.ErrFieldAccess):
		return errors.Mark(err, ErrProvider)
	}
	return err
}

func entries(in []registry.Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Name: e.Name, Location: e.Location}
	}
	return out
}
