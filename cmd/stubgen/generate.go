// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/stubgen/internal/watch"
	"github.com/petar-djukic/stubgen/pkg/stubgen"
)

// newGenerateCmd creates the "generate" command.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the output root",
		Long:  "Generate clears the output root and writes one declaration per type reachable from the roots.",
		RunE:  runGenerate,
	}
	cmd.Flags().Bool("watch", false, "Regenerate whenever the sources change")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	g, cfg, err := newGenerator(log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	generate := func(ctx context.Context) error {
		result, err := g.Generate(ctx)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	if err := generate(ctx); err != nil {
		return err
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return nil
	}

	w, err := watch.New(watch.Options{
		Paths:      watchPaths(cfg),
		Ignore:     []string{cfg.Output},
		Extensions: watchExtensions(cfg.Provider),
		Logger:     log,
	})
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}
	pterm.Info.Println("Watching sources; press Ctrl+C to stop.")
	return w.Run(ctx, generate)
}

// watchPaths returns the directories whose changes trigger regeneration.
// Go package patterns are not paths, so the Go provider watches its
// module directory instead.
func watchPaths(cfg stubgen.Config) []string {
	if cfg.Provider == stubgen.ProviderGo {
		if cfg.Dir == "" {
			return []string{"."}
		}
		return []string{cfg.Dir}
	}
	return cfg.Sources
}

func watchExtensions(provider string) []string {
	switch provider {
	case stubgen.ProviderGo:
		return []string{"go"}
	case stubgen.ProviderJava:
		return []string{"java"}
	default:
		return []string{"yaml", "yml", "toml", "json"}
	}
}

func printResult(result *stubgen.Result) {
	pterm.Success.Printf("Emitted %d declarations in %s\n", len(result.Emitted), result.Duration.Round(time.Millisecond))
	if result.Commit != "" {
		pterm.Info.Printf("Committed %s (%d added, %d modified, %d deleted)\n",
			result.Commit[:8], len(result.Added), len(result.Modified), len(result.Deleted))
	}
}
