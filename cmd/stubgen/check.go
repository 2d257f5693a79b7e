// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/stubgen/pkg/stubgen"
)

// newCheckCmd creates the "check" command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the output root is up to date",
		Long:  "Check renders every declaration in memory, compares it with the output root, and fails when they differ.",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	g, _, err := newGenerator(log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := g.Check(ctx)
	if errors.Is(err, stubgen.ErrOutOfDate) {
		printReport(result)
		return errors.WithHint(err, "run `stubgen generate` to regenerate the output root")
	}
	if err != nil {
		return err
	}
	pterm.Success.Printf("Output root is up to date (%d declarations)\n", len(result.Emitted))
	return nil
}

func printReport(result *stubgen.CheckResult) {
	for _, d := range result.Changed {
		pterm.Warning.Printf("changed: %s\n", d.Path)
		for _, line := range strings.SplitAfter(d.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "-"):
				pterm.Print(pterm.Red(line))
			case strings.HasPrefix(line, "+"):
				pterm.Print(pterm.Green(line))
			default:
				pterm.Print(pterm.Gray(line))
			}
		}
	}
	for _, p := range result.Missing {
		pterm.Warning.Printf("missing: %s\n", p)
	}
	for _, p := range result.Extra {
		pterm.Warning.Printf("extra: %s\n", p)
	}
}
