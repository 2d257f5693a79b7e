// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gitpkg "github.com/petar-djukic/stubgen/internal/git"
)

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last stubgen commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by stubgen.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := viper.GetString("output")
			if dir == "" {
				dir = "."
			}

			repo, err := gitpkg.Open(dir)
			if err != nil {
				return errors.Wrap(err, "opening repository")
			}

			if err := repo.Undo(); err != nil {
				if errors.Is(err, gitpkg.ErrNotStubgenCommit) {
					return errors.WithHint(err, "HEAD was not made by stubgen generate --commit")
				}
				return errors.Wrap(err, "undo failed")
			}

			pterm.Success.Println("Reverted the last stubgen commit.")
			return nil
		},
	}
}
