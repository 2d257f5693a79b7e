// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const (
	maxSubjectLength = 72
	maxListedFiles   = 20
)

// GenerateMessage builds the publish commit message for the output root
// outputDir: a conventional subject with the change counts, a body listing
// the touched files, and the stubgen trailer.
func GenerateMessage(outputDir string, changes Changes) string {
	msg := buildSubject(outputDir, changes)
	if body := buildBody(changes); body != "" {
		msg += "\n\n" + body
	}
	return msg + "\n\n" + generatedTrailer
}

func buildSubject(outputDir string, c Changes) string {
	if outputDir == "" || outputDir == "." {
		outputDir = "stubs"
	}
	var counts []string
	if n := len(c.Added); n > 0 {
		counts = append(counts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Modified); n > 0 {
		counts = append(counts, fmt.Sprintf("%d modified", n))
	}
	if n := len(c.Deleted); n > 0 {
		counts = append(counts, fmt.Sprintf("%d deleted", n))
	}

	subject := "chore: regenerate " + outputDir
	if len(counts) > 0 {
		subject += " (" + strings.Join(counts, ", ") + ")"
	}
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

func buildBody(c Changes) string {
	var lines []string
	for _, group := range []struct {
		mark  string
		paths []string
	}{
		{"A", c.Added},
		{"M", c.Modified},
		{"D", c.Deleted},
	} {
		for _, p := range group.paths {
			lines = append(lines, group.mark+" "+p)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	if len(lines) > maxListedFiles {
		rest := len(lines) - maxListedFiles
		lines = append(lines[:maxListedFiles], fmt.Sprintf("... and %d more", rest))
	}
	return strings.Join(lines, "\n")
}
