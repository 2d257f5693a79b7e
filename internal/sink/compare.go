// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sink

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FileDiff describes one declaration whose content on disk differs from
// the freshly rendered text.
type FileDiff struct {
	Path string // Relative to the output root
	Diff string // Line diff, "-" for disk, "+" for rendered
}

// Report is the outcome of comparing rendered declarations with an output root.
type Report struct {
	Changed []FileDiff
	Missing []string // Rendered but absent on disk
	Extra   []string // On disk with the declaration extension but not rendered
}

// UpToDate reports whether the output root matches the rendered set exactly.
func (r *Report) UpToDate() bool {
	return len(r.Changed) == 0 && len(r.Missing) == 0 && len(r.Extra) == 0
}

// Compare checks rendered files (relative path to text) against the tree
// under root. Only files with extension ext count as extra. A missing root
// reports every rendered file as missing.
func Compare(rendered map[string]string, root, ext string) (*Report, error) {
	if ext == "" {
		ext = DefaultExt
	}
	suffix := "." + strings.TrimPrefix(ext, ".")
	report := &Report{}

	onDisk := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		onDisk[rel] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	paths := make([]string, 0, len(rendered))
	for p := range rendered {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		if !onDisk[rel] {
			report.Missing = append(report.Missing, rel)
			continue
		}
		existing, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", rel)
		}
		if string(existing) != rendered[rel] {
			report.Changed = append(report.Changed, FileDiff{
				Path: rel,
				Diff: LineDiff(string(existing), rendered[rel]),
			})
		}
	}

	for rel := range onDisk {
		if _, ok := rendered[rel]; !ok {
			report.Extra = append(report.Extra, rel)
		}
	}
	sort.Strings(report.Extra)

	return report, nil
}

// LineDiff renders a line-level diff of a against b. Unchanged lines are
// prefixed with a space, removed lines with "-", added lines with "+".
func LineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String()
}
