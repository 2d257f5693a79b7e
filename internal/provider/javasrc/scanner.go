// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package javasrc

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// skipDirs contains directory names that Scan never descends into.
var skipDirs = map[string]bool{
	".git":         true,
	"build":        true,
	"target":       true,
	"node_modules": true,
}

// ScanError records a parse failure for a single file.
type ScanError struct {
	FilePath string
	Err      error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

// ScanResult holds the compilation units found below the scanned roots.
type ScanResult struct {
	Units  []*unit
	Errors []ScanError
}

// Scan walks every root, finds all .java files and parses them in parallel
// with a bounded worker pool. A root may also name a single file.
//
// Parse errors for individual files are collected in ScanResult.Errors and
// do not abort the scan; the partial unit is still indexed. concurrency <= 0
// defaults to runtime.NumCPU().
func Scan(ctx context.Context, roots []string, concurrency int) (*ScanResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	var paths []string
	for _, root := range roots {
		found, err := collect(ctx, root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	result := &ScanResult{}
	if len(paths) == 0 {
		return result, nil
	}

	type parseResult struct {
		path string
		unit *unit
		err  error
	}

	jobs := make(chan string, len(paths))
	results := make(chan parseResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					results <- parseResult{path: path, err: ctx.Err()}
					continue
				}
				content, err := os.ReadFile(path)
				if err != nil {
					results <- parseResult{path: path, err: err}
					continue
				}
				u, err := parseUnit(ctx, path, content)
				results <- parseResult{path: path, unit: u, err: err}
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for pr := range results {
		if pr.err != nil {
			result.Errors = append(result.Errors, ScanError{FilePath: pr.path, Err: pr.err})
		}
		if pr.unit != nil {
			result.Units = append(result.Units, pr.unit)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// collect lists the .java files below root, honoring skipDirs and the
// root's .gitignore.
func collect(ctx context.Context, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving directory")
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Wrap(err, "stat source")
	}
	if !info.IsDir() {
		return []string{absRoot}, nil
	}

	ignorer := loadGitignore(absRoot)

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || ignorer.isIgnored(relPath)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") || ignorer.isIgnored(relPath) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking directory")
	}
	return paths, nil
}

// gitignorer provides simple .gitignore matching.
type gitignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from root. A missing or unreadable file
// yields an ignorer that matches nothing.
func loadGitignore(root string) gitignorer {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, line)
	}
	return gitignorer{patterns: patterns}
}

// isIgnored matches relPath against the patterns: any path component
// against a bare pattern, or the whole path against a glob.
func (g gitignorer) isIgnored(relPath string) bool {
	parts := strings.Split(relPath, string(filepath.Separator))
	for _, pattern := range g.patterns {
		dirPattern := strings.Trim(pattern, "/")
		for _, part := range parts {
			if matched, _ := filepath.Match(dirPattern, part); matched {
				return true
			}
		}
		if matched, _ := filepath.Match(dirPattern, filepath.ToSlash(relPath)); matched {
			return true
		}
	}
	return false
}
