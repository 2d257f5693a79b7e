// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "stubgen"
	authorEmail = "stubgen@localhost"
)

// Changes lists the repository-relative paths a publish commit touched.
type Changes struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Deleted) == 0
}

// Publish stages every change below outputDir (new, modified and deleted
// files) and commits them with a generated message. Changes elsewhere in the
// work tree are left alone. When nothing under outputDir changed no commit is
// made and the zero hash is returned.
func (r *Repo) Publish(outputDir string) (plumbing.Hash, Changes, error) {
	var changes Changes

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return plumbing.ZeroHash, changes, errors.Wrap(err, "resolving output root")
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	root := r.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return plumbing.ZeroHash, changes, errors.Newf("%s is outside the work tree %s", outputDir, r.root)
	}
	prefix := filepath.ToSlash(rel) + "/"
	if rel == "." {
		prefix = ""
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, changes, errors.Wrap(err, "getting worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, changes, errors.Wrap(err, "getting status")
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		fs := status[path]
		switch fs.Worktree {
		case gogit.Deleted:
			if _, err := wt.Remove(path); err != nil {
				return plumbing.ZeroHash, changes, errors.Wrapf(err, "staging removal of %s", path)
			}
			changes.Deleted = append(changes.Deleted, path)
		case gogit.Untracked:
			if _, err := wt.Add(path); err != nil {
				return plumbing.ZeroHash, changes, errors.Wrapf(err, "staging %s", path)
			}
			changes.Added = append(changes.Added, path)
		case gogit.Modified:
			if _, err := wt.Add(path); err != nil {
				return plumbing.ZeroHash, changes, errors.Wrapf(err, "staging %s", path)
			}
			changes.Modified = append(changes.Modified, path)
		}
	}

	if changes.Empty() {
		return plumbing.ZeroHash, changes, nil
	}

	hash, err := wt.Commit(GenerateMessage(filepath.ToSlash(rel), changes), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, changes, errors.Wrap(err, "committing")
	}
	return hash, changes, nil
}

// Undo reverts HEAD if stubgen made it, with a soft reset to its parent so
// the regenerated files stay in the work tree and the index.
func (r *Repo) Undo() error {
	ok, err := r.IsStubgenCommit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotStubgenCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return errors.Wrap(err, "getting HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return errors.Wrap(err, "getting commit")
	}
	if commit.NumParents() == 0 {
		return errors.New("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return errors.Wrap(err, "getting parent commit")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return errors.Wrap(err, "resetting to parent")
	}
	return nil
}
