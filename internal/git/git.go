// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git publishes a regenerated output tree as a commit in the
// enclosing repository, and undoes such commits.
package git

import (
	"strings"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// generatedTrailer marks commits created by Publish.
const generatedTrailer = "Generated-By: stubgen"

// ErrNoGit is returned when a directory is not inside a git work tree.
var ErrNoGit = errors.New("not a git repository")

// ErrNotStubgenCommit is returned when undo targets a commit stubgen did not make.
var ErrNotStubgenCommit = errors.New("not a stubgen commit")

// Repo wraps a go-git repository for the operations stubgen needs.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing dir, searching parent directories
// for the .git entry. Returns ErrNoGit when there is none.
func Open(dir string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(ErrNoGit, "%s: %v", dir, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Wrapf(ErrNoGit, "%s: %v", dir, err)
	}
	return &Repo{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root returns the top-level directory of the work tree.
func (r *Repo) Root() string {
	return r.root
}

// IsDirty reports whether the work tree has staged or unstaged changes.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, "getting worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(err, "getting status")
	}
	return !status.IsClean(), nil
}

// IsStubgenCommit reports whether HEAD carries the stubgen trailer.
func (r *Repo) IsStubgenCommit() (bool, error) {
	msg, err := r.lastCommitMessage()
	if err != nil {
		return false, err
	}
	return strings.Contains(msg, generatedTrailer), nil
}

func (r *Repo) lastCommitMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "getting HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", errors.Wrap(err, "getting commit")
	}
	return commit.Message, nil
}

// commitCount returns the number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}
