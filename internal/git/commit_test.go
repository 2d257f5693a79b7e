// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStub(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPublish_CommitsOutputTree(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "stubs/com/acme/Old.java", "class Old {}\n", "add old")
	addFileAndCommit(t, dir, "stubs/com/acme/Kept.java", "class Kept {}\n", "add kept")

	require.NoError(t, os.Remove(filepath.Join(dir, "stubs", "com", "acme", "Old.java")))
	writeStub(t, dir, "stubs/com/acme/Kept.java", "class Kept { int x; }\n")
	writeStub(t, dir, "stubs/com/acme/New.java", "class New {}\n")
	writeStub(t, dir, "notes.txt", "unrelated\n")

	repo, err := Open(filepath.Join(dir, "stubs"))
	require.NoError(t, err)

	hash, changes, err := repo.Publish(filepath.Join(dir, "stubs"))
	require.NoError(t, err)
	assert.False(t, hash.IsZero())
	assert.Equal(t, []string{"stubs/com/acme/New.java"}, changes.Added)
	assert.Equal(t, []string{"stubs/com/acme/Kept.java"}, changes.Modified)
	assert.Equal(t, []string{"stubs/com/acme/Old.java"}, changes.Deleted)

	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Contains(t, msg, "chore: regenerate stubs (1 added, 1 modified, 1 deleted)")
	assert.Contains(t, msg, generatedTrailer)

	// The unrelated file stays uncommitted.
	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestPublish_NothingChanged(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "stubs/A.java", "class A {}\n", "add A")

	repo, err := Open(dir)
	require.NoError(t, err)

	hash, changes, err := repo.Publish(filepath.Join(dir, "stubs"))
	require.NoError(t, err)
	assert.True(t, hash.IsZero())
	assert.True(t, changes.Empty())

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPublish_OutsideWorkTree(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(dir)
	require.NoError(t, err)

	_, _, err = repo.Publish(t.TempDir())
	assert.Error(t, err)
}

func TestUndo_RevertsPublishCommit(t *testing.T) {
	dir := initTestRepo(t)
	writeStub(t, dir, "stubs/A.java", "class A {}\n")

	repo, err := Open(dir)
	require.NoError(t, err)
	_, _, err = repo.Publish(filepath.Join(dir, "stubs"))
	require.NoError(t, err)

	count, err := repo.commitCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, repo.Undo())

	count, err = repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Soft reset keeps the regenerated file.
	content, err := os.ReadFile(filepath.Join(dir, "stubs", "A.java"))
	require.NoError(t, err)
	assert.Equal(t, "class A {}\n", string(content))
}

func TestUndo_RefusesForeignCommit(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "other.txt", "x\n", "feat: hand-written change")

	repo, err := Open(dir)
	require.NoError(t, err)

	err = repo.Undo()
	assert.ErrorIs(t, err, ErrNotStubgenCommit)

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
