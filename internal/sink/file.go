// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sink

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// ErrUnsafeRoot is returned by Reset for output roots it refuses to clear.
var ErrUnsafeRoot = errors.New("refusing to clear output root")

// File writes declarations below a root directory.
type File struct {
	Root string
	Ext  string
}

// NewFile returns a sink rooted at root.
func NewFile(root, ext string) *File {
	return &File{Root: root, Ext: ext}
}

// Location returns the absolute-or-root-relative path of d's declaration.
func (f *File) Location(d *types.Descriptor) string {
	return filepath.Join(f.Root, RelPath(d, f.Ext))
}

// Write stores text at d's location. Intermediate directories are created,
// existing content is replaced, and the write is atomic: the text goes to a
// temp file in the same directory which is then renamed over the target.
func (f *File) Write(d *types.Descriptor, text string) error {
	return WriteFile(f.Location(d), []byte(text))
}

// WriteFile atomically writes data to path with permissions 0644, creating
// parent directories as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".stubgen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(err, "setting permissions")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming temp file to %s", path)
	}

	success = true
	return nil
}

// Reset clears root and recreates it empty. The run owns the output root
// exclusively, so everything below it is removed. Reset refuses to clear the
// filesystem root, the user's home directory, and the current working
// directory or any of its ancestors.
func Reset(root string) error {
	if root == "" {
		return errors.Wrap(ErrUnsafeRoot, "empty path")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrap(err, "resolving output root")
	}
	if err := checkSafeRoot(abs); err != nil {
		return err
	}

	if err := os.RemoveAll(abs); err != nil {
		return errors.Wrapf(err, "removing %s", abs)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", abs)
	}
	return nil
}

func checkSafeRoot(abs string) error {
	if abs == filepath.Dir(abs) {
		return errors.Wrapf(ErrUnsafeRoot, "%s is a filesystem root", abs)
	}
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) == abs {
		return errors.Wrapf(ErrUnsafeRoot, "%s is the home directory", abs)
	}
	if wd, err := os.Getwd(); err == nil {
		rel, err := filepath.Rel(abs, wd)
		if err == nil && !startsWithParent(rel) {
			return errors.WithHint(
				errors.Wrapf(ErrUnsafeRoot, "%s contains the working directory", abs),
				"point the output root at a dedicated directory such as build/stubs",
			)
		}
	}
	return nil
}

func startsWithParent(rel string) bool {
	return rel == ".." || len(rel) > 3 && rel[:3] == ".."+string(filepath.Separator)
}
