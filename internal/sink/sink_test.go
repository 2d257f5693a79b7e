// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/stubgen/pkg/types"
)

func TestRelPath(t *testing.T) {
	tests := []struct {
		name string
		d    *types.Descriptor
		ext  string
		want string
	}{
		{
			name: "dotted namespace",
			d:    &types.Descriptor{QualifiedName: "com.acme.api.Widget", Namespace: "com.acme.api"},
			want: filepath.Join("com", "acme", "api", "Widget.java"),
		},
		{
			name: "slashed namespace",
			d:    &types.Descriptor{QualifiedName: "github.com/acme/api.Widget", Namespace: "github.com/acme/api"},
			ext:  ".java",
			want: filepath.Join("github", "com", "acme", "api", "Widget.java"),
		},
		{
			name: "default namespace",
			d:    &types.Descriptor{QualifiedName: "Widget"},
			ext:  "txt",
			want: "Widget.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelPath(tt.d, tt.ext))
		})
	}
}

func TestMemory_WriteReplaces(t *testing.T) {
	m := NewMemory("")
	d := &types.Descriptor{QualifiedName: "a.B", Namespace: "a"}

	require.NoError(t, m.Write(d, "one"))
	require.NoError(t, m.Write(d, "two"))

	assert.Equal(t, []string{filepath.Join("a", "B.java")}, m.Paths())
	assert.Equal(t, "two", m.Files()[filepath.Join("a", "B.java")])
}

func TestFile_WriteCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	f := NewFile(root, "")
	d := &types.Descriptor{QualifiedName: "com.acme.Widget", Namespace: "com.acme"}

	require.NoError(t, f.Write(d, "class Widget {}\n"))
	require.NoError(t, f.Write(d, "class Widget { }\n"))

	got, err := os.ReadFile(filepath.Join(root, "com", "acme", "Widget.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Widget { }\n", string(got))

	entries, err := os.ReadDir(filepath.Join(root, "com", "acme"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not remain")
}

func TestReset_ClearsRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteFile(filepath.Join(root, "stale", "Old.java"), []byte("x")))

	require.NoError(t, Reset(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReset_RefusesUnsafeRoots(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	for _, root := range []string{"", "/", wd, filepath.Dir(wd)} {
		err := Reset(root)
		require.Error(t, err, "root %q", root)
		assert.ErrorIs(t, err, ErrUnsafeRoot)
	}
}

func TestCompare(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(root, "a", "Same.java"), []byte("same\n")))
	require.NoError(t, WriteFile(filepath.Join(root, "a", "Diff.java"), []byte("one\ntwo\n")))
	require.NoError(t, WriteFile(filepath.Join(root, "a", "Extra.java"), []byte("x\n")))
	require.NoError(t, WriteFile(filepath.Join(root, "a", "notes.md"), []byte("ignored\n")))

	rendered := map[string]string{
		filepath.Join("a", "Same.java"): "same\n",
		filepath.Join("a", "Diff.java"): "one\nthree\n",
		filepath.Join("b", "New.java"):  "new\n",
	}

	report, err := Compare(rendered, root, "java")
	require.NoError(t, err)

	assert.False(t, report.UpToDate())
	assert.Equal(t, []string{filepath.Join("b", "New.java")}, report.Missing)
	assert.Equal(t, []string{filepath.Join("a", "Extra.java")}, report.Extra)
	require.Len(t, report.Changed, 1)
	assert.Equal(t, filepath.Join("a", "Diff.java"), report.Changed[0].Path)
	assert.Equal(t, " one\n-two\n+three\n", report.Changed[0].Diff)
}

func TestCompare_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "absent")
	report, err := Compare(map[string]string{"A.java": "a\n"}, root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.java"}, report.Missing)
}

func TestCompare_UpToDate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(root, "A.java"), []byte("a\n")))

	report, err := Compare(map[string]string{"A.java": "a\n"}, root, "java")
	require.NoError(t, err)
	assert.True(t, report.UpToDate())
}
