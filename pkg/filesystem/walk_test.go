package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("export default 1"), 0644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalk_BasicTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a.js", "dir1/b.js", "dir1/subdir/c.js")

	var visited []string
	err := Walk(context.Background(), tmpDir, WalkOptions{}, func(path string) error {
		visited = append(visited, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "dir1/b.js", "dir1/subdir/c.js"}, relPaths(t, tmpDir, visited))
}

func TestWalk_SkipDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir,
		"node_modules/react/index.js",
		"test/App.js",
		"tests/App.js",
		".storybook/preview.js",
		"src/testing/App.js",
		"keep.js",
	)

	var visited []string
	err := Walk(context.Background(), tmpDir, WalkOptions{}, func(path string) error {
		visited = append(visited, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"keep.js", "src/testing/App.js"}, relPaths(t, tmpDir, visited))
}

func TestWalk_SkipGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "legacy-v1/A.js", "legacy-v2/B.js", "legacy/C.js", "src/D.js")

	var visited []string
	err := Walk(context.Background(), tmpDir, WalkOptions{SkipDirs: []string{"legacy-*"}}, func(path string) error {
		visited = append(visited, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"legacy/C.js", "src/D.js"}, relPaths(t, tmpDir, visited))
}

func TestWalk_IgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "App.js", "App.test.js", "App.spec.tsx", "notes.tmp")

	var visited []string
	err := Walk(context.Background(), tmpDir, WalkOptions{
		IgnorePatterns: []string{"*.test.*", "*.spec.*", "*.tmp"},
	}, func(path string) error {
		visited = append(visited, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"App.js"}, relPaths(t, tmpDir, visited))
}

func TestWalk_VisitorErrorStops(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a.js", "b.js")

	boom := errors.New("boom")
	calls := 0
	err := Walk(context.Background(), tmpDir, WalkOptions{}, func(path string) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalk_Cancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a.js")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Walk(ctx, tmpDir, WalkOptions{}, func(path string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalk_MissingRoot(t *testing.T) {
	err := Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), WalkOptions{}, func(string) error { return nil })

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "walk", readErr.Op)
}

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		in       string
		want     bool
	}{
		{"exact", []string{"node_modules"}, "node_modules", true},
		{"glob", []string{"*.stories"}, "button.stories", true},
		{"no match", []string{"tests"}, "testing", false},
		{"malformed glob falls back to equality", []string{"[a"}, "[a", true},
		{"empty", nil, "src", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAny(tt.patterns, tt.in))
		})
	}
}
