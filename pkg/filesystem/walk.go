package filesystem

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultSkipDirs are directory names never entered while cataloging.
var DefaultSkipDirs = []string{"node_modules", "test", "tests"}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	SkipDirs       []string // Directory names or globs to skip (default: DefaultSkipDirs)
	IgnorePatterns []string // File name globs to skip (e.g., "*.test.*")
	IncludeHidden  bool     // Enter dot-prefixed files/dirs (default: false)
}

// Walk traverses a directory tree depth first in lexical order. The visitor
// is called for regular files only; skipped directories are never entered.
// The context is checked before every entry.
func Walk(ctx context.Context, rootPath string, opts WalkOptions, visitor func(path string) error) error {
	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = DefaultSkipDirs
	}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return &ReadError{Path: path, Op: "walk", Err: err}
		}
		if path == rootPath {
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if MatchAny(skipDirs, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if MatchAny(opts.IgnorePatterns, name) {
			return nil
		}

		return visitor(path)
	})
	return err
}

// MatchAny reports whether name equals one of the patterns or matches it
// as a filepath.Match glob. Malformed globs only match by equality.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if pattern == name {
			return true
		}
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
