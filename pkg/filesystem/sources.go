package filesystem

import (
	"context"
	"fmt"
	"strings"
)

// DefaultExtensions is the extension preference order used when probing
// for a module file.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".native.js"}

// testFilePatterns match unit test files that never declare app components.
var testFilePatterns = []string{"*.test.*", "*.spec.*"}

// SourceDiscoveryOptions configures component source discovery
type SourceDiscoveryOptions struct {
	Extensions   []string // Accepted file suffixes (default: DefaultExtensions)
	SkipDirs     []string // Additional directory names or globs to skip
	IncludeTests bool     // Include *.test.* and *.spec.* files (default: false)
}

// DiscoverSources lists every source file under rootPath that carries a
// supported extension, in walk order.
func DiscoverSources(ctx context.Context, rootPath string, opts SourceDiscoveryOptions) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	walkOpts := WalkOptions{
		SkipDirs: append(append([]string{}, DefaultSkipDirs...), opts.SkipDirs...),
	}
	if !opts.IncludeTests {
		walkOpts.IgnorePatterns = testFilePatterns
	}

	var files []string
	err := Walk(ctx, rootPath, walkOpts, func(path string) error {
		if HasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover sources: %w", err)
	}

	return files, nil
}

// HasExtension reports whether path ends with one of exts.
func HasExtension(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
