package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
)

// Catalog maps the absolute path of every file declaring at least one
// component to its record. It is not modified once built.
type Catalog map[string]*extractor.FileRecord

// TotalComponents counts the components of every file.
func (c Catalog) TotalComponents() int {
	total := 0
	for _, rec := range c {
		total += len(rec.Components)
	}
	return total
}

// Paths returns the cataloged paths, sorted.
func (c Catalog) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the record of path.
func (c Catalog) Lookup(path string) (*extractor.FileRecord, bool) {
	rec, ok := c[path]
	return rec, ok
}

// Options configures catalog building
type Options struct {
	SkipDirs       []string // Directory names or globs skipped in addition to the defaults
	Extensions     []string // Source extensions (default: filesystem.DefaultExtensions)
	SkipUnparsable bool     // Log and skip files that fail to parse instead of failing
}

// Stats summarizes one build.
type Stats struct {
	Files      int // source files considered
	Cataloged  int // files declaring components
	Unparsable int // files skipped because of parse errors
	Components int
}

// Builder catalogs the components of a project tree.
type Builder struct {
	extractor *extractor.Extractor
	opts      Options
	logger    logger.Logger
}

// NewBuilder creates a Builder
func NewBuilder(ex *extractor.Extractor, opts Options) *Builder {
	if ex == nil {
		ex = extractor.NewExtractor("")
	}
	return &Builder{extractor: ex, opts: opts, logger: logger.Default()}
}

// WithLogger returns a new Builder with the specified logger
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	return &Builder{extractor: b.extractor, opts: b.opts, logger: log}
}

// Build walks root and extracts every eligible source file.
func (b *Builder) Build(ctx context.Context, root string) (Catalog, Stats, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to resolve root: %w", err)
	}
	if !filesystem.IsDir(root) {
		return nil, Stats{}, &filesystem.ReadError{Path: root, Op: "walk", Err: errors.New("not a directory")}
	}

	b.logger.Debug("Cataloging components", logger.F("root", root))

	files, err := filesystem.DiscoverSources(ctx, root, filesystem.SourceDiscoveryOptions{
		Extensions: b.opts.Extensions,
		SkipDirs:   b.opts.SkipDirs,
	})
	if err != nil {
		return nil, Stats{}, err
	}

	cat := make(Catalog)
	stats := Stats{Files: len(files)}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}

		rec, err := b.extractor.ExtractFile(ctx, path)
		if err != nil {
			var parseErr *extractor.ParseError
			if b.opts.SkipUnparsable && errors.As(err, &parseErr) {
				b.logger.Warn("Skipping unparsable file",
					logger.F("path", path),
					logger.F("error", parseErr.Err))
				stats.Unparsable++
				continue
			}
			return nil, Stats{}, fmt.Errorf("failed to catalog %s: %w", path, err)
		}

		if !rec.HasComponents() {
			continue
		}

		cat[path] = rec
		stats.Cataloged++
		stats.Components += len(rec.Components)
		b.logger.Debug("Cataloged file",
			logger.F("path", path),
			logger.F("components", len(rec.Components)))
	}

	b.logger.Info("Catalog built",
		logger.F("files", stats.Files),
		logger.F("components", stats.Components))

	return cat, stats, nil
}
