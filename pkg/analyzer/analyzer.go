package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/simonhull/firebird-suite/nightjar/pkg/catalog"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/ghost"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
	"github.com/simonhull/firebird-suite/nightjar/pkg/resolver"
	"github.com/simonhull/firebird-suite/nightjar/pkg/walker"
)

// Options describes one ghost search. Root and Entry may be relative to
// the working directory.
type Options struct {
	Root           string
	Entry          string
	RootComponent  string   // Component the walk starts from (default: RootCall)
	RootCall       string   // Call that mounts the application (default: ReactDOM.render)
	SkipDirs       []string // Extra directory names or globs to skip
	Extensions     []string // Source extensions in resolution order
	SkipUnparsable bool
	PreciseGuard   bool
}

// Result is the outcome of a ghost search
type Result struct {
	Root            string
	Entry           string
	AliasConfig     string // jsconfig/tsconfig used, if any
	Ghosts          []ghost.Ghost
	TotalComponents int
	Used            []walker.Usage
	Edges           []walker.Edge
	Stats           catalog.Stats
	Catalog         catalog.Catalog
}

// Summary is the exported form of a Result.
type Summary struct {
	Ghosts          []ghost.Ghost `json:"ghosts"`
	TotalComponents int           `json:"totalComponents"`
}

// Summary returns the {ghosts, totalComponents} view of r.
func (r *Result) Summary() Summary {
	return Summary{Ghosts: r.Ghosts, TotalComponents: r.TotalComponents}
}

// Analyzer finds ghost components in React projects
type Analyzer struct {
	logger logger.Logger
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{logger: logger.Default()}
}

// WithLogger returns a new Analyzer with the specified logger
func (a *Analyzer) WithLogger(log logger.Logger) *Analyzer {
	return &Analyzer{logger: log}
}

// SearchGhost catalogs the project, walks it from the entry point and
// reports the components never reached. The catalog is complete before
// the walk starts. Partial results are never returned.
func (a *Analyzer) SearchGhost(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	entry, err := filepath.Abs(opts.Entry)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry: %w", err)
	}
	if !filesystem.IsDir(root) {
		return nil, &filesystem.ReadError{Path: root, Op: "stat", Err: errors.New("not a directory")}
	}
	if !filesystem.IsFile(entry) {
		return nil, &filesystem.ReadError{Path: entry, Op: "stat", Err: fs.ErrNotExist}
	}

	a.logger.Info("Searching ghosts",
		logger.F("root", root),
		logger.F("entry", entry),
		logger.F("component", opts.RootComponent))

	aliases, err := resolver.LoadAliasConfig(root)
	if err != nil {
		return nil, err
	}
	if aliases.Source != "" {
		a.logger.Debug("Loaded aliases",
			logger.F("config", aliases.Source),
			logger.F("paths", len(aliases.Paths)))
	}

	ex := extractor.NewExtractor(opts.RootCall)
	res, err := resolver.NewResolver(aliases, ex, opts.Extensions)
	if err != nil {
		return nil, err
	}

	cat, stats, err := catalog.NewBuilder(ex, catalog.Options{
		SkipDirs:       opts.SkipDirs,
		Extensions:     opts.Extensions,
		SkipUnparsable: opts.SkipUnparsable,
	}).WithLogger(a.logger).Build(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("cataloging components: %w", err)
	}

	w := walker.NewWalker(cat, res.WithLogger(a.logger), walker.Options{PreciseGuard: opts.PreciseGuard})
	used, err := w.WithLogger(a.logger).Walk(ctx, entry, opts.RootComponent)
	if err != nil {
		return nil, fmt.Errorf("walking usage graph: %w", err)
	}

	ghosts := ghost.Detect(cat, used)

	a.logger.Info("Ghost search complete",
		logger.F("components", cat.TotalComponents()),
		logger.F("used", used.Len()),
		logger.F("ghosts", len(ghosts)))

	return &Result{
		Root:            root,
		Entry:           entry,
		AliasConfig:     aliases.Source,
		Ghosts:          ghosts,
		TotalComponents: cat.TotalComponents(),
		Used:            used.Items(),
		Edges:           used.Edges(),
		Stats:           stats,
		Catalog:         cat,
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.RootCall == "" {
		opts.RootCall = extractor.DefaultRootCall
	}
	if opts.RootComponent == "" {
		opts.RootComponent = opts.RootCall
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = filesystem.DefaultExtensions
	}
	return opts
}
