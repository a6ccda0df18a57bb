package walker

import (
	"context"
	"fmt"

	"github.com/simonhull/firebird-suite/nightjar/pkg/catalog"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
	"github.com/simonhull/firebird-suite/nightjar/pkg/resolver"
)

// Resolver maps an import binding to the declaration it lands on. An
// external Binding means the specifier names a package.
type Resolver interface {
	ResolveImport(ctx context.Context, specifier, importer, name string, isDefault bool) (resolver.Binding, error)
}

// Options configures the walk
type Options struct {
	// PreciseGuard keys the cycle guard by (path, component) instead of
	// path alone, so a file entered under a second component name is
	// expanded again.
	PreciseGuard bool
}

// Walker computes the components reachable from an entry point.
type Walker struct {
	catalog  catalog.Catalog
	resolver Resolver
	opts     Options
	logger   logger.Logger
}

// NewWalker creates a Walker over a completed catalog
func NewWalker(cat catalog.Catalog, res Resolver, opts Options) *Walker {
	return &Walker{
		catalog:  cat,
		resolver: res,
		opts:     opts,
		logger:   logger.Default(),
	}
}

// WithLogger returns a new Walker with the specified logger
func (w *Walker) WithLogger(log logger.Logger) *Walker {
	return &Walker{
		catalog:  w.catalog,
		resolver: w.resolver,
		opts:     w.opts,
		logger:   log,
	}
}

// candidate is a tag bound to an import, waiting to be resolved.
type candidate struct {
	name      string
	source    string
	isDefault bool
	from      Usage
}

// walk holds the accumulators of one Walk call.
type walk struct {
	*Walker
	used    *UsedSet
	visited map[string]bool
}

// Walk starts at the component rootName of entryFile and returns every
// component reached by following rendered tags. Each call starts from
// empty accumulators.
func (w *Walker) Walk(ctx context.Context, entryFile, rootName string) (*UsedSet, error) {
	if _, ok := w.catalog.Lookup(entryFile); !ok {
		w.logger.Warn("Entry file declares no components", logger.F("entry", entryFile))
	}

	s := &walk{
		Walker:  w,
		used:    NewUsedSet(),
		visited: make(map[string]bool),
	}
	if err := s.visit(ctx, entryFile, rootName, false, nil); err != nil {
		return nil, err
	}

	w.logger.Debug("Walk complete",
		logger.F("used", s.used.Len()),
		logger.F("edges", len(s.used.edges)))

	return s.used, nil
}

func (s *walk) guardKey(path, name string) string {
	if s.opts.PreciseGuard {
		return path + "\x00" + name
	}
	return path
}

func (s *walk) visit(ctx context.Context, path, name string, isDefault bool, from *Usage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec, ok := s.catalog.Lookup(path)
	if !ok {
		s.logger.Debug("Not cataloged", logger.F("path", path), logger.F("name", name))
		return nil
	}

	local := effectiveName(rec, name, isDefault)
	comp, found := rec.Component(local)
	u := Usage{Name: local, Path: path}

	key := s.guardKey(path, local)
	if s.visited[key] {
		if found && from != nil && s.used.Contains(local, path) {
			s.used.Link(*from, u)
		}
		return nil
	}
	s.visited[key] = true

	if !found {
		s.logger.Debug("Leaf usage", logger.F("path", path), logger.F("name", local))
		return nil
	}

	s.used.Add(u)
	if from != nil {
		s.used.Link(*from, u)
	}

	remaining := make(map[string]bool, len(rec.Components))
	for _, c := range rec.Components {
		if c.Info.Name != local {
			remaining[c.Info.Name] = true
		}
	}

	var queue []candidate
	s.expand(rec, path, comp, u, remaining, &queue)

	for _, c := range queue {
		target, err := s.resolver.ResolveImport(ctx, c.source, path, c.name, c.isDefault)
		if err != nil {
			return fmt.Errorf("failed to resolve %s imported by %s: %w", c.name, path, err)
		}
		if target.External() {
			continue
		}

		parent := c.from
		if err := s.visit(ctx, target.Path, target.Name, target.Default, &parent); err != nil {
			return err
		}
	}

	return nil
}

// expand records same-file siblings rendered by comp and queues tags bound
// to imports. remaining shrinks with every sibling taken.
func (s *walk) expand(rec *extractor.FileRecord, path string, comp *extractor.Component, from Usage, remaining map[string]bool, queue *[]candidate) {
	for _, tag := range comp.Tags {
		if remaining[tag] {
			delete(remaining, tag)
			sibling, _ := rec.Component(tag)
			u := Usage{Name: tag, Path: path}
			s.used.Add(u)
			s.used.Link(from, u)
			s.visited[s.guardKey(path, tag)] = true
			s.expand(rec, path, sibling, u, remaining, queue)
			continue
		}

		imp, spec, ok := rec.ImportOf(tag)
		if !ok {
			continue
		}

		c := candidate{name: tag, source: imp.Source, from: from}
		switch spec.Kind {
		case extractor.DefaultImport:
			c.isDefault = true
		case extractor.NamedImport:
			if spec.Imported == "default" {
				c.isDefault = true
			} else {
				c.name = spec.Imported
			}
		}
		if !queued(*queue, c) {
			*queue = append(*queue, c)
		}
	}
}

func queued(queue []candidate, c candidate) bool {
	for _, q := range queue {
		if q.source == c.source && q.name == c.name && q.from == c.from {
			return true
		}
	}
	return false
}

// effectiveName maps the name an importer uses to the name declared in rec.
func effectiveName(rec *extractor.FileRecord, name string, isDefault bool) string {
	if isDefault {
		if e, ok := rec.DefaultExport(); ok {
			return e.Local
		}
		return name
	}
	if e, ok := rec.ExportedAs(name); ok && e.Source == "" && e.Local != name {
		return e.Local
	}
	return name
}
