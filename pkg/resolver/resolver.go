package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
)

// DefaultCacheSize bounds the number of parsed index files kept.
const DefaultCacheSize = 256

// Resolver maps an import specifier seen in a file to the absolute path of
// the module it names, the way the bundler of the project would.
type Resolver struct {
	aliases    *AliasConfig
	extensions []string
	extractor  *extractor.Extractor
	records    *lru.Cache[string, *extractor.FileRecord]
	logger     logger.Logger
}

// NewResolver creates a Resolver. A nil aliases means no alias rules; an
// empty extensions list means filesystem.DefaultExtensions.
func NewResolver(aliases *AliasConfig, ex *extractor.Extractor, extensions []string) (*Resolver, error) {
	if aliases == nil {
		aliases = &AliasConfig{}
	}
	if len(extensions) == 0 {
		extensions = filesystem.DefaultExtensions
	}
	if ex == nil {
		ex = extractor.NewExtractor("")
	}

	records, err := lru.New[string, *extractor.FileRecord](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create index cache: %w", err)
	}

	return &Resolver{
		aliases:    aliases,
		extensions: extensions,
		extractor:  ex,
		records:    records,
		logger:     logger.Default(),
	}, nil
}

// WithLogger returns a new Resolver with the specified logger. The index
// cache is shared.
func (r *Resolver) WithLogger(log logger.Logger) *Resolver {
	clone := *r
	clone.logger = log
	return &clone
}

// Extensions returns the extension preference order.
func (r *Resolver) Extensions() []string {
	return r.extensions
}

// Binding is the declaration an import lands on once every re-export has
// been followed.
type Binding struct {
	Path    string // absolute file path, empty for external packages
	Name    string // name to look up in Path
	Default bool   // Name is bound to the default export of Path
}

// External reports whether the import names a package outside the project.
func (b Binding) External() bool {
	return b.Path == ""
}

// Resolve returns the absolute path of the file that defines name as
// imported by specifier from the file importer. An empty path with a nil
// error means the specifier names an external package.
func (r *Resolver) Resolve(ctx context.Context, specifier, importer, name string) (string, error) {
	b, err := r.ResolveImport(ctx, specifier, importer, name, false)
	return b.Path, err
}

// ResolveImport resolves one import binding. isDefault marks a default
// import, in which case name is only the importer's local name. The
// returned Binding says whether the declaration finally reached is a
// default export, which changes across index files such as
// `export { default as Button } from './Button'`.
func (r *Resolver) ResolveImport(ctx context.Context, specifier, importer, name string, isDefault bool) (Binding, error) {
	return r.resolve(ctx, specifier, importer, name, isDefault, make(map[string]bool))
}

func (r *Resolver) resolve(ctx context.Context, specifier, importer, name string, isDefault bool, seen map[string]bool) (Binding, error) {
	if err := ctx.Err(); err != nil {
		return Binding{}, err
	}

	target, explicit, ok := r.target(specifier, importer)
	if !ok {
		r.logger.Debug("External import", logger.F("specifier", specifier))
		return Binding{}, nil
	}

	if !strings.HasPrefix(specifier, ".") {
		if rel, ok := relative(importer, target); ok {
			r.logger.Debug("Rewrote import",
				logger.F("specifier", specifier),
				logger.F("rewritten", rel))
		}
	}

	if seen[target] {
		return Binding{}, &ResolutionError{Specifier: specifier, Path: target, Name: name, Reason: "circular re-export"}
	}
	seen[target] = true

	return r.locate(ctx, specifier, target, name, isDefault, explicit, seen)
}

// target rewrites specifier to a filesystem path. explicit is false for
// baseUrl rewrites, which fall back to an external package when nothing
// exists on disk.
func (r *Resolver) target(specifier, importer string) (path string, explicit bool, ok bool) {
	if strings.HasPrefix(specifier, ".") {
		return filepath.Join(filepath.Dir(importer), specifier), true, true
	}
	if r.aliases.Empty() {
		return "", false, false
	}

	if abs, matched := r.aliasTarget(specifier); matched {
		return abs, true, true
	}
	if r.aliases.BaseURL != "" {
		abs := filepath.Join(r.aliases.Root, r.aliases.BaseURL, specifier)
		if filesystem.Exists(abs) || r.probe(abs) != "" {
			return abs, false, true
		}
	}
	return "", false, false
}

// aliasTarget applies every matching paths entry. When several patterns
// or targets match, the last substitution wins.
func (r *Resolver) aliasTarget(specifier string) (string, bool) {
	var out string
	matched := false
	for _, alias := range r.aliases.Paths {
		wildcard, ok := alias.match(specifier)
		if !ok {
			continue
		}
		for _, t := range alias.Targets {
			out = filepath.Join(r.aliases.Root, strings.Replace(t, "*", wildcard, 1))
			matched = true
		}
	}
	return out, matched
}

// Rewrite applies the alias rules to specifier the way Resolve does and
// returns the result relative to importer, e.g. "../Header". ok is false
// when the specifier is relative or stays an external package.
func (r *Resolver) Rewrite(specifier, importer string) (string, bool) {
	if strings.HasPrefix(specifier, ".") {
		return "", false
	}
	abs, _, ok := r.target(specifier, importer)
	if !ok {
		return "", false
	}
	return relative(importer, abs)
}

func relative(importer, abs string) (string, bool) {
	rel, err := filepath.Rel(importer, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (r *Resolver) locate(ctx context.Context, specifier, target, name string, isDefault, explicit bool, seen map[string]bool) (Binding, error) {
	if filesystem.IsDir(target) {
		return r.fromDirectory(ctx, specifier, target, name, isDefault, explicit, seen)
	}

	if filesystem.HasExtension(target, r.extensions) {
		return Binding{Path: target, Name: name, Default: isDefault}, nil
	}

	if found := r.probe(target); found != "" {
		return Binding{Path: found, Name: name, Default: isDefault}, nil
	}

	if filesystem.IsFile(target) {
		// Assets such as stylesheets or images are not components.
		r.logger.Debug("Import is not a source file", logger.F("path", target))
		return Binding{}, nil
	}

	if !explicit {
		return Binding{}, nil
	}
	return Binding{}, &ResolutionError{
		Specifier:  specifier,
		Path:       target,
		Name:       name,
		Reason:     "no file with a supported extension",
		Extensions: r.extensions,
	}
}

// probe looks for target+ext in the extension preference order.
func (r *Resolver) probe(target string) string {
	dir, base := filepath.Split(target)
	names, err := filesystem.ReadDirNames(dir)
	if err != nil {
		return ""
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, ext := range r.extensions {
		if present[base+ext] {
			return filepath.Join(dir, base+ext)
		}
	}
	return ""
}

func (r *Resolver) fromDirectory(ctx context.Context, specifier, dir, name string, isDefault, explicit bool, seen map[string]bool) (Binding, error) {
	index := r.probe(filepath.Join(dir, "index"))
	if index != "" {
		rec, err := r.record(ctx, index)
		if err != nil {
			return Binding{}, err
		}

		// A default import binds whatever the index exports as default,
		// whatever the importer calls it. Without a default export the
		// importer's name is looked up like a named import.
		if isDefault {
			if found, ok, err := r.followExport(ctx, rec, name, true, seen); ok || err != nil {
				return found, err
			}
		}
		if _, ok := rec.Component(name); ok {
			return Binding{Path: index, Name: name, Default: isDefault}, nil
		}
		if found, ok, err := r.followExport(ctx, rec, name, false, seen); ok || err != nil {
			return found, err
		}
	}

	pkgJSON := filepath.Join(dir, "package.json")
	if filesystem.IsFile(pkgJSON) {
		return r.fromManifest(ctx, specifier, pkgJSON, name, isDefault, seen)
	}

	if index != "" {
		r.logger.Debug("Index does not provide component",
			logger.F("index", index),
			logger.F("component", name))
		return Binding{Path: index, Name: name, Default: isDefault}, nil
	}
	if !explicit {
		return Binding{}, nil
	}
	return Binding{}, &ResolutionError{
		Specifier:  specifier,
		Path:       dir,
		Name:       name,
		Reason:     "directory has no index file or package.json",
		Extensions: r.extensions,
	}
}

// followExport finds the export of an index file that publishes name, or
// its default export when isDefault is set, and resolves the declaration
// behind it.
func (r *Resolver) followExport(ctx context.Context, rec *extractor.FileRecord, name string, isDefault bool, seen map[string]bool) (Binding, bool, error) {
	for _, exp := range rec.Exports {
		if !publishes(exp, name, isDefault) {
			continue
		}

		if exp.Source != "" {
			next, nextDefault := exp.Local, false
			if next == "default" {
				next, nextDefault = exp.Exported, true
			}
			found, err := r.resolve(ctx, exp.Source, rec.Path, next, nextDefault, seen)
			return found, true, err
		}

		if _, ok := rec.Component(exp.Local); ok {
			return Binding{Path: rec.Path, Name: exp.Local}, true, nil
		}

		imp, spec, ok := rec.ImportOf(exp.Local)
		if !ok {
			continue
		}
		next, nextDefault := exp.Local, false
		switch spec.Kind {
		case extractor.DefaultImport:
			nextDefault = true
		case extractor.NamedImport:
			if spec.Imported == "default" {
				nextDefault = true
			} else {
				next = spec.Imported
			}
		}
		found, err := r.resolve(ctx, imp.Source, rec.Path, next, nextDefault, seen)
		return found, true, err
	}
	return Binding{}, false, nil
}

func publishes(exp extractor.ExportEdge, name string, isDefault bool) bool {
	if isDefault {
		return exp.Default || exp.Exported == "default"
	}
	return exp.Local == name || exp.Exported == name
}

type manifest struct {
	Name string `json:"name"`
	Main string `json:"main"`
}

func (r *Resolver) fromManifest(ctx context.Context, specifier, path, name string, isDefault bool, seen map[string]bool) (Binding, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return Binding{}, err
	}

	var m manifest
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return Binding{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if m.Name != name {
		return Binding{}, &ResolutionError{
			Specifier: specifier,
			Path:      path,
			Name:      name,
			Reason:    fmt.Sprintf("package.json name %q does not match", m.Name),
		}
	}
	if m.Main == "" {
		return Binding{}, &ResolutionError{Specifier: specifier, Path: path, Name: name, Reason: "package.json has no main entry"}
	}

	target := filepath.Join(filepath.Dir(path), m.Main)
	if seen[target] {
		return Binding{}, &ResolutionError{Specifier: specifier, Path: target, Name: name, Reason: "circular re-export"}
	}
	seen[target] = true
	return r.locate(ctx, specifier, target, name, isDefault, true, seen)
}

// record extracts an index file, caching the result.
func (r *Resolver) record(ctx context.Context, path string) (*extractor.FileRecord, error) {
	if rec, ok := r.records.Get(path); ok {
		return rec, nil
	}

	rec, err := r.extractor.ExtractFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", path, err)
	}
	r.records.Add(path, rec)
	return rec, nil
}

// CachedIndexes reports how many index files are currently cached.
func (r *Resolver) CachedIndexes() int {
	return r.records.Len()
}
