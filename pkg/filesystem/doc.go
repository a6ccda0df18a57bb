// Package filesystem provides the raw filesystem primitives used by the
// catalog builder and the module resolver.
//
// # Overview
//
// Directory traversal respects skip rules common to front-end projects:
//   - node_modules, test and tests directories are never entered
//   - dot-prefixed files and directories are skipped
//   - caller patterns match a base name exactly or as a glob
//
// # Usage
//
// List every component source file in a project:
//
//	files, err := filesystem.DiscoverSources(ctx, root, filesystem.SourceDiscoveryOptions{
//	    SkipDirs: []string{"storybook", "__mocks__"},
//	})
//
// Probe the filesystem while resolving a module:
//
//	if filesystem.IsDir(target) {
//	    names, err := filesystem.ReadDirNames(target)
//	    ...
//	}
//
// Every failure is reported as a *ReadError carrying the path and the
// operation that failed.
package filesystem
