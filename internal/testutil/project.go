package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestProject represents a temporary front-end project for testing
type TestProject struct {
	Root string
	Name string
	t    *testing.T
}

// NewTestProject creates a temporary project directory
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	p := &TestProject{
		Root: t.TempDir(),
		Name: name,
		t:    t,
	}
	if err := os.MkdirAll(p.Dir(), 0755); err != nil {
		t.Fatalf("failed to create project dir: %v", err)
	}
	return p
}

// Dir is the project directory (Root/Name).
func (p *TestProject) Dir() string {
	return filepath.Join(p.Root, p.Name)
}

// Path returns the absolute path of a project-relative path.
func (p *TestProject) Path(rel string) string {
	return filepath.Join(p.Dir(), filepath.FromSlash(rel))
}

// WriteFile writes content to a project-relative path, creating parents.
func (p *TestProject) WriteFile(rel, content string) {
	p.t.Helper()

	full := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		p.t.Fatalf("failed to create %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		p.t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// WriteTree writes every file of tree, in path order.
func (p *TestProject) WriteTree(tree map[string]string) {
	p.t.Helper()

	paths := make([]string, 0, len(tree))
	for rel := range tree {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	for _, rel := range paths {
		p.WriteFile(rel, tree[rel])
	}
}

// FileExists checks if a file exists in the project
func (p *TestProject) FileExists(rel string) bool {
	p.t.Helper()

	_, err := os.Stat(p.Path(rel))
	return err == nil
}

// ReadFile reads a file from the project
func (p *TestProject) ReadFile(rel string) (string, error) {
	p.t.Helper()

	content, err := os.ReadFile(p.Path(rel))
	return string(content), err
}
