package resolver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nightjar/internal/testutil"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/logger"
)

func newResolver(t *testing.T, aliases *AliasConfig) *Resolver {
	t.Helper()
	r, err := NewResolver(aliases, extractor.NewExtractor(""), nil)
	require.NoError(t, err)
	return r.WithLogger(logger.NewSilentLogger())
}

func TestResolve_Relative(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":                   "export default () => null;\n",
		"src/component/Button.jsx":     "export default () => null;\n",
		"src/component/Card.tsx":       "export default () => null;\n",
		"src/component/Card.js":        "export default () => null;\n",
		"src/component/Icon.native.js": "export default () => null;\n",
	})
	r := newResolver(t, nil)
	from := p.Path("src/App.js")

	tests := []struct {
		specifier string
		want      string
	}{
		{"./component/Button", "src/component/Button.jsx"},
		{"./component/Card", "src/component/Card.js"},
		{"./component/Card.tsx", "src/component/Card.tsx"},
		{"./component/Icon", "src/component/Icon.native.js"},
		{"./component/Icon.native", "src/component/Icon.native.js"},
	}
	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.specifier, from, "X")
			require.NoError(t, err)
			assert.Equal(t, p.Path(tt.want), got)
		})
	}
}

func TestResolve_MissingRelativeIsError(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteFile("src/App.js", "")
	r := newResolver(t, nil)

	_, err := r.Resolve(context.Background(), "./Missing", p.Path("src/App.js"), "Missing")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "./Missing", resErr.Specifier)
	assert.Equal(t, p.Path("src/Missing"), resErr.Path)
	assert.Equal(t, []string{".js", ".jsx", ".ts", ".tsx", ".native.js"}, resErr.Extensions)
	assert.Contains(t, err.Error(), ".native.js")
}

func TestResolve_AssetImportIsExternal(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":   "",
		"src/logo.svg": "<svg/>",
	})
	r := newResolver(t, nil)

	got, err := r.Resolve(context.Background(), "./logo.svg", p.Path("src/App.js"), "Logo")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_BareSpecifierWithoutAliases(t *testing.T) {
	r := newResolver(t, &AliasConfig{Root: "/does/not/exist"})

	got, err := r.Resolve(context.Background(), "react-router", "/does/not/exist/src/App.js", "Link")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, r.CachedIndexes())

	_, ok := r.Rewrite("react-router", "/does/not/exist/src/App.js")
	assert.False(t, ok)
}

func TestRewrite_AliasRoundTrip(t *testing.T) {
	root := filepath.FromSlash("/project")
	r := newResolver(t, &AliasConfig{
		Root:    root,
		BaseURL: "src",
		Paths:   []PathAlias{{Pattern: "@components/*", Targets: []string{"src/component/*"}}},
	})

	got, ok := r.Rewrite("@components/Header", filepath.Join(root, "src", "component", "Done.js"))
	require.True(t, ok)
	assert.Equal(t, "../Header", got)
}

func TestRewrite_BaseURLOnly(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":              "",
		"src/component/Header.js": "",
	})
	r := newResolver(t, &AliasConfig{Root: p.Dir(), BaseURL: "src"})

	got, ok := r.Rewrite("component/Header", p.Path("src/App.js"))
	require.True(t, ok)
	assert.Equal(t, "../component/Header", got)

	// nothing under baseUrl, so resolution treats it as a package
	_, ok = r.Rewrite("react", p.Path("src/App.js"))
	assert.False(t, ok)
}

func TestRewrite_LastMatchWins(t *testing.T) {
	root := filepath.FromSlash("/project")
	r := newResolver(t, &AliasConfig{
		Root: root,
		Paths: []PathAlias{
			{Pattern: "@ui/*", Targets: []string{"src/legacy/*"}},
			{Pattern: "@ui/*", Targets: []string{"src/ui/*"}},
		},
	})

	got, ok := r.Rewrite("@ui/Button", filepath.Join(root, "src", "App.js"))
	require.True(t, ok)
	assert.Equal(t, "../ui/Button", got)
}

func TestResolve_AliasDirectoryWithReexportingIndex(t *testing.T) {
	p := testutil.NewTodoListProject(t)
	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	r := newResolver(t, cfg)

	got, err := r.Resolve(context.Background(), "@components/Header", p.Path("src/component/DoAction.js"), "Header")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/component/Header/Header.js"), got)
	assert.Equal(t, 1, r.CachedIndexes())

	// second lookup is served from the cache
	got, err = r.Resolve(context.Background(), "@components/Header", p.Path("src/component/DoAction.js"), "Header")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/component/Header/Header.js"), got)
	assert.Equal(t, 1, r.CachedIndexes())
}

func TestResolve_MissingAliasTargetIsError(t *testing.T) {
	p := testutil.NewTodoListProject(t)
	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	r := newResolver(t, cfg)

	_, err = r.Resolve(context.Background(), "@components/Nope", p.Path("src/App.js"), "Nope")
	var resErr *ResolutionError
	assert.ErrorAs(t, err, &resErr)
}

func TestResolve_BaseURLFallsBackToExternal(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":              "",
		"src/component/Header.js": "",
	})
	r := newResolver(t, &AliasConfig{Root: p.Dir(), BaseURL: "src"})

	got, err := r.Resolve(context.Background(), "component/Header", p.Path("src/App.js"), "Header")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/component/Header.js"), got)

	got, err = r.Resolve(context.Background(), "react", p.Path("src/App.js"), "React")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_IndexDeclaringComponent(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":        "",
		"src/Nav/index.jsx": "export const Nav = () => <nav />;\n",
		"src/Nav/index.js":  "export const Nav = () => <nav />;\n",
	})
	r := newResolver(t, nil)

	got, err := r.Resolve(context.Background(), "./Nav", p.Path("src/App.js"), "Nav")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/Nav/index.js"), got, "index.js precedes index.jsx")
}

func TestResolve_IndexImportThenExport(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js": "",
		"src/ui/index.js": `import Button from './Button';
import { Card as BaseCard } from './Card';
export { Button, BaseCard as Card };
`,
		"src/ui/Button.js": "export default function Button() { return <button />; }\n",
		"src/ui/Card.js":   "export const Card = () => <section />;\n",
	})
	r := newResolver(t, nil)

	got, err := r.Resolve(context.Background(), "./ui", p.Path("src/App.js"), "Button")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/ui/Button.js"), got)

	got, err = r.Resolve(context.Background(), "./ui", p.Path("src/App.js"), "Card")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/ui/Card.js"), got)
}

func TestResolveImport_DefaultReexportedByName(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/index.js":            "",
		"src/components/index.js": "export { default as Button } from './Button';\n",
		"src/components/Button.js": `const FancyButton = () => <b />;
export default FancyButton;
`,
	})
	r := newResolver(t, nil)

	got, err := r.ResolveImport(context.Background(), "./components", p.Path("src/index.js"), "Button", false)
	require.NoError(t, err)
	assert.Equal(t, Binding{Path: p.Path("src/components/Button.js"), Name: "Button", Default: true}, got)
}

func TestResolveImport_DefaultThroughIndex(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/index.js":       "",
		"src/Modal/index.js": "import Modal from './Modal';\nexport default Modal;\n",
		"src/Modal/Modal.js": "export default function Modal() { return <dialog />; }\n",
	})
	r := newResolver(t, nil)

	got, err := r.ResolveImport(context.Background(), "./Modal", p.Path("src/index.js"), "Dialog", true)
	require.NoError(t, err)
	assert.Equal(t, Binding{Path: p.Path("src/Modal/Modal.js"), Name: "Modal", Default: true}, got)
	assert.False(t, got.External())
}

func TestResolveImport_DefaultDeclaredInIndex(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/index.js":     "",
		"src/Nav/index.js": "const Navigation = () => <nav />;\nexport default Navigation;\n",
	})
	r := newResolver(t, nil)

	got, err := r.ResolveImport(context.Background(), "./Nav", p.Path("src/index.js"), "Nav", true)
	require.NoError(t, err)
	assert.Equal(t, Binding{Path: p.Path("src/Nav/index.js"), Name: "Navigation"}, got)
}

func TestResolveImport_DefaultFallsBackToName(t *testing.T) {
	p := testutil.NewTodoListProject(t)
	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	r := newResolver(t, cfg)

	got, err := r.ResolveImport(context.Background(), "@components/Header", p.Path("src/component/DoAction.js"), "Header", true)
	require.NoError(t, err)
	assert.Equal(t, Binding{Path: p.Path("src/component/Header/Header.js"), Name: "Header", Default: true}, got)
}

func TestResolveImport_External(t *testing.T) {
	r := newResolver(t, nil)

	got, err := r.ResolveImport(context.Background(), "react", "/x/index.js", "React", true)
	require.NoError(t, err)
	assert.True(t, got.External())
}

func TestResolve_PackageJSON(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":               "",
		"src/Footer/package.json":  `{"name": "Footer", "main": "Footer.js"}`,
		"src/Footer/Footer.js":     "export default () => null;\n",
		"src/Sidebar/package.json": `{"name": "side-bar", "main": "Sidebar.js"}`,
		"src/Sidebar/Sidebar.js":   "",
		"src/Toolbar/package.json": `{"name": "Toolbar"}`,
	})
	r := newResolver(t, nil)
	from := p.Path("src/App.js")

	got, err := r.Resolve(context.Background(), "./Footer", from, "Footer")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/Footer/Footer.js"), got)

	_, err = r.Resolve(context.Background(), "./Sidebar", from, "Sidebar")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "side-bar")

	_, err = r.Resolve(context.Background(), "./Toolbar", from, "Toolbar")
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "no main")
}

func TestResolve_EmptyDirectoryIsError(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":      "",
		"src/Empty/.keep": "",
	})
	r := newResolver(t, nil)

	_, err := r.Resolve(context.Background(), "./Empty", p.Path("src/App.js"), "Empty")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "no index")
}

func TestResolve_CircularReexport(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":     "",
		"src/a/index.js": "export { Loop } from '../b';\n",
		"src/b/index.js": "export { Loop } from '../a';\n",
	})
	r := newResolver(t, nil)

	_, err := r.Resolve(context.Background(), "./a", p.Path("src/App.js"), "Loop")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "circular re-export", resErr.Reason)
}

func TestResolve_Cancelled(t *testing.T) {
	r := newResolver(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "./App", "/x/index.js", "App")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_CustomExtensions(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"src/App.js":   "",
		"src/Card.js":  "",
		"src/Card.tsx": "",
	})
	r, err := NewResolver(nil, nil, []string{".tsx", ".js"})
	require.NoError(t, err)

	got, err := r.Resolve(context.Background(), "./Card", p.Path("src/App.js"), "Card")
	require.NoError(t, err)
	assert.Equal(t, p.Path("src/Card.tsx"), got)
	assert.Equal(t, []string{".tsx", ".js"}, r.Extensions())
}
