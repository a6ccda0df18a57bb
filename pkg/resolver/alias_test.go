package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nightjar/internal/testutil"
)

func TestParseAliasConfig_PreservesOrder(t *testing.T) {
	cfg, err := ParseAliasConfig("/project", []byte(`{
  /* generated by create-react-app */
  "compilerOptions": {
    "baseUrl": ".",
    "paths": {
      "@z/*": ["src/z/*"],
      "@a/*": ["src/a/*", "src/a-legacy/*"], // two targets
      "@m": ["src/m/index"],
    },
  },
  "include": ["src"],
}`))
	require.NoError(t, err)

	assert.Equal(t, "/project", cfg.Root)
	assert.Equal(t, ".", cfg.BaseURL)
	assert.Equal(t, []PathAlias{
		{Pattern: "@z/*", Targets: []string{"src/z/*"}},
		{Pattern: "@a/*", Targets: []string{"src/a/*", "src/a-legacy/*"}},
		{Pattern: "@m", Targets: []string{"src/m/index"}},
	}, cfg.Paths)
	assert.False(t, cfg.Empty())
}

func TestParseAliasConfig_NoCompilerOptions(t *testing.T) {
	cfg, err := ParseAliasConfig("/project", []byte(`{"exclude": ["node_modules"]}`))
	require.NoError(t, err)
	assert.True(t, cfg.Empty())

	cfg, err = ParseAliasConfig("/project", []byte(`{"compilerOptions": {"paths": null}}`))
	require.NoError(t, err)
	assert.True(t, cfg.Empty())
}

func TestParseAliasConfig_Invalid(t *testing.T) {
	_, err := ParseAliasConfig("/project", []byte(`{"compilerOptions": `))
	assert.Error(t, err)

	_, err = ParseAliasConfig("/project", []byte(`{"compilerOptions": {"paths": ["src/*"]}}`))
	assert.Error(t, err)

	_, err = ParseAliasConfig("/project", []byte(`{"compilerOptions": {"paths": {"@a/*": "src/a/*"}}}`))
	assert.Error(t, err)
}

func TestLoadAliasConfig_PrefersJSConfig(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteTree(map[string]string{
		"jsconfig.json": `{"compilerOptions": {"baseUrl": "src"}}`,
		"tsconfig.json": `{"compilerOptions": {"baseUrl": "lib"}}`,
	})

	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.BaseURL)
	assert.Equal(t, p.Path("jsconfig.json"), cfg.Source)
}

func TestLoadAliasConfig_TSConfig(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteFile("tsconfig.json", `{
  // strict mode
  "compilerOptions": { "strict": true, "paths": { "~/*": ["./src/*"] } }
}`)

	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	assert.Equal(t, []PathAlias{{Pattern: "~/*", Targets: []string{"./src/*"}}}, cfg.Paths)
}

func TestLoadAliasConfig_Absent(t *testing.T) {
	p := testutil.NewTestProject(t, "app")

	cfg, err := LoadAliasConfig(p.Dir())
	require.NoError(t, err)
	assert.True(t, cfg.Empty())
	assert.Equal(t, p.Dir(), cfg.Root)
	assert.Empty(t, cfg.Source)
}

func TestLoadAliasConfig_Malformed(t *testing.T) {
	p := testutil.NewTestProject(t, "app")
	p.WriteFile("jsconfig.json", `{ "compilerOptions": { "baseUrl": }`)

	_, err := LoadAliasConfig(p.Dir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsconfig.json")
}

func TestPathAlias_Match(t *testing.T) {
	tests := []struct {
		pattern   string
		specifier string
		wildcard  string
		ok        bool
	}{
		{"@components/*", "@components/Header", "Header", true},
		{"@components/*", "@components/forms/Input", "forms/Input", true},
		{"@components/*", "@comp/Header", "", false},
		{"@icons", "@icons", "", true},
		{"@icons", "@icons/Star", "", false},
		{"*.svg", "logo.svg", "logo", true},
		{"*", "anything", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.specifier, func(t *testing.T) {
			got, ok := PathAlias{Pattern: tt.pattern}.match(tt.specifier)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wildcard, got)
		})
	}
}
