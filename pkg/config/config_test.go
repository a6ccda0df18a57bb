package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  entry: src/main.tsx
analysis:
  skip: [stories, "legacy-*"]
  precise_guard: true
report:
  format: markdown
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Root)
	assert.Equal(t, "src/main.tsx", cfg.Project.Entry)
	assert.Equal(t, "ReactDOM.render", cfg.Project.RootComponent)
	assert.Equal(t, []string{"stories", "legacy-*"}, cfg.Analysis.Skip)
	assert.True(t, cfg.Analysis.PreciseGuard)
	assert.Equal(t, []string{".js", ".jsx", ".ts", ".tsx", ".native.js"}, cfg.Analysis.Extensions)
	assert.Equal(t, "markdown", cfg.Report.Format)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("project: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Project.Entry = "src/main.jsx"
	cfg.Analysis.SkipUnparsable = true

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Project.Entry = ""
	cfg.Analysis.Extensions = []string{"jsx"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project.entry is required")
	assert.Contains(t, err.Error(), `extension "jsx" must start with a dot`)
}
