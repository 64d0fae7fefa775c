package options_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucent-lang/lucent/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := options.Default()
	assert.True(t, opts.WithColors)
	assert.Equal(t, options.NoOptimization, opts.CompilationPhase)
}

func TestCompilationPhaseString(t *testing.T) {
	assert.Equal(t, "parse", options.Parse.String())
	assert.Equal(t, "O3", options.O3.String())
	assert.Contains(t, options.CompilationPhase(99).String(), "CompilationPhase")
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	toml := `
[project]
name = "demo"

[source]
load_paths = ["./src", "./lib"]

[compile]
phase = "analysis"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lucent.toml"), []byte(toml), 0644))

	cfg, err := options.LoadProjectConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, []string{"./src", "./lib"}, cfg.Source.LoadPaths)
	assert.Equal(t, options.Analysis, cfg.Phase())
}

func TestLoadProjectConfigDefaultsLoadPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lucent.toml"), []byte("[project]\nname=\"demo\"\n"), 0644))

	cfg, err := options.LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, cfg.Source.LoadPaths)
}

func TestLoadProjectConfigUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	_, err := options.LoadProjectConfig(dir)
	assert.Error(t, err)
}

func TestFindAndLoadProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lucent.toml"), []byte("[project]\nname=\"demo\"\n"), 0644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := options.FindAndLoadProjectConfig(nested)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "demo", cfg.Project.Name)
}

func TestFindAndLoadProjectConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := options.FindAndLoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
