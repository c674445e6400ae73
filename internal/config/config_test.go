package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 64, cfg.WordSize)
	assert.True(t, cfg.VerifierFatal)
	assert.True(t, cfg.Color)
}

func TestLoad_MissingFile_ReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFile_FillsOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simplc.yaml")
	writeFile(t, path, "word_size: 32\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.WordSize)
	assert.True(t, cfg.VerifierFatal, "fields the file omits keep their Default() value")
}

func TestLoad_InvalidWordSize_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simplc.yaml")
	writeFile(t, path, "word_size: 16\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MalformedYAML_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simplc.yaml")
	writeFile(t, path, "word_size: [not, a, scalar]\n")

	_, err := Load(path)
	require.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
}
