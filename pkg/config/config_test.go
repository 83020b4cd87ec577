package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fnr/pkg/config"
	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BuiltInDefaults(t *testing.T) {
	s, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.False(t, s.CaseSensitive)
	assert.False(t, s.Hidden)
	assert.True(t, s.FollowSymlinks)
	assert.True(t, s.RespectGitignore)
	assert.True(t, s.Recursive)
	assert.True(t, s.Interactive)
	assert.True(t, s.Color)
}

func TestLoad_TomlOverride(t *testing.T) {
	dir := t.TempDir()
	content := "case-sensitive = true\nhidden = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fnr.toml"), []byte(content), 0o644))

	s, err := config.Load(dir)
	require.NoError(t, err)

	assert.True(t, s.CaseSensitive)
	assert.True(t, s.Hidden)
	// Untouched keys keep their defaults
	assert.True(t, s.FollowSymlinks)
}

func TestLoad_YamlOverride(t *testing.T) {
	dir := t.TempDir()
	content := "respect-gitignore: false\ncolor: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fnr.yaml"), []byte(content), 0o644))

	s, err := config.Load(dir)
	require.NoError(t, err)

	assert.False(t, s.RespectGitignore)
	assert.False(t, s.Color)
}

func TestLoad_TomlWinsOverYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fnr.toml"), []byte("hidden = true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fnr.yaml"), []byte("hidden: false\ncolor: false\n"), 0o644))

	s, err := config.Load(dir)
	require.NoError(t, err)

	assert.True(t, s.Hidden)
	// The yaml file is not consulted at all once toml is found
	assert.True(t, s.Color)
}

func TestLoad_BadToml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fnr.toml"), []byte("hidden = {{"), 0o644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fnr.toml")

	require.NoError(t, config.WriteDefault(path, false))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "case-sensitive = false")
	assert.Contains(t, string(content), "respect-gitignore = true")

	// Refuses to clobber without force
	err = config.WriteDefault(path, false)
	require.Error(t, err)
	require.NoError(t, config.WriteDefault(path, true))
}
