package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tajima/internal/adapters/config"
	"go.trai.ch/tajima/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		loader := config.NewLoader(nil)

		settings, err := loader.Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(), settings)
	})

	t.Run("overrides defaults with file values", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `
version: 1
decode:
  workers: 2
  sequentialThreshold: 500
cache:
  capacity: 8
  contentDigest: false
`)

		loader := config.NewLoader(nil)
		settings, err := loader.Load(dir)
		require.NoError(t, err)

		assert.Equal(t, 2, settings.Workers)
		assert.Equal(t, 500, settings.SequentialThreshold)
		assert.Equal(t, 8, settings.CacheCapacity)
		assert.False(t, settings.ContentDigest)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "decode:\n  workers: 3\n")

		loader := config.NewLoader(nil)
		settings, err := loader.Load(dir)
		require.NoError(t, err)

		defaults := domain.DefaultSettings()
		assert.Equal(t, 3, settings.Workers)
		assert.Equal(t, defaults.SequentialThreshold, settings.SequentialThreshold)
		assert.Equal(t, defaults.ContentDigest, settings.ContentDigest)
	})

	t.Run("non-positive values are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "decode:\n  workers: -4\n  sequentialThreshold: 0\n")

		loader := config.NewLoader(nil)
		settings, err := loader.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(), settings)
	})

	t.Run("searches parent directories", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "decode:\n  workers: 7\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		loader := config.NewLoader(nil)
		settings, err := loader.Load(nested)
		require.NoError(t, err)
		assert.Equal(t, 7, settings.Workers)
	})

	t.Run("malformed yaml is a parse error with defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "decode: [unclosed")

		loader := config.NewLoader(nil)
		settings, err := loader.Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
		assert.Equal(t, domain.DefaultSettings(), settings)
	})
}
