package fs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tajima/internal/adapters/fs"
	"go.trai.ch/tajima/internal/codec/dst"
	"go.trai.ch/tajima/internal/core/domain"
)

// writeDST writes a minimal valid DST file and returns its path.
func writeDST(t *testing.T, dir string) string {
	t.Helper()

	header := bytes.Repeat([]byte{' '}, dst.HeaderSize)
	copy(header, "LA:test\rST:1\r\x1a")
	stitches := []byte{
		0x01, 0x00, 0x03,
		0x00, 0x00, 0xF3,
	}

	path := filepath.Join(dir, "test.dst")
	require.NoError(t, os.WriteFile(path, append(header, stitches...), 0o644))
	return path
}

func TestSource_Read(t *testing.T) {
	t.Run("returns content and identity", func(t *testing.T) {
		path := writeDST(t, t.TempDir())
		source := fs.NewSource(true)

		data, id, err := source.Read(path)
		require.NoError(t, err)
		assert.Len(t, data, dst.HeaderSize+6)
		assert.Equal(t, int64(len(data)), id.Size)
		assert.NotZero(t, id.ModTime)
		assert.NotZero(t, id.Digest)
		assert.True(t, filepath.IsAbs(id.Path))
	})

	t.Run("digest disabled leaves identity digest zero", func(t *testing.T) {
		path := writeDST(t, t.TempDir())
		source := fs.NewSource(false)

		_, id, err := source.Read(path)
		require.NoError(t, err)
		assert.Zero(t, id.Digest)
	})

	t.Run("missing file is a read error", func(t *testing.T) {
		source := fs.NewSource(true)

		_, _, err := source.Read(filepath.Join(t.TempDir(), "missing.dst"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFileRead)
		assert.True(t, domain.IsIOError(err))
	})
}

func TestSource_ReadHeader(t *testing.T) {
	t.Run("reads only the header block", func(t *testing.T) {
		path := writeDST(t, t.TempDir())
		source := fs.NewSource(true)

		data, id, err := source.ReadHeader(path)
		require.NoError(t, err)
		assert.Len(t, data, dst.HeaderSize)
		// Size and mtime describe the whole file; no digest is computed
		// since the stitch bytes were never read.
		assert.Equal(t, int64(dst.HeaderSize+6), id.Size)
		assert.Zero(t, id.Digest)
	})

	t.Run("short file returns what is there", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "stub.dst")
		require.NoError(t, os.WriteFile(path, []byte("LA:x\r\x1a"), 0o644))
		source := fs.NewSource(true)

		data, _, err := source.ReadHeader(path)
		require.NoError(t, err)
		assert.Len(t, data, 6)
	})

	t.Run("missing file is a read error", func(t *testing.T) {
		source := fs.NewSource(true)

		_, _, err := source.ReadHeader(filepath.Join(t.TempDir(), "missing.dst"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFileRead)
	})
}

func TestSource_Identity(t *testing.T) {
	t.Run("changes when content changes", func(t *testing.T) {
		dir := t.TempDir()
		path := writeDST(t, dir)
		source := fs.NewSource(true)

		before, err := source.Identity(path)
		require.NoError(t, err)

		// Rewrite with different content of the same length.
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[dst.HeaderSize] = 0x02
		require.NoError(t, os.WriteFile(path, data, 0o644))

		after, err := source.Identity(path)
		require.NoError(t, err)
		assert.False(t, before.Matches(after))
		assert.NotEqual(t, before.Digest, after.Digest)
	})

	t.Run("stat only when digests are disabled", func(t *testing.T) {
		path := writeDST(t, t.TempDir())
		source := fs.NewSource(false)

		id, err := source.Identity(path)
		require.NoError(t, err)
		assert.Zero(t, id.Digest)
		assert.Positive(t, id.Size)
	})

	t.Run("mtime change invalidates without digests", func(t *testing.T) {
		path := writeDST(t, t.TempDir())
		source := fs.NewSource(false)

		before, err := source.Identity(path)
		require.NoError(t, err)

		newTime := time.Now().Add(2 * time.Second)
		require.NoError(t, os.Chtimes(path, newTime, newTime))

		after, err := source.Identity(path)
		require.NoError(t, err)
		assert.False(t, before.Matches(after))
	})
}
