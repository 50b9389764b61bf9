// Package fs implements the pattern file source: reading DST files and
// capturing the identity fields the cache uses for invalidation.
package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tajima/internal/codec/dst"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source implements ports.PatternSource against the local file system.
type Source struct {
	digest bool
}

// NewSource creates a Source. When digest is true, file content is hashed
// into the identity so a rewrite that preserves size and mtime still
// invalidates the cache.
func NewSource(digest bool) *Source {
	return &Source{digest: digest}
}

// Read returns the full file content and the identity observed at read time.
// The identity's digest is computed from the bytes actually returned, so a
// file swapped mid-read cannot leave a matching identity behind.
func (s *Source) Read(path string) ([]byte, domain.FileIdentity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileRead, err), "path", path)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // Opening the user-named pattern file is the point
	if err != nil {
		return nil, domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileRead, err), "path", path)
	}

	id := domain.FileIdentity{
		Path:    abs,
		Size:    int64(len(data)),
		ModTime: info.ModTime().UnixNano(),
	}
	if s.digest {
		id.Digest = xxhash.Sum64(data)
	}
	return data, id, nil
}

// ReadHeader reads at most the header block, for metadata queries that skip
// stitch decoding. The identity's size and mtime describe the whole file but
// the digest stays zero: computing it would mean reading the stitch bytes
// this fast path exists to avoid.
func (s *Source) ReadHeader(path string) ([]byte, domain.FileIdentity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	f, err := os.Open(abs) //nolint:gosec // Opening the user-named pattern file is the point
	if err != nil {
		return nil, domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileRead, err), "path", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileStat, err), "path", path)
	}

	buf := make([]byte, dst.HeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileRead, err), "path", path)
	}

	return buf[:n], domain.FileIdentity{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}

// Identity stats the file, reading content only when digests are enabled.
func (s *Source) Identity(path string) (domain.FileIdentity, error) {
	if s.digest {
		_, id, err := s.Read(path)
		return id, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := os.Stat(abs)
	if err != nil {
		return domain.FileIdentity{}, zerr.With(domain.Wrap(domain.ErrFileStat, err), "path", path)
	}
	return domain.FileIdentity{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}
