package ports

import "go.trai.ch/tajima/internal/core/domain"

// PatternSource reads pattern files and captures their cache identity.
// Reads happen before decoding starts so decode workers stay CPU-bound.
type PatternSource interface {
	// Read returns the full file content together with the identity
	// observed at read time.
	Read(path string) ([]byte, domain.FileIdentity, error)

	// ReadHeader returns only the first 512 bytes, for fast metadata
	// queries that skip stitch decoding.
	ReadHeader(path string) ([]byte, domain.FileIdentity, error)

	// Identity stats the file without reading its content. The returned
	// identity carries a content digest only when digests are enabled.
	Identity(path string) (domain.FileIdentity, error)
}
