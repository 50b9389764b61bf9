package ports

import (
	"context"

	"go.trai.ch/tajima/internal/core/domain"
)

// StitchDecoder decodes a raw stitch byte stream into commands. The output is
// defined to equal the sequential decode of the same bytes in original record
// order, whatever the implementation's concurrency strategy.
type StitchDecoder interface {
	Decode(ctx context.Context, data []byte) ([]domain.StitchCommand, error)
}
