// Package dst implements the Tajima DST binary format: the fixed 512-byte
// ASCII metadata block and the 3-byte weighted-bit stitch records that follow
// it. The bit assignments are pinned to the public Tajima convention; the
// package's reference vectors live in stitch_test.go.
package dst

import (
	"bytes"
	"strings"

	"go.trai.ch/tajima/internal/core/domain"
)

const (
	// HeaderSize is the exact size of the metadata block at the start of
	// every DST file.
	HeaderSize = 512

	// headerEnd terminates the header text; the remainder of the block is
	// space padding.
	headerEnd = 0x1A

	// fieldSep separates CODE:value fields in the header text.
	fieldSep = '\r'
)

// ParseHeader parses the metadata block from the first 512 bytes of data.
// Fields are CODE:value pairs separated by carriage returns; unknown codes
// are preserved verbatim and in order, since producers are not strictly
// standardized. Lines without a colon are padding noise and are dropped.
func ParseHeader(data []byte) (*domain.Header, error) {
	if len(data) < HeaderSize {
		return nil, domain.With(domain.ErrHeaderTooShort,
			"expected", HeaderSize,
			"actual", len(data),
		)
	}

	block := data[:HeaderSize]
	if i := bytes.IndexByte(block, headerEnd); i >= 0 {
		block = block[:i]
	}

	h := domain.NewHeader()
	for line := range bytes.SplitSeq(block, []byte{fieldSep}) {
		text := strings.Trim(string(line), " \x00")
		if text == "" {
			continue
		}
		code, value, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		h.Set(strings.TrimSpace(code), strings.TrimSpace(value))
	}

	return h, nil
}

// SerializeHeader renders the header back into an exactly 512-byte block:
// CODE:value fields separated by carriage returns, the end-of-header
// sentinel, and space padding. The header is fixed-width, not extensible, so
// content beyond 512 bytes is an error rather than a truncation.
func SerializeHeader(h *domain.Header) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range h.Fields() {
		buf.WriteString(f.Code)
		buf.WriteByte(':')
		buf.WriteString(f.Value)
		buf.WriteByte(fieldSep)
	}
	buf.WriteByte(headerEnd)

	if buf.Len() > HeaderSize {
		return nil, domain.With(domain.ErrHeaderOverflow,
			"size", buf.Len(),
			"limit", HeaderSize,
		)
	}

	out := bytes.Repeat([]byte{' '}, HeaderSize)
	copy(out, buf.Bytes())
	return out, nil
}
