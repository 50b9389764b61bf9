package dst

import (
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// RecordSize is the fixed size of one stitch record.
	RecordSize = 3

	// flagJump marks a positioning move without thread.
	flagJump = 0x80

	// flagColorChange marks a stop with a thread color change.
	flagColorChange = 0x40

	// structuralBits are always set on a valid non-terminal record; their
	// absence signals corruption, not an unknown command.
	structuralBits = 0x03

	// endSentinel is the third byte of the terminal record. The canonical
	// end record is 00 00 F3.
	endSentinel = 0xF3
)

// bit extracts bit n of b as 0 or 1.
func bit(b byte, n uint) int { return int(b>>n) & 1 }

// decodeDX reconstructs the X displacement from the weighted bits of a
// record. Magnitudes 1 and 9 live in the first byte, 3 and 27 in the second,
// 81 in the third; each magnitude has a positive and a negative bit and all
// set bits are summed.
func decodeDX(b0, b1, b2 byte) int {
	return bit(b0, 0) - bit(b0, 1) +
		9*(bit(b0, 2)-bit(b0, 3)) +
		3*(bit(b1, 0)-bit(b1, 1)) +
		27*(bit(b1, 2)-bit(b1, 3)) +
		81*(bit(b2, 2)-bit(b2, 3))
}

// decodeDY is the Y counterpart of decodeDX, using the high nibbles.
func decodeDY(b0, b1, b2 byte) int {
	return bit(b0, 7) - bit(b0, 6) +
		9*(bit(b0, 5)-bit(b0, 4)) +
		3*(bit(b1, 7)-bit(b1, 6)) +
		27*(bit(b1, 5)-bit(b1, 4)) +
		81*(bit(b2, 5)-bit(b2, 4))
}

// DecodeStitches decodes a complete stitch stream. The stream must be a
// multiple of 3 bytes long and must contain an end record; records after the
// first end are ignored (first end wins). The returned sequence includes the
// terminal End command as its last element.
func DecodeStitches(data []byte) ([]domain.StitchCommand, error) {
	if len(data)%RecordSize != 0 {
		return nil, domain.With(domain.ErrStreamMisaligned, "length", len(data))
	}

	cmds, ended, err := DecodeRecords(data, 0)
	if err != nil {
		return nil, err
	}
	if !ended {
		return nil, domain.With(domain.ErrMissingEndRecord, "records", len(data)/RecordSize)
	}
	return cmds, nil
}

// DecodeRecords decodes whole records from data until the buffer is exhausted
// or an end record is reached, and reports whether it saw the end. It is the
// chunk primitive shared by sequential and parallel decoding: data need not
// contain the end record, but its length must be record-aligned. base is the
// stream-wide index of data's first record, used for diagnostics only.
func DecodeRecords(data []byte, base int) ([]domain.StitchCommand, bool, error) {
	cmds := make([]domain.StitchCommand, 0, len(data)/RecordSize)

	for i := 0; i+RecordSize <= len(data); i += RecordSize {
		b0, b1, b2 := data[i], data[i+1], data[i+2]
		dx := decodeDX(b0, b1, b2)
		dy := decodeDY(b0, b1, b2)

		// The end sentinel's own weighted bits cancel, so a zero sum
		// means a genuine terminal record rather than a move.
		if b2 == endSentinel && dx == 0 && dy == 0 {
			cmds = append(cmds, domain.End())
			return cmds, true, nil
		}

		if b2&structuralBits != structuralBits {
			return nil, false, domain.With(domain.ErrStructuralBits,
				"record", base+i/RecordSize,
				"offset", base*RecordSize+i,
				"byte", int(b2),
			)
		}

		switch {
		case b2&flagColorChange != 0:
			cmds = append(cmds, domain.ColorChange(int16(dx), int16(dy)))
		case b2&flagJump != 0:
			cmds = append(cmds, domain.Jump(int16(dx), int16(dy)))
		default:
			cmds = append(cmds, domain.Move(int16(dx), int16(dy)))
		}
	}

	return cmds, false, nil
}

// EncodeStitches renders a command sequence back into stitch records. The
// sequence must carry exactly one End command, as its last element, and every
// displacement must fit the ±121 unit range of one record.
func EncodeStitches(cmds []domain.StitchCommand) ([]byte, error) {
	if len(cmds) == 0 || cmds[len(cmds)-1].Op != domain.OpEnd {
		return nil, domain.ErrEndNotTerminal
	}

	out := make([]byte, 0, len(cmds)*RecordSize)
	for i, cmd := range cmds {
		if cmd.Op == domain.OpEnd {
			if i != len(cmds)-1 {
				return nil, domain.With(domain.ErrEndNotTerminal, "index", i)
			}
			out = append(out, 0x00, 0x00, endSentinel)
			continue
		}

		b0, b1, b2, err := encodeRecord(cmd)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		out = append(out, b0, b1, b2)
	}

	return out, nil
}

// encodeRecord encodes one non-terminal command using greedy ternary
// decomposition: each weight is claimed when the remaining magnitude exceeds
// half the sum of the smaller weights (thresholds 40, 13, 4, 1).
func encodeRecord(cmd domain.StitchCommand) (b0, b1, b2 byte, err error) {
	dx, dy := int(cmd.DX), int(cmd.DY)
	if dx < -domain.MaxDelta || dx > domain.MaxDelta {
		return 0, 0, 0, domain.With(domain.ErrDeltaOutOfRange, "axis", "x", "delta", dx)
	}
	if dy < -domain.MaxDelta || dy > domain.MaxDelta {
		return 0, 0, 0, domain.With(domain.ErrDeltaOutOfRange, "axis", "y", "delta", dy)
	}

	if dx > 40 {
		b2 |= 1 << 2
		dx -= 81
	}
	if dx < -40 {
		b2 |= 1 << 3
		dx += 81
	}
	if dy > 40 {
		b2 |= 1 << 5
		dy -= 81
	}
	if dy < -40 {
		b2 |= 1 << 4
		dy += 81
	}
	if dx > 13 {
		b1 |= 1 << 2
		dx -= 27
	}
	if dx < -13 {
		b1 |= 1 << 3
		dx += 27
	}
	if dy > 13 {
		b1 |= 1 << 5
		dy -= 27
	}
	if dy < -13 {
		b1 |= 1 << 4
		dy += 27
	}
	if dx > 4 {
		b0 |= 1 << 2
		dx -= 9
	}
	if dx < -4 {
		b0 |= 1 << 3
		dx += 9
	}
	if dy > 4 {
		b0 |= 1 << 5
		dy -= 9
	}
	if dy < -4 {
		b0 |= 1 << 4
		dy += 9
	}
	if dx > 1 {
		b1 |= 1 << 0
		dx -= 3
	}
	if dx < -1 {
		b1 |= 1 << 1
		dx += 3
	}
	if dy > 1 {
		b1 |= 1 << 7
		dy -= 3
	}
	if dy < -1 {
		b1 |= 1 << 6
		dy += 3
	}
	if dx > 0 {
		b0 |= 1 << 0
		dx--
	}
	if dx < 0 {
		b0 |= 1 << 1
		dx++
	}
	if dy > 0 {
		b0 |= 1 << 7
		dy--
	}
	if dy < 0 {
		b0 |= 1 << 6
		dy++
	}

	b2 |= structuralBits
	switch cmd.Op {
	case domain.OpJump:
		b2 |= flagJump
	case domain.OpColorChange:
		// Color changes conventionally carry the jump flag as well.
		b2 |= flagColorChange | flagJump
	}

	return b0, b1, b2, nil
}
