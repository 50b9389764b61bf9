// Package domain contains the core types of the Tajima stitch model.
package domain

// Op identifies the command carried by a single stitch record.
type Op uint8

const (
	// OpMove is a normal stitch: the needle moves and thread is laid.
	OpMove Op = iota
	// OpJump is a positioning move without laying thread.
	OpJump
	// OpColorChange stops the machine for a thread change, with an
	// accompanying move.
	OpColorChange
	// OpEnd is the terminal record of a pattern. It carries no displacement.
	OpEnd
)

// String returns the human-readable name of the operation.
func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpJump:
		return "jump"
	case OpColorChange:
		return "color-change"
	case OpEnd:
		return "end"
	default:
		return "unknown"
	}
}

// MaxDelta is the largest displacement a single record can encode per axis,
// in format units (0.1 mm): 1+3+9+27+81.
const MaxDelta = 121

// StitchCommand is one decoded stitch record: an operation plus a displacement
// relative to the previous needle position, in 0.1 mm units. Absolute
// positions are never stored; they are derived as a running sum.
type StitchCommand struct {
	Op Op
	DX int16
	DY int16
}

// Move returns a thread-laying stitch command.
func Move(dx, dy int16) StitchCommand { return StitchCommand{Op: OpMove, DX: dx, DY: dy} }

// Jump returns a positioning command that lays no thread.
func Jump(dx, dy int16) StitchCommand { return StitchCommand{Op: OpJump, DX: dx, DY: dy} }

// ColorChange returns a stop-and-change-color command.
func ColorChange(dx, dy int16) StitchCommand {
	return StitchCommand{Op: OpColorChange, DX: dx, DY: dy}
}

// End returns the terminal command.
func End() StitchCommand { return StitchCommand{Op: OpEnd} }
