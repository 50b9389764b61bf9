package domain

import (
	"math"
	"sync"
)

// Point is an absolute needle position in 0.1 mm units.
type Point struct {
	X int
	Y int
}

// Bounds is the bounding box of the accumulated needle positions.
type Bounds struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() int { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// ColorSegment is a half-open range [Start, End) of command indices stitched
// with a single thread color. A color-change command begins a new segment.
type ColorSegment struct {
	Start int
	End   int
}

// Stats holds the derived statistics of a decoded pattern.
type Stats struct {
	// Records is the total number of commands, including the terminal end.
	Records int
	// Stitches is the number of thread-laying moves.
	Stitches int
	// Jumps is the number of positioning moves.
	Jumps int
	// ColorChanges is the number of color-change commands.
	ColorChanges int
	// ThreadLength is the summed Euclidean length of thread-laying moves,
	// in 0.1 mm units.
	ThreadLength float64
}

// Pattern owns one decoded header and one ordered stitch sequence. It is
// immutable after construction; derived views are computed once on first
// access and cached for the pattern's lifetime.
type Pattern struct {
	header   *Header
	commands []StitchCommand

	derive    sync.Once
	positions []Point
	bounds    Bounds
	stats     Stats
	segments  []ColorSegment
}

// NewPattern constructs a pattern from a decoded header and stitch sequence.
// The pattern takes ownership of both arguments; callers must not modify them
// afterwards.
func NewPattern(header *Header, commands []StitchCommand) *Pattern {
	if header == nil {
		header = NewHeader()
	}
	return &Pattern{header: header, commands: commands}
}

// Header returns the pattern's header. Read-only by convention.
func (p *Pattern) Header() *Header { return p.header }

// Commands returns the decoded stitch sequence, terminal end included.
// Callers must not modify the returned slice.
func (p *Pattern) Commands() []StitchCommand { return p.commands }

// Stats returns the derived statistics.
func (p *Pattern) Stats() Stats {
	p.deriveViews()
	return p.stats
}

// Bounds returns the bounding box of the accumulated needle positions.
func (p *Pattern) Bounds() Bounds {
	p.deriveViews()
	return p.bounds
}

// Positions returns the absolute needle position after each command, as a
// prefix sum of displacements starting at the origin. The slice is indexed by
// command; callers must not modify it.
func (p *Pattern) Positions() []Point {
	p.deriveViews()
	return p.positions
}

// PositionAt returns the absolute needle position after command i.
func (p *Pattern) PositionAt(i int) (Point, bool) {
	p.deriveViews()
	if i < 0 || i >= len(p.positions) {
		return Point{}, false
	}
	return p.positions[i], true
}

// Segments returns the per-color command ranges, delimited by color-change
// commands. The terminal end command belongs to no segment.
func (p *Pattern) Segments() []ColorSegment {
	p.deriveViews()
	return p.segments
}

// deriveViews computes every derived view in a single pass over the commands.
func (p *Pattern) deriveViews() {
	p.derive.Do(func() {
		p.positions = make([]Point, len(p.commands))
		p.stats.Records = len(p.commands)

		x, y := 0, 0
		segStart := 0
		body := 0 // commands before the terminal end
		boxSeeded := false

		for i, cmd := range p.commands {
			x += int(cmd.DX)
			y += int(cmd.DY)
			p.positions[i] = Point{X: x, Y: y}

			switch cmd.Op {
			case OpMove:
				p.stats.Stitches++
				p.stats.ThreadLength += math.Hypot(float64(cmd.DX), float64(cmd.DY))
			case OpJump:
				p.stats.Jumps++
			case OpColorChange:
				p.stats.ColorChanges++
				if i > segStart {
					p.segments = append(p.segments, ColorSegment{Start: segStart, End: i})
				}
				segStart = i
			case OpEnd:
				continue
			}
			body = i + 1

			if !boxSeeded {
				p.bounds = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
				boxSeeded = true
				continue
			}
			p.bounds.MinX = min(p.bounds.MinX, x)
			p.bounds.MinY = min(p.bounds.MinY, y)
			p.bounds.MaxX = max(p.bounds.MaxX, x)
			p.bounds.MaxY = max(p.bounds.MaxY, y)
		}

		if body > segStart {
			p.segments = append(p.segments, ColorSegment{Start: segStart, End: body})
		}
	})
}
