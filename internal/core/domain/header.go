package domain

import "strings"

// Well-known two-letter header field codes. Producers are not strictly
// standardized, so these cover the common set; anything else is carried as an
// opaque field.
const (
	CodeLabel        = "LA" // design label
	CodeStitchCount  = "ST" // claimed stitch count
	CodeColorChanges = "CO" // claimed color-change count
	CodeExtentPosX   = "+X" // extent right of origin
	CodeExtentNegX   = "-X" // extent left of origin
	CodeExtentPosY   = "+Y" // extent above origin
	CodeExtentNegY   = "-Y" // extent below origin
	CodeEndOffsetX   = "AX" // end-point offset X
	CodeEndOffsetY   = "AY" // end-point offset Y
	CodeNextStartX   = "MX" // multivolume start X
	CodeNextStartY   = "MY" // multivolume start Y
	CodePadSequence  = "PD" // pad/needle sequence hint
)

// HeaderField is one code/value pair from the 512-byte metadata block.
type HeaderField struct {
	Code  string
	Value string
}

// Header is the ordered, open mapping of header fields. Unknown codes are
// preserved verbatim rather than rejected, since DST producers vary. Typed
// accessors are layered over the open mapping for the well-known codes.
type Header struct {
	fields []HeaderField
	index  map[string]int
}

// NewHeader creates an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// Set stores a field value, replacing an existing field with the same code
// in place or appending a new one.
func (h *Header) Set(code, value string) {
	if i, ok := h.index[code]; ok {
		h.fields[i].Value = value
		return
	}
	h.index[code] = len(h.fields)
	h.fields = append(h.fields, HeaderField{Code: code, Value: value})
}

// Get returns the raw value for the given code.
func (h *Header) Get(code string) (string, bool) {
	i, ok := h.index[code]
	if !ok {
		return "", false
	}
	return h.fields[i].Value, true
}

// Fields returns a copy of the fields in their original order.
func (h *Header) Fields() []HeaderField {
	out := make([]HeaderField, len(h.fields))
	copy(out, h.fields)
	return out
}

// Len returns the number of fields.
func (h *Header) Len() int { return len(h.fields) }

// Equal reports whether two headers carry the same fields in the same order.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	if len(h.fields) != len(other.fields) {
		return false
	}
	for i, f := range h.fields {
		if other.fields[i] != f {
			return false
		}
	}
	return true
}

// Label returns the design label (LA), trimmed of padding.
func (h *Header) Label() string {
	v, _ := h.Get(CodeLabel)
	return strings.TrimSpace(v)
}

// StitchCount returns the stitch count (ST) the producer claims. This is not
// validated against the stitch stream here; see the check operation.
func (h *Header) StitchCount() int { return h.intField(CodeStitchCount) }

// ColorChanges returns the claimed color-change count (CO).
func (h *Header) ColorChanges() int { return h.intField(CodeColorChanges) }

// Extents returns the claimed design extents (+X, -X, +Y, -Y) in 0.1 mm units.
func (h *Header) Extents() (posX, negX, posY, negY int) {
	return h.intField(CodeExtentPosX), h.intField(CodeExtentNegX),
		h.intField(CodeExtentPosY), h.intField(CodeExtentNegY)
}

// Width returns the claimed total width of the design.
func (h *Header) Width() int {
	return h.intField(CodeExtentPosX) + h.intField(CodeExtentNegX)
}

// Height returns the claimed total height of the design.
func (h *Header) Height() int {
	return h.intField(CodeExtentPosY) + h.intField(CodeExtentNegY)
}

// intField parses an integer field leniently: producers pad values with
// spaces, zeros, or stray characters, so everything but digits and a leading
// minus sign is dropped. Missing or unparseable fields read as zero.
func (h *Header) intField(code string) int {
	v, ok := h.Get(code)
	if !ok {
		return 0
	}

	neg := false
	n := 0
	seen := false
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '-' && !seen:
			neg = true
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
