package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/tajima/internal/ui/output"
	"go.trai.ch/tajima/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminal output: one line per record,
// a level icon in front, attributes rendered as key=value pairs behind the
// message. Colors degrade through the shared output profile.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a handler writing to w, or os.Stderr when w is
// nil. Only opts.Level is honored; source locations and replacers are not.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	lv := &slog.LevelVar{}
	if opts != nil && opts.Level != nil {
		lv.Set(opts.Level.Level())
	} else {
		lv.Set(slog.LevelInfo)
	}

	return &PrettyHandler{out: output.New(w), level: lv}
}

// Enabled reports whether records at level are emitted.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// icon returns the level marker and line color for a record level.
func icon(level slog.Level) (string, termenv.Color) {
	switch level {
	case slog.LevelWarn:
		return style.Warning + " ", termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return style.Cross + " ", termenv.RGBColor(string(style.Red))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// Handle renders the record as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	prefix, color := icon(r.Level)

	parts := []string{prefix + r.Message}
	for _, attr := range h.attrs {
		parts = append(parts, h.renderAttr(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.renderAttr(attr))
		return true
	})

	line := h.out.String(strings.Join(parts, " ")).Foreground(color)
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a handler that carries attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	clone := *h
	clone.attrs = merged
	return &clone
}

// WithGroup returns a handler whose attribute keys are prefixed with name.
// The prefix is a single level; a later WithGroup replaces it.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

func (h *PrettyHandler) renderAttr(attr slog.Attr) string {
	if h.group == "" {
		return attr.Key + "=" + attr.Value.String()
	}
	return h.group + "." + attr.Key + "=" + attr.Value.String()
}
