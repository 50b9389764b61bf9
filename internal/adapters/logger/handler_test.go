package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tajima/internal/adapters/logger"
)

// newHandler returns a pretty handler writing to a fresh buffer, with colors
// forced off so golden files stay byte-stable.
func newHandler(t *testing.T, level slog.Level) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Output(t *testing.T) {
	tests := []struct {
		golden string
		log    func(lg *slog.Logger)
	}{
		{"handler_info", func(lg *slog.Logger) {
			lg.Info("information message")
		}},
		{"handler_warn", func(lg *slog.Logger) {
			lg.Warn("warning message")
		}},
		{"handler_error", func(lg *slog.Logger) {
			lg.Error("error message")
		}},
		{"handler_debug_filtered", func(lg *slog.Logger) {
			lg.Debug("debug message")
		}},
		{"handler_record_string", func(lg *slog.Logger) {
			lg.Info("string attr", "key", "value")
		}},
		{"handler_record_int", func(lg *slog.Logger) {
			lg.Info("int attr", "count", 42)
		}},
		{"handler_record_bool", func(lg *slog.Logger) {
			lg.Info("bool attr", "enabled", true)
		}},
		{"handler_record_multi", func(lg *slog.Logger) {
			lg.Info("multiple attrs", "a", "1", "b", "2", "c", "3")
		}},
		{"handler_record_multiline", func(lg *slog.Logger) {
			lg.Info("line1\nline2\nline3")
		}},
		{"handler_record_empty_msg", func(lg *slog.Logger) {
			lg.Info("", "key", "value")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			handler, buf := newHandler(t, slog.LevelInfo)
			tt.log(slog.New(handler))

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		golden string
		attrs  []slog.Attr
		msg    string
	}{
		{"handler_attrs_single", []slog.Attr{slog.String("key", "value")}, "single attr message"},
		{"handler_attrs_multi", []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)}, "multi attr message"},
		{"handler_attrs_group", []slog.Attr{slog.Group("g", slog.String("k", "v"))}, "group attr message"},
		{"handler_attrs_nested_group", []slog.Attr{slog.Group("outer", slog.Group("inner", slog.String("k", "v")))}, "nested group message"},
		{"handler_attrs_mixed", []slog.Attr{slog.String("regular", "val"), slog.Group("g", slog.String("k", "v"))}, "mixed attrs message"},
		{"handler_attrs_empty", []slog.Attr{slog.String("empty", "")}, "empty value message"},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			handler, buf := newHandler(t, slog.LevelInfo)
			slog.New(handler.WithAttrs(tt.attrs)).Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	// The group prefix is single-level: each WithGroup replaces the
	// previous name, so only the innermost group shows up in keys.
	tests := []struct {
		golden string
		groups []string
		msg    string
		key    string
		value  string
	}{
		{"handler_group_single", []string{"request"}, "single group message", "id", "123"},
		{"handler_group_nested", []string{"a", "b"}, "nested group message", "key", "val"},
		{"handler_group_triple", []string{"a", "b", "c"}, "triple nested message", "k", "v"},
		{"handler_group_empty", nil, "empty group test", "key", "val"},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			base, buf := newHandler(t, slog.LevelInfo)

			var handler slog.Handler = base
			for _, name := range tt.groups {
				handler = handler.WithGroup(name)
			}
			slog.New(handler).Info(tt.msg, tt.key, tt.value)

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Combination(t *testing.T) {
	tests := []struct {
		golden string
		setup  func(h slog.Handler) slog.Handler
		log    func(lg *slog.Logger)
	}{
		{
			golden: "handler_combined_attrs",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("hkey", "hval")})
			},
			log: func(lg *slog.Logger) { lg.Info("combined message", "rkey", "rval") },
		},
		{
			golden: "handler_combined_group",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "123")})
			},
			log: func(lg *slog.Logger) { lg.Info("grouped message", "extra", "data") },
		},
		{
			golden: "handler_combined_nested",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("a").WithGroup("b").WithAttrs([]slog.Attr{slog.String("k", "v")})
			},
			log: func(lg *slog.Logger) { lg.Info("nested message") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			base, buf := newHandler(t, slog.LevelInfo)
			tt.log(slog.New(tt.setup(base)))

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		handler slog.Level
		record  slog.Level
		want    bool
	}{
		{"debug below info", slog.LevelInfo, slog.LevelDebug, false},
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"warn above info", slog.LevelInfo, slog.LevelWarn, true},
		{"error above info", slog.LevelInfo, slog.LevelError, true},
		{"debug at debug", slog.LevelDebug, slog.LevelDebug, true},
		{"error at error", slog.LevelError, slog.LevelError, true},
		{"warn at error", slog.LevelError, slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newHandler(t, tt.handler)
			assert.Equal(t, tt.want, handler.Enabled(t.Context(), tt.record))
		})
	}
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, &slog.HandlerOptions{Level: slog.LevelInfo})
	})
}

func TestPrettyHandler_BrokenWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	handler := logger.NewPrettyHandler(&brokenWriter{}, &slog.HandlerOptions{Level: slog.LevelInfo})

	require.NotPanics(t, func() {
		slog.New(handler).Info("this will fail to write")
	})
}

// brokenWriter fails every write.
type brokenWriter struct{}

func (bw *brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
