package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestWith(t *testing.T) {
	t.Run("keeps the sentinel in the unwrap chain", func(t *testing.T) {
		err := domain.With(domain.ErrHeaderTooShort, "expected", 512, "actual", 511)
		assert.ErrorIs(t, err, domain.ErrHeaderTooShort)
	})

	t.Run("renders context into the message", func(t *testing.T) {
		err := domain.With(domain.ErrHeaderTooShort, "expected", 512, "actual", 511)
		assert.Contains(t, err.Error(), "expected=512")
		assert.Contains(t, err.Error(), "actual=511")
		assert.Contains(t, err.Error(), domain.ErrHeaderTooShort.Error())
	})

	t.Run("attaches context as zerr metadata", func(t *testing.T) {
		err := domain.With(domain.ErrStructuralBits, "record", 7)

		var zerrErr *zerr.Error
		require.ErrorAs(t, err, &zerrErr)
		assert.Equal(t, 7, zerrErr.Metadata()["record"])
	})

	t.Run("survives further zerr context", func(t *testing.T) {
		err := domain.With(domain.ErrStreamMisaligned, "length", 7)
		err = zerr.With(err, "path", "x.dst")
		assert.ErrorIs(t, err, domain.ErrStreamMisaligned)
	})

	t.Run("tolerates an odd trailing value", func(t *testing.T) {
		err := domain.With(domain.ErrHeaderOverflow, "size")
		assert.ErrorIs(t, err, domain.ErrHeaderOverflow)
		assert.Equal(t, domain.ErrHeaderOverflow.Error(), err.Error())
	})
}

func TestWrap(t *testing.T) {
	t.Run("matches sentinel and cause alike", func(t *testing.T) {
		cause := errors.New("open /x.dst: no such file or directory")
		err := domain.Wrap(domain.ErrFileRead, cause)
		assert.ErrorIs(t, err, domain.ErrFileRead)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("renders both messages", func(t *testing.T) {
		err := domain.Wrap(domain.ErrConfigParseFailed, errors.New("yaml: line 2: oops"))
		assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
		assert.Contains(t, err.Error(), "yaml: line 2: oops")
	})

	t.Run("nil cause yields nil", func(t *testing.T) {
		assert.NoError(t, domain.Wrap(domain.ErrFileRead, nil))
	})

	t.Run("survives further zerr context", func(t *testing.T) {
		err := domain.Wrap(domain.ErrWatchFailed, errors.New("inotify limit"))
		err = zerr.With(err, "path", "x.dst")
		assert.ErrorIs(t, err, domain.ErrWatchFailed)
	})
}

func TestErrorKinds(t *testing.T) {
	t.Run("classifies bare sentinels", func(t *testing.T) {
		assert.True(t, domain.IsIOError(domain.ErrFileRead))
		assert.True(t, domain.IsIOError(domain.ErrFileStat))
		assert.True(t, domain.IsIOError(domain.ErrFileWrite))
		assert.True(t, domain.IsFormatError(domain.ErrStreamMisaligned))
		assert.True(t, domain.IsFormatError(domain.ErrMissingEndRecord))
		assert.True(t, domain.IsValueError(domain.ErrDeltaOutOfRange))
	})

	t.Run("classifies sentinels with context", func(t *testing.T) {
		err := domain.With(domain.ErrStructuralBits, "record", 7)
		assert.True(t, domain.IsFormatError(err))
		assert.False(t, domain.IsIOError(err))
		assert.False(t, domain.IsValueError(err))
	})

	t.Run("classifies a wrapped cause", func(t *testing.T) {
		cause := errors.New("open /x.dst: no such file or directory")
		err := domain.Wrap(domain.ErrFileRead, cause)
		assert.True(t, domain.IsIOError(err))
		assert.False(t, domain.IsFormatError(err))
	})

	t.Run("unrelated errors match nothing", func(t *testing.T) {
		err := errors.New("something else")
		assert.False(t, domain.IsIOError(err))
		assert.False(t, domain.IsFormatError(err))
		assert.False(t, domain.IsValueError(err))
		assert.False(t, domain.IsIOError(nil))
	})
}
