package domain

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrFileRead is returned when a pattern file cannot be read.
	ErrFileRead = zerr.New("failed to read pattern file")

	// ErrFileStat is returned when a pattern file cannot be stat'd.
	ErrFileStat = zerr.New("failed to stat pattern file")

	// ErrFileWrite is returned when an output file cannot be written.
	ErrFileWrite = zerr.New("failed to write pattern file")

	// ErrHeaderTooShort is returned when fewer than 512 header bytes are available.
	ErrHeaderTooShort = zerr.New("header block shorter than 512 bytes")

	// ErrHeaderOverflow is returned when a serialized header would exceed 512 bytes.
	ErrHeaderOverflow = zerr.New("serialized header exceeds 512 bytes")

	// ErrStreamMisaligned is returned when the stitch stream length is not a multiple of 3.
	ErrStreamMisaligned = zerr.New("stitch stream length is not a multiple of 3")

	// ErrStructuralBits is returned when a non-terminal record is missing the always-set bits.
	ErrStructuralBits = zerr.New("stitch record missing structural bits")

	// ErrMissingEndRecord is returned when the stream is exhausted before an end record.
	ErrMissingEndRecord = zerr.New("stitch stream has no end-of-pattern record")

	// ErrDeltaOutOfRange is returned when a displacement cannot be encoded in one record.
	ErrDeltaOutOfRange = zerr.New("stitch displacement outside representable range")

	// ErrEndNotTerminal is returned when an encode sequence lacks a single trailing end command.
	ErrEndNotTerminal = zerr.New("end command must terminate the sequence exactly once")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrWatchFailed is returned when a pattern file cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch pattern file")

	// ErrHeaderMismatch is returned when header claims disagree with the decoded stream.
	ErrHeaderMismatch = zerr.New("header fields disagree with decoded stitch stream")
)

// With attaches key/value context to a sentinel. The pairs render into the
// message and ride along as zerr metadata; the sentinel itself stays in the
// unwrap chain, so errors.Is(err, sentinel) keeps matching. Odd trailing
// values and non-string keys are dropped.
func With(sentinel error, kv ...any) error {
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key, kv[i+1]))
	}

	err := zerr.Wrap(sentinel, strings.Join(parts, " "))
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			err = zerr.With(err, key, kv[i+1])
		}
	}
	return err
}

// Wrap marks cause with the given sentinel kind. Both errors stay in the
// unwrap chain, so errors.Is matches the sentinel and the cause alike.
// Returns nil when cause is nil.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return errors.Join(sentinel, cause)
}

// IsIOError reports whether err is a file access failure.
func IsIOError(err error) bool {
	return errors.Is(err, ErrFileRead) || errors.Is(err, ErrFileStat) || errors.Is(err, ErrFileWrite)
}

// IsFormatError reports whether err denotes a malformed DST file.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrHeaderTooShort) ||
		errors.Is(err, ErrHeaderOverflow) ||
		errors.Is(err, ErrStreamMisaligned) ||
		errors.Is(err, ErrStructuralBits) ||
		errors.Is(err, ErrMissingEndRecord)
}

// IsValueError reports whether err denotes an unrepresentable value at encode time.
func IsValueError(err error) bool {
	return errors.Is(err, ErrDeltaOutOfRange) || errors.Is(err, ErrEndNotTerminal)
}
