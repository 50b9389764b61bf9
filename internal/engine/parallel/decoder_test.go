package parallel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tajima/internal/codec/dst"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/engine/parallel"
)

// makeStream encodes a pseudo-random but deterministic command sequence of n
// non-terminal records followed by the end record.
func makeStream(t *testing.T, n int) []byte {
	t.Helper()
	cmds := make([]domain.StitchCommand, 0, n+1)
	state := uint32(0x9E3779B9)
	next := func() int16 {
		state = state*1664525 + 1013904223
		return int16(int32(state%243) - 121)
	}
	for i := range n {
		switch i % 97 {
		case 13:
			cmds = append(cmds, domain.Jump(next(), next()))
		case 51:
			cmds = append(cmds, domain.ColorChange(next(), next()))
		default:
			cmds = append(cmds, domain.Move(next(), next()))
		}
	}
	cmds = append(cmds, domain.End())

	data, err := dst.EncodeStitches(cmds)
	require.NoError(t, err)
	return data
}

func newDecoder(workers, threshold int) *parallel.Decoder {
	return parallel.New(domain.DefaultSettings(),
		parallel.WithWorkers(workers),
		parallel.WithSequentialThreshold(threshold),
	)
}

func TestDecoder_MatchesSequential(t *testing.T) {
	for _, records := range []int{1, 2, 100, 1000, 4096} {
		data := makeStream(t, records)
		want, err := dst.DecodeStitches(data)
		require.NoError(t, err)

		for workers := 1; workers <= 8; workers++ {
			d := newDecoder(workers, 1)
			got, err := d.Decode(context.Background(), data)
			require.NoError(t, err, "records=%d workers=%d", records, workers)
			assert.Equal(t, want, got, "records=%d workers=%d", records, workers)
		}
	}
}

func TestDecoder_SequentialBelowThreshold(t *testing.T) {
	data := makeStream(t, 10)
	d := newDecoder(8, 1_000_000)

	got, err := d.Decode(context.Background(), data)
	require.NoError(t, err)

	want, err := dst.DecodeStitches(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecoder_FirstEndWins(t *testing.T) {
	// The end record sits mid-stream; everything after it, including
	// records a later chunk would decode, must be dropped.
	data := []byte{
		0x01, 0x00, 0x03,
		0x00, 0x00, 0xF3,
		0x02, 0x00, 0x03,
		0x80, 0x00, 0x03,
	}
	d := newDecoder(4, 1)

	got, err := d.Decode(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Move(1, 0), got[0])
	assert.Equal(t, domain.End(), got[1])
}

func TestDecoder_ErrorAfterEndIsDiscarded(t *testing.T) {
	// A corrupt record after the logical end of the stream is invisible
	// to a sequential decoder, so the parallel decoder must ignore it too.
	data := []byte{
		0x01, 0x00, 0x03,
		0x00, 0x00, 0xF3,
		0x00, 0x00, 0x00,
		0x01, 0x00, 0x03,
	}
	d := newDecoder(4, 1)

	got, err := d.Decode(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.End(), got[1])
}

func TestDecoder_ErrorBeforeEndSurfaces(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x00,
		0x01, 0x00, 0x03,
		0x00, 0x00, 0xF3,
		0x01, 0x00, 0x03,
	}
	d := newDecoder(4, 1)

	_, err := d.Decode(context.Background(), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStructuralBits)
}

func TestDecoder_MissingEnd(t *testing.T) {
	data := makeStream(t, 100)
	data = data[:len(data)-dst.RecordSize]

	d := newDecoder(4, 1)
	_, err := d.Decode(context.Background(), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingEndRecord)
}

func TestDecoder_Misaligned(t *testing.T) {
	d := newDecoder(4, 1)
	_, err := d.Decode(context.Background(), []byte{0x01, 0x02})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStreamMisaligned)
}

func TestDecoder_Cancellation(t *testing.T) {
	data := makeStream(t, 100_000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newDecoder(4, 1)
	done := make(chan struct{})
	var err error
	go func() {
		_, err = d.Decode(ctx, data)
		close(done)
	}()

	select {
	case <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("decode did not return after cancellation")
	}
}

func TestDecoder_Progress(t *testing.T) {
	data := makeStream(t, 1000)

	var calls int
	var lastDone, lastTotal int
	d := parallel.New(domain.DefaultSettings(),
		parallel.WithWorkers(4),
		parallel.WithSequentialThreshold(1),
		parallel.WithProgress(func(done, total int) {
			require.GreaterOrEqual(t, done, lastDone, "progress must be monotonic")
			calls++
			lastDone, lastTotal = done, total
		}),
	)

	got, err := d.Decode(context.Background(), data)
	require.NoError(t, err)
	assert.Positive(t, calls)
	assert.Equal(t, 1001, lastTotal)
	assert.Equal(t, len(got), lastDone)
}
