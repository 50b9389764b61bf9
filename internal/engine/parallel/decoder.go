// Package parallel accelerates stitch decoding by partitioning the record
// stream across concurrent workers while preserving sequential semantics.
package parallel

import (
	"context"

	"go.trai.ch/tajima/internal/codec/dst"
	"go.trai.ch/tajima/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc receives the number of decoded records after each completed
// chunk. total is the record count of the whole stream.
type ProgressFunc func(done, total int)

// Decoder decodes stitch streams, splitting large ones across workers.
// Output is byte-identical to dst.DecodeStitches for every worker budget:
// chunk boundaries always fall on record boundaries, reassembly is strictly
// by chunk index, and the first end record wins regardless of which chunk it
// lands in.
type Decoder struct {
	workers   int
	threshold int
	progress  ProgressFunc
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithWorkers bounds the number of concurrent decode workers.
func WithWorkers(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithSequentialThreshold sets the record count below which decoding happens
// in the calling goroutine; at that scale worker fan-out costs more than it
// saves.
func WithSequentialThreshold(records int) Option {
	return func(d *Decoder) {
		if records > 0 {
			d.threshold = records
		}
	}
}

// WithProgress installs a progress hook, called from the reassembly goroutine
// as chunks complete. Intended for viewers decoding very large files.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Decoder) { d.progress = fn }
}

// New creates a Decoder from the given settings and options.
func New(settings domain.Settings, opts ...Option) *Decoder {
	d := &Decoder{
		workers:   settings.Workers,
		threshold: settings.SequentialThreshold,
	}
	defaults := domain.DefaultSettings()
	if d.workers < 1 {
		d.workers = defaults.Workers
	}
	if d.threshold < 1 {
		d.threshold = defaults.SequentialThreshold
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// chunkResult is the exclusively-owned output of one worker. Workers never
// share buffers; reassembly reads them in chunk order after the join point.
type chunkResult struct {
	cmds  []domain.StitchCommand
	ended bool
	err   error
}

// Decode decodes data into stitch commands. Small streams decode in the
// calling goroutine; larger ones are split into contiguous record-aligned
// chunks of roughly equal span, decoded concurrently, and concatenated in
// chunk order. Cancelling ctx abandons the decode; in-flight workers finish
// their chunk and their output is discarded, which is safe because no worker
// mutates shared state.
func (d *Decoder) Decode(ctx context.Context, data []byte) ([]domain.StitchCommand, error) {
	if len(data)%dst.RecordSize != 0 {
		return nil, domain.With(domain.ErrStreamMisaligned, "length", len(data))
	}

	records := len(data) / dst.RecordSize
	chunks := d.workers
	if records < d.threshold || chunks < 2 {
		return dst.DecodeStitches(data)
	}
	if chunks > records {
		chunks = records
	}

	results := make([]chunkResult, chunks)
	per := (records + chunks - 1) / chunks

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	done := 0
	for c := range chunks {
		start := c * per
		end := min(start+per, records)
		g.Go(func() error {
			cmds, ended, err := dst.DecodeRecords(data[start*dst.RecordSize:end*dst.RecordSize], start)
			results[c] = chunkResult{cmds: cmds, ended: ended, err: err}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Reassemble strictly by chunk index. The first chunk that saw the end
	// record terminates the logical stream: later chunks decoded records
	// the sequential decoder would never have reached, so both their
	// output and their errors are discarded. For the same reason a decode
	// error is only surfaced when no earlier chunk ended the stream.
	out := make([]domain.StitchCommand, 0, records)
	for c := range chunks {
		res := results[c]
		if res.err != nil {
			return nil, res.err
		}
		out = append(out, res.cmds...)
		done += len(res.cmds)
		if d.progress != nil {
			d.progress(done, records)
		}
		if res.ended {
			return out, nil
		}
	}

	return nil, domain.With(domain.ErrMissingEndRecord, "records", records)
}
