// Package app implements the application layer for tajima.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/tajima/internal/codec/dst"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
	"go.trai.ch/zerr"
)

// App is the single entry point consumers use to obtain decoded patterns.
// It wires the file source, the cache, and the decoder together; errors keep
// their kind (IO, format, value) so callers can surface a meaningful
// diagnostic instead of crashing.
type App struct {
	source  ports.PatternSource
	cache   ports.PatternCache
	decoder ports.StitchDecoder
	watcher ports.Watcher
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	source ports.PatternSource,
	cache ports.PatternCache,
	decoder ports.StitchDecoder,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		source:  source,
		cache:   cache,
		decoder: decoder,
		watcher: watcher,
		logger:  log,
	}
}

// Open returns the decoded pattern for path. The cache is consulted first;
// a hit is only served when the file's current identity matches the stored
// one, so an edited file is always re-decoded.
func (a *App) Open(ctx context.Context, path string) (*domain.Pattern, error) {
	id, err := a.source.Identity(path)
	if err != nil {
		return nil, err
	}

	return a.cache.GetOrDecode(ctx, id.Path, id, func(ctx context.Context) (*domain.Pattern, error) {
		return a.decode(ctx, id.Path)
	})
}

// decode reads and decodes a file without touching the cache. The read
// happens up front so decode workers stay CPU-bound.
func (a *App) decode(ctx context.Context, path string) (*domain.Pattern, error) {
	data, _, err := a.source.Read(path)
	if err != nil {
		return nil, err
	}

	header, err := dst.ParseHeader(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cmds, err := a.decoder.Decode(ctx, data[dst.HeaderSize:])
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return domain.NewPattern(header, cmds), nil
}

// Peek parses only the metadata block, skipping stitch decoding entirely.
// Useful for listing many files quickly.
func (a *App) Peek(path string) (*domain.Header, error) {
	data, _, err := a.source.ReadHeader(path)
	if err != nil {
		return nil, err
	}
	header, err := dst.ParseHeader(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return header, nil
}

// Mismatch is one header claim that disagrees with the decoded stream.
type Mismatch struct {
	Field   string
	Claimed int
	Actual  int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: header claims %d, stream has %d", m.Field, m.Claimed, m.Actual)
}

// Check decodes path and cross-checks the header's claimed counts and
// extents against the stitch stream. The codec deliberately does not do
// this at parse time: plenty of real files carry sloppy headers, and
// rejecting them outright would make the decoder useless. Only fields the
// header actually carries are checked.
func (a *App) Check(ctx context.Context, path string) ([]Mismatch, error) {
	pattern, err := a.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	header := pattern.Header()
	stats := pattern.Stats()
	bounds := pattern.Bounds()

	var mismatches []Mismatch
	check := func(code string, claimed, actual int) {
		if _, ok := header.Get(code); !ok {
			return
		}
		if claimed != actual {
			mismatches = append(mismatches, Mismatch{Field: code, Claimed: claimed, Actual: actual})
		}
	}

	posX, negX, posY, negY := header.Extents()
	check(domain.CodeStitchCount, header.StitchCount(), stats.Records-1)
	check(domain.CodeColorChanges, header.ColorChanges(), stats.ColorChanges)
	check(domain.CodeExtentPosX, posX, max(bounds.MaxX, 0))
	check(domain.CodeExtentNegX, negX, max(-bounds.MinX, 0))
	check(domain.CodeExtentPosY, posY, max(bounds.MaxY, 0))
	check(domain.CodeExtentNegY, negY, max(-bounds.MinY, 0))

	return mismatches, nil
}

// Convert decodes src and writes a freshly serialized copy to dstPath,
// running the full decode→encode round trip. Headers are normalized in the
// process; field order is preserved.
func (a *App) Convert(ctx context.Context, srcPath, dstPath string) error {
	pattern, err := a.Open(ctx, srcPath)
	if err != nil {
		return err
	}

	headerBytes, err := dst.SerializeHeader(pattern.Header())
	if err != nil {
		return zerr.With(err, "path", srcPath)
	}
	stitchBytes, err := dst.EncodeStitches(pattern.Commands())
	if err != nil {
		return zerr.With(err, "path", srcPath)
	}

	out := make([]byte, 0, len(headerBytes)+len(stitchBytes))
	out = append(out, headerBytes...)
	out = append(out, stitchBytes...)

	if err := os.WriteFile(dstPath, out, domain.FilePerm); err != nil {
		return zerr.With(domain.Wrap(domain.ErrFileWrite, err), "path", dstPath)
	}
	return nil
}

// Watch re-opens path whenever the file changes on disk, forwarding the
// result to onReload. The cache entry is invalidated first so the reload
// decodes fresh bytes. Watch returns once the watch is installed; callbacks
// run until ctx is cancelled.
func (a *App) Watch(ctx context.Context, path string, onReload func(*domain.Pattern, error)) error {
	if a.watcher == nil {
		return domain.ErrWatchFailed
	}

	id, err := a.source.Identity(path)
	if err != nil {
		return err
	}

	return a.watcher.Watch(ctx, id.Path, func(paths []string) {
		a.cache.Invalidate(paths...)
		pattern, err := a.Open(ctx, id.Path)
		onReload(pattern, err)
	})
}
