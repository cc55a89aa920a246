// Package pipeline streams LDIF entries from a reader through an optional
// filter into a formatter, one entry at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/smarzola/ltools/internal/format"
	"github.com/smarzola/ltools/internal/ldif"
	"github.com/smarzola/ltools/internal/models"
	"github.com/smarzola/ltools/internal/schema"
)

// Options configures a Run
type Options struct {
	Format format.Options

	// Filter restricts which entries are formatted; nil passes every entry
	Filter *schema.Filter

	// Rejected receives the entries the filter rejects, formatted like the
	// main output. Rejected entries are dropped when it is nil.
	Rejected io.Writer

	ReadBufferSize int
}

// Stats summarises a Run
type Stats struct {
	Entries  int // Entries read from the input
	Filtered int // Entries rejected by the filter
	Emitted  int // Entries that produced at least one output line
	Rows     int // Output lines or LDIF records written, excluding any CSV header
}

// LogValue implements slog.LogValuer
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("entries", s.Entries),
		slog.Int("filtered", s.Filtered),
		slog.Int("emitted", s.Emitted),
		slog.Int("rows", s.Rows),
	)
}

// Run reads every entry from r and writes the formatted output to w.
// Output is flushed before Run returns, including when an error stops it.
// Parse and write errors end the run; entries that produce no output do not.
// Cancelling ctx ends the run with ctx.Err() even while a read is blocked.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) (stats Stats, err error) {
	formatter, err := format.New(w, opts.Format)
	if err != nil {
		return stats, err
	}
	defer flush(formatter, &err)

	var rejected format.Formatter
	if opts.Rejected != nil {
		rejected, err = format.New(opts.Rejected, opts.Format)
		if err != nil {
			return stats, err
		}
		defer flush(rejected, &err)
	}

	done := make(chan struct{})
	defer close(done)
	results := readEntries(ldif.NewReaderSize(r, opts.ReadBufferSize), done)

	for {
		var res readResult
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case res = <-results:
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if errors.Is(res.err, io.EOF) {
			return stats, nil
		}
		if res.err != nil {
			return stats, fmt.Errorf("failed to read LDIF: %w", res.err)
		}
		entry := res.entry
		stats.Entries++

		if opts.Filter != nil && !opts.Filter.Matches(entry) {
			stats.Filtered++
			if rejected == nil {
				logSkipped(ctx, entry, "filter")
				continue
			}
			if _, err := rejected.WriteEntry(entry); err != nil {
				return stats, fmt.Errorf("failed to write rejected entry: %w", err)
			}
			continue
		}

		n, err := formatter.WriteEntry(entry)
		stats.Rows += n
		if err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		if n == 0 {
			logSkipped(ctx, entry, "no output")
			continue
		}
		stats.Emitted++
	}
}

type readResult struct {
	entry *models.Entry
	err   error
}

// readEntries pulls entries from r on its own goroutine until the first
// error, which includes io.EOF. The goroutine exits early once done is
// closed, unless it is blocked in a read.
func readEntries(r *ldif.Reader, done <-chan struct{}) <-chan readResult {
	results := make(chan readResult)
	go func() {
		defer close(results)
		for {
			entry, err := r.Next()
			select {
			case results <- readResult{entry: entry, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return results
}

func flush(f format.Formatter, err *error) {
	if flushErr := f.Flush(); flushErr != nil && *err == nil {
		*err = fmt.Errorf("failed to write output: %w", flushErr)
	}
}

func logSkipped(ctx context.Context, entry *models.Entry, reason string) {
	slog.DebugContext(ctx, "Entry skipped",
		"line", entry.Line,
		"dn", entry.DN(),
		"reason", reason,
	)
}
