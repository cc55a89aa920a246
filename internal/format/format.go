// Package format writes extracted entries as delimited text, CSV or
// JSON lines, or whole entries back out as LDIF.
package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/models"
)

// ErrUnknownFormat is returned by New for an unsupported Format
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects an output serializer
type Format int

const (
	FormatDelimited Format = iota
	FormatCSV
	FormatJSON
	FormatLDIF
)

func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "delimited"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatLDIF:
		return "ldif"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Formatter writes entries to an output stream.
// WriteEntry returns the number of output lines it wrote for the entry.
// Output may be buffered until Flush.
type Formatter interface {
	WriteEntry(entry *models.Entry) (int, error)
	Flush() error
}

// Options configures New
type Options struct {
	Format      Format
	Specs       []attrspec.Spec // Ignored by FormatLDIF
	NullDelimit bool            // Only honoured by FormatDelimited
	BufferSize  int             // Output buffer size; the bufio default when zero
}

// New creates the formatter selected by opts
func New(w io.Writer, opts Options) (Formatter, error) {
	var out *bufio.Writer
	if opts.BufferSize > 0 {
		out = bufio.NewWriterSize(w, opts.BufferSize)
	} else {
		out = bufio.NewWriter(w)
	}

	switch opts.Format {
	case FormatDelimited:
		d := newDelimited(out, opts.Specs)
		if opts.NullDelimit {
			d.Terminator = 0
		}
		return d, nil
	case FormatCSV:
		return newCSV(out, opts.Specs), nil
	case FormatJSON:
		return newJSONLines(out, opts.Specs), nil
	case FormatLDIF:
		return newLDIF(out), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, opts.Format)
	}
}
