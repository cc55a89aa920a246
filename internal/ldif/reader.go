// Package ldif reads LDIF entry records from a stream, one entry at a time.
package ldif

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/smarzola/ltools/internal/models"
)

// DefaultBufferSize is the read buffer used by NewReader
const DefaultBufferSize = 64 * 1024

// Reader is a forward-only iterator over the entries of an LDIF stream.
// Only the entry being assembled is held in memory.
type Reader struct {
	lines *unfolder
}

// NewReader creates a Reader with the default buffer size
func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, DefaultBufferSize)
}

// NewReaderSize creates a Reader whose read buffer has at least size bytes
func NewReaderSize(r io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Reader{lines: newUnfolder(r, size)}
}

// Next returns the next entry with at least one attribute. It returns io.EOF
// once the stream is exhausted and a *ParseError for malformed input.
func (r *Reader) Next() (*models.Entry, error) {
	var entry *models.Entry

	for {
		line, lineNo, err := r.lines.next()
		if err == io.EOF {
			if entry != nil {
				return entry, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		// Blank lines end the entry; runs of them are a single separator
		if len(line) == 0 {
			if entry != nil {
				return entry, nil
			}
			continue
		}

		if line[0] == '#' {
			continue
		}

		name, value, err := parseAttributeLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		if entry == nil {
			entry = models.NewEntry(lineNo)
		}
		entry.AddAttribute(name, value)
	}
}

// parseAttributeLine splits "name: text" or "name:: base64" into the
// attribute type and its raw value.
func parseAttributeLine(line []byte) (string, []byte, error) {
	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return "", nil, ErrMissingSeparator
	}
	if colon == 0 {
		return "", nil, ErrEmptyAttributeType
	}
	name := string(line[:colon])
	rest := line[colon+1:]

	if len(rest) > 0 && rest[0] == ':' {
		encoded := bytes.TrimRight(bytes.TrimLeft(rest[1:], " "), " ")
		value := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
		n, err := base64.StdEncoding.Decode(value, encoded)
		if err != nil {
			return "", nil, fmt.Errorf("%w for %s: %v", ErrInvalidBase64, name, err)
		}
		return name, value[:n], nil
	}

	value := bytes.TrimLeft(rest, " ")
	return name, bytes.Clone(value), nil
}
