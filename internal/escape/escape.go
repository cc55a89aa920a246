// Package escape converts values to and from the \xx form used inside LDAP
// search filters.
package escape

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// ErrInvalidEscape reports a backslash not followed by two hex digits
var ErrInvalidEscape = errors.New("invalid escape sequence")

// Escape replaces NUL, '(', ')', '*', '\\', ':' and every non-ASCII byte
// with a backslash and two lowercase hex digits.
func Escape(value []byte) string {
	// EscapeFilter leaves ':' alone and never emits one itself
	return strings.ReplaceAll(ldap.EscapeFilter(string(value)), ":", `\3a`)
}

// Unescape decodes \xx sequences. Hex digits may be either case.
func Unescape(value []byte) ([]byte, error) {
	if bytes.IndexByte(value, '\\') < 0 {
		return value, nil
	}

	out := make([]byte, 0, len(value))
	var decoded [1]byte
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' {
			out = append(out, value[i])
			continue
		}
		if i+2 >= len(value) {
			return nil, fmt.Errorf("%w at offset %d", ErrInvalidEscape, i)
		}
		if _, err := hex.Decode(decoded[:], value[i+1:i+3]); err != nil {
			return nil, fmt.Errorf("%w at offset %d", ErrInvalidEscape, i)
		}
		out = append(out, decoded[0])
		i += 2
	}
	return out, nil
}

// Lines escapes, or with reverse set unescapes, each line read from r and
// writes it to w. Line terminators are kept; a final line without one is
// written without one.
func Lines(r io.Reader, w io.Writer, reverse bool) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	for lineNo := 1; ; lineNo++ {
		line, readErr := in.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if len(line) == 0 && readErr == io.EOF {
			break
		}

		body, newline := bytes.CutSuffix(line, []byte{'\n'})
		if reverse {
			decoded, err := Unescape(body)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, err := out.Write(decoded); err != nil {
				return err
			}
		} else if _, err := out.WriteString(Escape(body)); err != nil {
			return err
		}
		if newline {
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			break
		}
	}
	return out.Flush()
}
