package ldif

import (
	"bufio"
	"bytes"
	"io"
)

// lineReader yields physical lines without their terminator. A CR directly
// before the LF is part of the terminator.
type lineReader struct {
	r    *bufio.Reader
	line int

	// one line of push-back for the unfolder
	held     []byte
	heldLine int
	hasHeld  bool
}

func newLineReader(r io.Reader, size int) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, size)}
}

func (l *lineReader) next() ([]byte, int, error) {
	if l.hasHeld {
		l.hasHeld = false
		return l.held, l.heldLine, nil
	}

	buf, err := l.r.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(buf) == 0) {
		return nil, l.line, err
	}
	l.line++

	buf = bytes.TrimSuffix(buf, []byte{'\n'})
	buf = bytes.TrimSuffix(buf, []byte{'\r'})
	return buf, l.line, nil
}

func (l *lineReader) unread(buf []byte, line int) {
	l.held = buf
	l.heldLine = line
	l.hasHeld = true
}

// unfolder joins continuation lines onto the logical line they continue.
// Blank lines come through as zero-length logical lines.
type unfolder struct {
	lines *lineReader
}

func newUnfolder(r io.Reader, size int) *unfolder {
	return &unfolder{lines: newLineReader(r, size)}
}

// next returns the next logical line and the physical line it starts on.
func (u *unfolder) next() ([]byte, int, error) {
	first, lineNo, err := u.lines.next()
	if err != nil {
		return nil, lineNo, err
	}
	if len(first) == 0 {
		return first, lineNo, nil
	}
	if first[0] == ' ' {
		return nil, lineNo, &ParseError{Line: lineNo, Err: ErrOrphanContinuation}
	}

	logical := first
	for {
		buf, n, err := u.lines.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, n, err
		}
		if len(buf) == 0 || buf[0] != ' ' {
			u.lines.unread(buf, n)
			break
		}
		logical = append(logical, buf[1:]...)
	}
	return logical, lineNo, nil
}
