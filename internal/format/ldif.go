package format

import (
	"bufio"

	"github.com/smarzola/ltools/internal/models"
)

// LDIF writes entries back out as LDIF records, one blank line after each
type LDIF struct {
	w *bufio.Writer
}

func newLDIF(w *bufio.Writer) *LDIF {
	return &LDIF{w: w}
}

// WriteEntry writes the whole entry and counts it as one record
func (l *LDIF) WriteEntry(entry *models.Entry) (int, error) {
	if _, err := l.w.Write(entry.ToLDIF()); err != nil {
		return 0, err
	}
	return 1, nil
}

func (l *LDIF) Flush() error {
	return l.w.Flush()
}
