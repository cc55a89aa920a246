package format

import (
	"bufio"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/extract"
	"github.com/smarzola/ltools/internal/models"
)

// Delimited writes one line per row with tab separated fields.
// Values are written as-is.
type Delimited struct {
	Terminator byte

	w     *bufio.Writer
	specs []attrspec.Spec
}

func newDelimited(w *bufio.Writer, specs []attrspec.Spec) *Delimited {
	return &Delimited{
		Terminator: '\n',
		w:          w,
		specs:      specs,
	}
}

// WriteEntry writes the rows of the entry
func (d *Delimited) WriteEntry(entry *models.Entry) (int, error) {
	n := 0
	for row := range extract.Rows(entry, d.specs) {
		if err := d.WriteRow(row); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// WriteRow writes a single row and its terminator
func (d *Delimited) WriteRow(row extract.Row) error {
	for i, value := range row {
		if i > 0 {
			if err := d.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := d.w.Write(value); err != nil {
			return err
		}
	}
	return d.w.WriteByte(d.Terminator)
}

func (d *Delimited) Flush() error {
	return d.w.Flush()
}
