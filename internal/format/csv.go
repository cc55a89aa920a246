package format

import (
	"bufio"
	"encoding/csv"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/extract"
	"github.com/smarzola/ltools/internal/models"
)

// CSV writes a header of spec names followed by one record per row.
// The header goes out with the first entry, so empty input writes nothing.
type CSV struct {
	out         *bufio.Writer
	w           *csv.Writer
	specs       []attrspec.Spec
	wroteHeader bool
	record      []string
}

func newCSV(out *bufio.Writer, specs []attrspec.Spec) *CSV {
	return &CSV{
		out:    out,
		w:      csv.NewWriter(out),
		specs:  specs,
		record: make([]string, 0, len(specs)),
	}
}

// WriteEntry writes the header if needed and then the rows of the entry.
// The header is not counted.
func (c *CSV) WriteEntry(entry *models.Entry) (int, error) {
	if !c.wroteHeader {
		if err := c.w.Write(attrspec.Names(c.specs)); err != nil {
			return 0, err
		}
		c.wroteHeader = true
	}

	n := 0
	for row := range extract.Rows(entry, c.specs) {
		if err := c.WriteRow(row); err != nil {
			return n, err
		}
		n++
	}
	return n, c.w.Error()
}

// WriteRow writes a single CSV record
func (c *CSV) WriteRow(row extract.Row) error {
	c.record = c.record[:0]
	for _, value := range row {
		c.record = append(c.record, string(value))
	}
	return c.w.Write(c.record)
}

func (c *CSV) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	return c.out.Flush()
}
