package format

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/extract"
	"github.com/smarzola/ltools/internal/models"
)

// JSONLines writes one object per record, each field an array of strings.
// Fields keep spec order. Blocks that do not start with dn are skipped.
type JSONLines struct {
	w     *bufio.Writer
	specs []attrspec.Spec

	scratch bytes.Buffer
	enc     *json.Encoder
}

func newJSONLines(w *bufio.Writer, specs []attrspec.Spec) *JSONLines {
	j := &JSONLines{
		w:     w,
		specs: specs,
	}
	j.enc = json.NewEncoder(&j.scratch)
	j.enc.SetEscapeHTML(false)
	return j
}

// WriteEntry writes the entry's object, or nothing if it is not a record
func (j *JSONLines) WriteEntry(entry *models.Entry) (int, error) {
	if !entry.IsRecord() {
		return 0, nil
	}
	if err := j.WriteObject(extract.Fields(entry, j.specs)); err != nil {
		return 0, err
	}
	return 1, nil
}

// WriteObject writes fields as a single-line JSON object
func (j *JSONLines) WriteObject(fields []extract.Field) error {
	j.scratch.Reset()
	j.scratch.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			j.scratch.WriteByte(',')
		}
		if err := j.encodeString(field.Name); err != nil {
			return err
		}
		j.scratch.WriteString(":[")
		for k, value := range field.Values {
			if k > 0 {
				j.scratch.WriteByte(',')
			}
			if err := j.encodeString(string(value)); err != nil {
				return err
			}
		}
		j.scratch.WriteByte(']')
	}
	j.scratch.WriteString("}\n")

	_, err := j.w.Write(j.scratch.Bytes())
	return err
}

// encodeString appends s as a JSON string. Invalid UTF-8 becomes U+FFFD.
func (j *JSONLines) encodeString(s string) error {
	if err := j.enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	j.scratch.Truncate(j.scratch.Len() - 1)
	return nil
}

func (j *JSONLines) Flush() error {
	return j.w.Flush()
}
