// Package extract turns an entry and a list of attribute specs into output
// rows.
//
// Each spec first resolves to a list of values. When every spec resolves,
// the rows are the cartesian product of those lists, with the first spec
// varying slowest. When any spec resolves to nothing, the entry produces no
// rows at all.
package extract

import (
	"encoding/base64"
	"iter"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/models"
)

// Row is one combination of values, aligned with the specs
type Row [][]byte

// Field is a named value list of a JSON record
type Field struct {
	Name   string
	Values [][]byte
}

// Values resolves one spec against an entry. The boolean is false when the
// entry has no value for the spec and the spec carries no default.
//
// Entry values are base64 encoded when the spec asks for it. A default is
// always returned verbatim.
func Values(entry *models.Entry, spec attrspec.Spec) ([][]byte, bool) {
	values := entry.GetAttributes(spec.Name)
	if len(values) > 0 {
		if spec.EncodeBase64 {
			encoded := make([][]byte, len(values))
			for i, v := range values {
				encoded[i] = []byte(base64.StdEncoding.EncodeToString(v))
			}
			return encoded, true
		}
		return values, true
	}

	if spec.HasDefault {
		return [][]byte{[]byte(spec.Default)}, true
	}
	return nil, false
}

// Resolve resolves every spec in order and stops at the first miss
func Resolve(entry *models.Entry, specs []attrspec.Spec) ([][][]byte, bool) {
	lists := make([][][]byte, len(specs))
	for i, spec := range specs {
		values, ok := Values(entry, spec)
		if !ok {
			return nil, false
		}
		lists[i] = values
	}
	return lists, true
}

// Rows yields the output rows of an entry
func Rows(entry *models.Entry, specs []attrspec.Spec) iter.Seq[Row] {
	lists, ok := Resolve(entry, specs)
	if !ok {
		return func(func(Row) bool) {}
	}
	return Product(lists)
}

// Product yields every combination of one value per list in row-major
// order. It yields nothing when lists is empty or any list is empty.
func Product(lists [][][]byte) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if len(lists) == 0 {
			return
		}
		for _, values := range lists {
			if len(values) == 0 {
				return
			}
		}

		counters := make([]int, len(lists))
		for {
			row := make(Row, len(lists))
			for i, c := range counters {
				row[i] = lists[i][c]
			}
			if !yield(row) {
				return
			}

			// Advance the last counter, carrying leftwards
			i := len(counters) - 1
			for ; i >= 0; i-- {
				counters[i]++
				if counters[i] < len(lists[i]) {
					break
				}
				counters[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Fields builds the JSON record of an entry: one field per spec that
// resolves, in spec order. Specs that miss are left out.
func Fields(entry *models.Entry, specs []attrspec.Spec) []Field {
	fields := make([]Field, 0, len(specs))
	for _, spec := range specs {
		values, ok := Values(entry, spec)
		if !ok {
			continue
		}
		fields = append(fields, Field{Name: spec.Name, Values: values})
	}
	return fields
}
