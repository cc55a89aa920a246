package models

import (
	"strings"
)

// AttributeDN is the attribute type that opens a regular LDIF entry record
const AttributeDN = "dn"

// Attribute is a single attribute line of an entry
type Attribute struct {
	Name  string
	Value []byte
}

// Entry represents one LDIF entry record.
// Attributes keep their encounter order; a multi-valued attribute appears
// once per value.
type Entry struct {
	Line       int // Physical line the entry starts on
	Attributes []Attribute
}

// NewEntry creates an empty entry starting at the given line
func NewEntry(line int) *Entry {
	return &Entry{Line: line}
}

// AddAttribute appends a value for an attribute
func (e *Entry) AddAttribute(name string, value []byte) {
	e.Attributes = append(e.Attributes, Attribute{Name: name, Value: value})
}

// Len returns the number of attribute lines in the entry
func (e *Entry) Len() int {
	return len(e.Attributes)
}

// GetAttribute gets the first value of an attribute
func (e *Entry) GetAttribute(name string) []byte {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr.Value
		}
	}
	return nil
}

// GetAttributes gets all values of an attribute in entry order
func (e *Entry) GetAttributes(name string) [][]byte {
	var values [][]byte
	for _, attr := range e.Attributes {
		if attr.Name == name {
			values = append(values, attr.Value)
		}
	}
	return values
}

// GetAttributesFold is GetAttributes with case-insensitive name matching
func (e *Entry) GetAttributesFold(name string) [][]byte {
	var values [][]byte
	for _, attr := range e.Attributes {
		if strings.EqualFold(attr.Name, name) {
			values = append(values, attr.Value)
		}
	}
	return values
}

// HasAttribute checks if an attribute exists
func (e *Entry) HasAttribute(name string) bool {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return true
		}
	}
	return false
}

// FirstAttribute returns the first attribute line of the entry
func (e *Entry) FirstAttribute() (Attribute, bool) {
	if len(e.Attributes) == 0 {
		return Attribute{}, false
	}
	return e.Attributes[0], true
}

// IsRecord reports whether the entry opens with a literal dn attribute.
// Blocks such as a leading "version: 1" header are not records.
func (e *Entry) IsRecord() bool {
	first, ok := e.FirstAttribute()
	return ok && first.Name == AttributeDN
}

// DN returns the distinguished name of a record, or "" for other blocks
func (e *Entry) DN() string {
	if !e.IsRecord() {
		return ""
	}
	return string(e.Attributes[0].Value)
}
