package models

import (
	"bytes"
	"encoding/base64"
)

// ToLDIF converts the entry to an LDIF record terminated by a blank line.
// The dn is written first and only once. Values that are not safe strings
// are written base64 encoded with "::".
func (e *Entry) ToLDIF() []byte {
	var buf bytes.Buffer
	buf.Grow(e.Len() * 32)

	if e.HasAttribute(AttributeDN) {
		writeAttrValue(&buf, AttributeDN, e.GetAttribute(AttributeDN))
	}
	for _, attr := range e.Attributes {
		if attr.Name == AttributeDN {
			continue
		}
		writeAttrValue(&buf, attr.Name, attr.Value)
	}
	buf.WriteByte('\n')

	return buf.Bytes()
}

func writeAttrValue(buf *bytes.Buffer, name string, value []byte) {
	buf.WriteString(name)
	switch {
	case len(value) == 0:
		buf.WriteByte(':')
	case isSafeString(value):
		buf.WriteString(": ")
		buf.Write(value)
	default:
		buf.WriteString(":: ")
		buf.WriteString(base64.StdEncoding.EncodeToString(value))
	}
	buf.WriteByte('\n')
}

// isSafeString reports whether value can be written as plain LDIF text.
// ASCII only, no NUL, CR or LF, no leading space, ':' or '<', and no
// trailing space.
func isSafeString(value []byte) bool {
	switch value[0] {
	case ' ', ':', '<':
		return false
	}
	if value[len(value)-1] == ' ' {
		return false
	}
	for _, c := range value {
		if c == 0 || c == '\n' || c == '\r' || c > 0x7f {
			return false
		}
	}
	return true
}
