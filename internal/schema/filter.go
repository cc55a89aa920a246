package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/smarzola/ltools/internal/escape"
	"github.com/smarzola/ltools/internal/models"
)

// FilterType represents the type of LDAP filter
type FilterType int

const (
	FilterTypeAnd FilterType = iota
	FilterTypeOr
	FilterTypeNot
	FilterTypeEquality
	FilterTypePresent
	FilterTypeApproxMatch
	FilterTypeGreaterOrEqual
	FilterTypeLessOrEqual
	FilterTypeSubstrings
)

// Filter represents an LDAP search filter
type Filter struct {
	Type      FilterType
	Attribute string
	Value     []byte
	Filters   []*Filter

	// Substring components; Any holds the middle pieces in order
	Initial []byte
	Any     [][]byte
	Final   []byte
}

// ParseFilter parses an LDAP filter string
// Supports (&...), (|...), (!...), presence, equality, approx, ordering and
// substring assertions. Values may contain \xx hex escapes.
func ParseFilter(filterStr string) (*Filter, error) {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" {
		// Empty filter means match all
		return &Filter{Type: FilterTypeAnd}, nil
	}

	if !strings.HasPrefix(filterStr, "(") || !strings.HasSuffix(filterStr, ")") {
		return nil, fmt.Errorf("filter must be enclosed in parentheses")
	}

	filter, pos, err := parseFilterRecursive(filterStr, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(filterStr) {
		return nil, fmt.Errorf("unexpected trailing data at position %d", pos)
	}
	return filter, nil
}

// parseFilterRecursive recursively parses filter components
func parseFilterRecursive(filterStr string, pos int) (*Filter, int, error) {
	if pos >= len(filterStr) {
		return nil, pos, fmt.Errorf("unexpected end of filter")
	}

	if filterStr[pos] != '(' {
		return nil, pos, fmt.Errorf("expected '(' at position %d", pos)
	}

	pos++ // skip '('

	if pos >= len(filterStr) {
		return nil, pos, fmt.Errorf("unexpected end of filter")
	}

	switch filterStr[pos] {
	case '&':
		return parseFilterSet(filterStr, pos+1, FilterTypeAnd)
	case '|':
		return parseFilterSet(filterStr, pos+1, FilterTypeOr)
	case '!':
		pos++ // skip '!'
		subFilter, newPos, err := parseFilterRecursive(filterStr, pos)
		if err != nil {
			return nil, pos, err
		}

		filter := &Filter{
			Type:    FilterTypeNot,
			Filters: []*Filter{subFilter},
		}

		if newPos >= len(filterStr) || filterStr[newPos] != ')' {
			return nil, newPos, fmt.Errorf("expected ')' at position %d", newPos)
		}

		return filter, newPos + 1, nil
	}

	// Simple filter: attribute=value
	endPos := strings.IndexByte(filterStr[pos:], ')')
	if endPos == -1 {
		return nil, pos, fmt.Errorf("expected ')'")
	}

	filter, err := parseItem(filterStr[pos : pos+endPos])
	if err != nil {
		return nil, pos, err
	}

	return filter, pos + endPos + 1, nil
}

// parseFilterSet parses the children of an & or | filter
func parseFilterSet(filterStr string, pos int, filterType FilterType) (*Filter, int, error) {
	filter := &Filter{Type: filterType}

	for pos < len(filterStr) && filterStr[pos] == '(' {
		subFilter, newPos, err := parseFilterRecursive(filterStr, pos)
		if err != nil {
			return nil, pos, err
		}
		filter.Filters = append(filter.Filters, subFilter)
		pos = newPos
	}

	if pos >= len(filterStr) || filterStr[pos] != ')' {
		return nil, pos, fmt.Errorf("expected ')' at position %d", pos)
	}
	pos++ // skip ')'

	return filter, pos, nil
}

// parseItem parses attribute=value, attribute>=value, attribute=*, etc.
func parseItem(item string) (*Filter, error) {
	eq := strings.IndexByte(item, '=')
	if eq <= 0 {
		return nil, fmt.Errorf("invalid filter format: %s", item)
	}

	attribute := item[:eq]
	filterType := FilterTypeEquality
	switch attribute[len(attribute)-1] {
	case '>':
		filterType = FilterTypeGreaterOrEqual
	case '<':
		filterType = FilterTypeLessOrEqual
	case '~':
		filterType = FilterTypeApproxMatch
	}
	if filterType != FilterTypeEquality {
		attribute = attribute[:len(attribute)-1]
	}
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return nil, fmt.Errorf("invalid filter format: %s", item)
	}

	rawValue := item[eq+1:]
	filter := &Filter{Type: filterType, Attribute: attribute}

	if filterType == FilterTypeEquality && strings.Contains(rawValue, "*") {
		if rawValue == "*" {
			filter.Type = FilterTypePresent
			return filter, nil
		}
		return parseSubstrings(filter, rawValue)
	}

	value, err := escape.Unescape([]byte(rawValue))
	if err != nil {
		return nil, fmt.Errorf("invalid value in %s: %w", item, err)
	}
	filter.Value = value
	return filter, nil
}

func parseSubstrings(filter *Filter, rawValue string) (*Filter, error) {
	filter.Type = FilterTypeSubstrings

	parts := strings.Split(rawValue, "*")
	decoded := make([][]byte, len(parts))
	for i, part := range parts {
		value, err := escape.Unescape([]byte(part))
		if err != nil {
			return nil, fmt.Errorf("invalid substring value %s: %w", rawValue, err)
		}
		decoded[i] = value
	}

	filter.Initial = decoded[0]
	filter.Final = decoded[len(decoded)-1]
	for _, middle := range decoded[1 : len(decoded)-1] {
		if len(middle) > 0 {
			filter.Any = append(filter.Any, middle)
		}
	}
	return filter, nil
}

// Matches checks if an entry matches this filter.
// Attribute types match case-insensitively; values are compared bytewise.
func (f *Filter) Matches(entry *models.Entry) bool {
	switch f.Type {
	case FilterTypeAnd:
		for _, subFilter := range f.Filters {
			if !subFilter.Matches(entry) {
				return false
			}
		}
		return true

	case FilterTypeOr:
		for _, subFilter := range f.Filters {
			if subFilter.Matches(entry) {
				return true
			}
		}
		return false

	case FilterTypeNot:
		if len(f.Filters) > 0 {
			return !f.Filters[0].Matches(entry)
		}
		return true

	case FilterTypePresent:
		return len(entry.GetAttributesFold(f.Attribute)) > 0

	case FilterTypeEquality, FilterTypeApproxMatch:
		return f.anyValue(entry, func(v []byte) bool { return bytes.Equal(v, f.Value) })

	case FilterTypeGreaterOrEqual:
		return f.anyValue(entry, func(v []byte) bool { return bytes.Compare(v, f.Value) >= 0 })

	case FilterTypeLessOrEqual:
		return f.anyValue(entry, func(v []byte) bool { return bytes.Compare(v, f.Value) <= 0 })

	case FilterTypeSubstrings:
		return f.anyValue(entry, f.matchSubstrings)

	default:
		return false
	}
}

func (f *Filter) anyValue(entry *models.Entry, match func([]byte) bool) bool {
	for _, v := range entry.GetAttributesFold(f.Attribute) {
		if match(v) {
			return true
		}
	}
	return false
}

func (f *Filter) matchSubstrings(v []byte) bool {
	if !bytes.HasPrefix(v, f.Initial) {
		return false
	}
	v = v[len(f.Initial):]
	for _, middle := range f.Any {
		i := bytes.Index(v, middle)
		if i < 0 {
			return false
		}
		v = v[i+len(middle):]
	}
	return bytes.HasSuffix(v, f.Final)
}

// String returns a string representation of the filter
func (f *Filter) String() string {
	switch f.Type {
	case FilterTypeAnd:
		parts := []string{"(&"}
		for _, subFilter := range f.Filters {
			parts = append(parts, subFilter.String())
		}
		parts = append(parts, ")")
		return strings.Join(parts, "")

	case FilterTypeOr:
		parts := []string{"(|"}
		for _, subFilter := range f.Filters {
			parts = append(parts, subFilter.String())
		}
		parts = append(parts, ")")
		return strings.Join(parts, "")

	case FilterTypeNot:
		if len(f.Filters) > 0 {
			return "(!" + f.Filters[0].String() + ")"
		}
		return "(!)"

	case FilterTypePresent:
		return fmt.Sprintf("(%s=*)", f.Attribute)

	case FilterTypeEquality:
		return fmt.Sprintf("(%s=%s)", f.Attribute, escape.Escape(f.Value))

	case FilterTypeApproxMatch:
		return fmt.Sprintf("(%s~=%s)", f.Attribute, escape.Escape(f.Value))

	case FilterTypeGreaterOrEqual:
		return fmt.Sprintf("(%s>=%s)", f.Attribute, escape.Escape(f.Value))

	case FilterTypeLessOrEqual:
		return fmt.Sprintf("(%s<=%s)", f.Attribute, escape.Escape(f.Value))

	case FilterTypeSubstrings:
		parts := []string{escape.Escape(f.Initial)}
		for _, middle := range f.Any {
			parts = append(parts, escape.Escape(middle))
		}
		parts = append(parts, escape.Escape(f.Final))
		return fmt.Sprintf("(%s=%s)", f.Attribute, strings.Join(parts, "*"))

	default:
		return ""
	}
}
