// Package attrspec parses the attribute arguments given to lget.
//
// An argument has the form
//
//	name[:-default][.base64]
//
// The ".base64" suffix is stripped from the whole argument first, then the
// remainder is split on the first ":-". The suffix therefore always binds to
// the attribute, even when it trails a default value.
package attrspec

import (
	"strings"
)

const (
	base64Suffix     = ".base64"
	defaultSeparator = ":-"
)

// Spec is one parsed attribute argument
type Spec struct {
	Name         string
	Default      string
	HasDefault   bool
	EncodeBase64 bool // Re-encode entry values as base64 on output
}

// Parse parses an attribute argument. It accepts any input.
func Parse(arg string) Spec {
	var spec Spec

	if rest, ok := strings.CutSuffix(arg, base64Suffix); ok {
		spec.EncodeBase64 = true
		arg = rest
	}

	spec.Name, spec.Default, spec.HasDefault = strings.Cut(arg, defaultSeparator)
	return spec
}

// ParseAll parses each argument in order
func ParseAll(args []string) []Spec {
	specs := make([]Spec, 0, len(args))
	for _, arg := range args {
		specs = append(specs, Parse(arg))
	}
	return specs
}

// Names returns the attribute names of specs in order
func Names(specs []Spec) []string {
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	return names
}

// String returns the argument form of the spec
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.HasDefault {
		b.WriteString(defaultSeparator)
		b.WriteString(s.Default)
	}
	if s.EncodeBase64 {
		b.WriteString(base64Suffix)
	}
	return b.String()
}
