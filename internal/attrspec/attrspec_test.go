package attrspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	spec := Parse("member")

	assert.Equal(t, Spec{Name: "member"}, spec)
}

func TestParseDefault(t *testing.T) {
	spec := Parse("manager:-no-manager")

	assert.Equal(t, "manager", spec.Name)
	assert.True(t, spec.HasDefault)
	assert.Equal(t, "no-manager", spec.Default)
	assert.False(t, spec.EncodeBase64)
}

func TestParseEmptyDefault(t *testing.T) {
	spec := Parse("mail:-")

	assert.Equal(t, "mail", spec.Name)
	assert.True(t, spec.HasDefault)
	assert.Equal(t, "", spec.Default)
}

func TestParseBase64(t *testing.T) {
	spec := Parse("jpegPhoto.base64")

	assert.Equal(t, "jpegPhoto", spec.Name)
	assert.True(t, spec.EncodeBase64)
	assert.False(t, spec.HasDefault)
}

func TestParseBase64BindsToName(t *testing.T) {
	// The suffix is stripped before the default is split off
	spec := Parse("manager:-no-manager.base64")

	assert.Equal(t, "manager", spec.Name)
	assert.Equal(t, "no-manager", spec.Default)
	assert.True(t, spec.HasDefault)
	assert.True(t, spec.EncodeBase64)
}

func TestParseDefaultContainingMarkers(t *testing.T) {
	spec := Parse("description:-a:-b.base64.base64")

	assert.Equal(t, "description", spec.Name)
	assert.Equal(t, "a:-b.base64", spec.Default)
	assert.True(t, spec.EncodeBase64)
}

func TestParseSuffixMustBeExact(t *testing.T) {
	assert.Equal(t, Spec{Name: "photo.BASE64"}, Parse("photo.BASE64"))
	assert.Equal(t, Spec{Name: "photo.base64x"}, Parse("photo.base64x"))
	assert.Equal(t, Spec{Name: "", EncodeBase64: true}, Parse(".base64"))
}

func TestParseNeverFails(t *testing.T) {
	assert.Equal(t, Spec{}, Parse(""))
	assert.Equal(t, Spec{Name: "", Default: "x", HasDefault: true}, Parse(":-x"))
	assert.Equal(t, Spec{Name: "#"}, Parse("#"))
}

func TestParseAll(t *testing.T) {
	specs := ParseAll([]string{"dn", "cn:-unknown", "photo.base64"})

	assert.Len(t, specs, 3)
	assert.Equal(t, []string{"dn", "cn", "photo"}, Names(specs))
}

func TestString(t *testing.T) {
	for _, arg := range []string{"dn", "manager:-none", "photo.base64", "manager:-none.base64"} {
		assert.Equal(t, arg, Parse(arg).String())
	}
}
