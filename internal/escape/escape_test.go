package escape

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "plain value", Escape([]byte("plain value")))
	assert.Equal(t, `\28cn\5c3d\2a\29`, Escape([]byte(`(cn\3d*)`)))
}

func TestEscapeSpecialBytes(t *testing.T) {
	assert.Equal(t, `a\00b`, Escape([]byte("a\x00b")))
	assert.Equal(t, `\28\29\2a\5c\3a`, Escape([]byte(`()*\:`)))
	assert.Equal(t, `\c3\b8`, Escape([]byte("ø")))
	assert.Equal(t, "tab\tand\nnewline", Escape([]byte("tab\tand\nnewline")))
}

func TestUnescape(t *testing.T) {
	value, err := Unescape([]byte(`\28cn\3D\2a\29`))
	require.NoError(t, err)
	assert.Equal(t, []byte("(cn=*)"), value)

	value, err = Unescape([]byte("no escapes"))
	require.NoError(t, err)
	assert.Equal(t, []byte("no escapes"), value)
}

func TestUnescapeInvalid(t *testing.T) {
	for _, input := range []string{`\`, `\4`, `abc\zz`, `\4g`} {
		_, err := Unescape([]byte(input))
		assert.ErrorIs(t, err, ErrInvalidEscape, input)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, input := range []string{"", "cn=foo,dc=example", "østøl", "a:b", "(*)\\\x00\xff"} {
		decoded, err := Unescape([]byte(Escape([]byte(input))))
		require.NoError(t, err)
		assert.Equal(t, input, string(decoded))
	}
}

func TestLines(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Lines(strings.NewReader("cn=a(b)\nø\nlast*"), &out, false))
	assert.Equal(t, "cn=a\\28b\\29\n\\c3\\b8\nlast\\2a", out.String())

	out.Reset()
	require.NoError(t, Lines(strings.NewReader("cn=a\\28b\\29\n\\C3\\B8\n"), &out, true))
	assert.Equal(t, "cn=a(b)\nø\n", out.String())
}

func TestLinesEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Lines(strings.NewReader(""), &out, false))
	assert.Empty(t, out.String())
}

func TestLinesReverseError(t *testing.T) {
	var out bytes.Buffer
	err := Lines(strings.NewReader("ok\nbad\\zz\n"), &out, true)
	assert.ErrorIs(t, err, ErrInvalidEscape)
	assert.Contains(t, err.Error(), "line 2")
}

var errClosedPipe = errors.New("closed pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errClosedPipe
}

func TestLinesStopsOnWriteError(t *testing.T) {
	// Enough input to overflow the output buffer before the bad line
	input := strings.Repeat("abcdefgh\n", 1000) + "bad\\zz\n"

	err := Lines(strings.NewReader(input), failingWriter{}, true)
	assert.ErrorIs(t, err, errClosedPipe)
	assert.NotErrorIs(t, err, ErrInvalidEscape)
}
