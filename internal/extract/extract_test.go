package extract

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/models"
)

func newEntry(pairs ...string) *models.Entry {
	entry := models.NewEntry(1)
	for i := 0; i+1 < len(pairs); i += 2 {
		entry.AddAttribute(pairs[i], []byte(pairs[i+1]))
	}
	return entry
}

func specs(args ...string) []attrspec.Spec {
	return attrspec.ParseAll(args)
}

func rowStrings(seq func(func(Row) bool)) [][]string {
	var out [][]string
	for row := range seq {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = string(v)
		}
		out = append(out, fields)
	}
	return out
}

func TestRowsMultiValued(t *testing.T) {
	entry := newEntry("dn", "cn=foo,dc=example", "member", "cn=a", "member", "cn=b")

	rows := rowStrings(Rows(entry, specs("dn", "member")))

	assert.Equal(t, [][]string{
		{"cn=foo,dc=example", "cn=a"},
		{"cn=foo,dc=example", "cn=b"},
	}, rows)
}

func TestRowsRowMajorOrder(t *testing.T) {
	entry := newEntry(
		"a", "1", "a", "2",
		"b", "3", "b", "4",
		"c", "5", "c", "6",
	)

	rows := rowStrings(Rows(entry, specs("a", "b", "c")))

	assert.Equal(t, [][]string{
		{"1", "3", "5"}, {"1", "3", "6"},
		{"1", "4", "5"}, {"1", "4", "6"},
		{"2", "3", "5"}, {"2", "3", "6"},
		{"2", "4", "5"}, {"2", "4", "6"},
	}, rows)
}

func TestRowsValueOrderFollowsEntry(t *testing.T) {
	entry := newEntry("x", "3", "y", "a", "x", "1", "x", "2")

	rows := rowStrings(Rows(entry, specs("y", "x")))

	assert.Equal(t, [][]string{{"a", "3"}, {"a", "1"}, {"a", "2"}}, rows)
}

func TestRowsDropOnMiss(t *testing.T) {
	entry := newEntry("dn", "cn=foo", "member", "cn=a", "member", "cn=b")

	assert.Empty(t, rowStrings(Rows(entry, specs("dn", "manager", "member"))))
}

func TestRowsDefault(t *testing.T) {
	entry := newEntry("dn", "cn=foo")

	rows := rowStrings(Rows(entry, specs("dn", "manager:-no-manager")))

	assert.Equal(t, [][]string{{"cn=foo", "no-manager"}}, rows)
}

func TestRowsDefaultIgnoredWhenPresent(t *testing.T) {
	entry := newEntry("dn", "cn=foo", "manager", "cn=boss")

	rows := rowStrings(Rows(entry, specs("dn", "manager:-no-manager")))

	assert.Equal(t, [][]string{{"cn=foo", "cn=boss"}}, rows)
}

func TestRowsBase64(t *testing.T) {
	entry := models.NewEntry(1)
	entry.AddAttribute("dn", []byte("cn=foo"))
	entry.AddAttribute("photo", []byte{0x00, 0xff, 0x10})

	rows := rowStrings(Rows(entry, specs("dn", "photo.base64")))

	assert.Equal(t, [][]string{{"cn=foo", "AP8Q"}}, rows)
}

func TestRowsBase64DefaultIsVerbatim(t *testing.T) {
	entry := newEntry("dn", "cn=foo")

	rows := rowStrings(Rows(entry, specs("photo:-none.base64")))

	assert.Equal(t, [][]string{{"none"}}, rows)
}

func TestBase64RoundTrip(t *testing.T) {
	source := "w7hzdMO4bA=="
	raw, err := base64.StdEncoding.DecodeString(source)
	require.NoError(t, err)

	entry := models.NewEntry(1)
	entry.AddAttribute("sn", raw)

	values, ok := Values(entry, attrspec.Parse("sn.base64"))
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte(source)}, values)
}

func TestRowsNoSpecs(t *testing.T) {
	entry := newEntry("dn", "cn=foo")

	assert.Empty(t, rowStrings(Rows(entry, nil)))
}

func TestProduct(t *testing.T) {
	lists := [][][]byte{
		{[]byte("1"), []byte("2"), []byte("3")},
		{[]byte("4"), []byte("5")},
	}

	rows := rowStrings(Product(lists))

	assert.Equal(t, [][]string{
		{"1", "4"}, {"1", "5"},
		{"2", "4"}, {"2", "5"},
		{"3", "4"}, {"3", "5"},
	}, rows)
}

func TestProductEmptyList(t *testing.T) {
	lists := [][][]byte{{[]byte("1")}, {}, {[]byte("2")}}

	assert.Empty(t, rowStrings(Product(lists)))
	assert.Empty(t, rowStrings(Product(nil)))
}

func TestProductStopsEarly(t *testing.T) {
	lists := [][][]byte{{[]byte("1"), []byte("2")}, {[]byte("3"), []byte("4")}}

	var seen int
	for range Product(lists) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestProductRowsAreIndependent(t *testing.T) {
	lists := [][][]byte{{[]byte("1"), []byte("2")}}

	var rows []Row
	for row := range Product(lists) {
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)
	assert.Equal(t, "1", string(rows[0][0]))
	assert.Equal(t, "2", string(rows[1][0]))
}

func TestFields(t *testing.T) {
	entry := newEntry("dn", "cn=foo", "cn", "foo", "cn", "bar")

	fields := Fields(entry, specs("cn", "manager", "title:-none", "dn"))

	require.Len(t, fields, 3)
	assert.Equal(t, "cn", fields[0].Name)
	assert.Equal(t, "title", fields[1].Name)
	assert.Equal(t, "dn", fields[2].Name)
	assert.Equal(t, [][]byte{[]byte("foo"), []byte("bar")}, fields[0].Values)
	assert.Equal(t, [][]byte{[]byte("none")}, fields[1].Values)
	assert.Equal(t, [][]byte{[]byte("cn=foo")}, fields[2].Values)
}
