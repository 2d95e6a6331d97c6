package openlibrary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		kind IdentifierKind
	}{
		{"bare edition", "OL7353617M", "OL7353617M", KindBook},
		{"bare work", "OL45883W", "OL45883W", KindWork},
		{"bare author", "OL23919A", "OL23919A", KindAuthor},
		{"books prefix", "/books/OL7353617M", "OL7353617M", KindBook},
		{"works prefix", "/works/OL45883W", "OL45883W", KindWork},
		{"authors prefix", "/authors/OL23919A", "OL23919A", KindAuthor},
		{"surrounding whitespace", "  OL45883W ", "OL45883W", KindWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentifier(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
			assert.Equal(t, tt.kind, id.Kind())
		})
	}
}

func TestParseIdentifierIdempotent(t *testing.T) {
	direct, err := ParseIdentifier("OL45883W")
	require.NoError(t, err)

	prefixed, err := ParseIdentifier("/works/" + direct.String())
	require.NoError(t, err)

	assert.Equal(t, direct, prefixed)
}

func TestParseIdentifierRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"OL",
		"OLW",
		"45883W",
		"OL45883",
		"ol45883w",
		"OL45883Wx",
		"/works/",
		"https://openlibrary.org/works/OL45883W",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseIdentifier(raw)
			var invalid *InvalidIdentifierError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, raw, invalid.Raw)
		})
	}
}

func TestClassify(t *testing.T) {
	code, err := Classify("/books/OL1M", KindBook)
	require.NoError(t, err)
	assert.Equal(t, "OL1M", code)

	// The kind is not enforced syntactically: a work OLID passes the book
	// check, since both share the same shape.
	code, err = Classify("OL45883W", KindBook)
	require.NoError(t, err)
	assert.Equal(t, "OL45883W", code)
}

func TestClassifyErrorNamesExpectedKind(t *testing.T) {
	_, err := Classify("not-an-olid", KindWork)
	var invalid *InvalidIdentifierError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, KindWork, invalid.Kind)
	assert.Contains(t, err.Error(), "work")
	assert.Contains(t, err.Error(), "not-an-olid")
}

func TestIdentifierKindUnknownSuffix(t *testing.T) {
	id, err := ParseIdentifier("OL1X")
	require.NoError(t, err)
	assert.Equal(t, IdentifierKind(""), id.Kind())
}
