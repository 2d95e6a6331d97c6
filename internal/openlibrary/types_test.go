package openlibrary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextUnmarshalString(t *testing.T) {
	var text Text
	require.NoError(t, json.Unmarshal([]byte(`"A plain description."`), &text))
	assert.Equal(t, "A plain description.", text.Value)
	assert.Empty(t, text.Type)
}

func TestTextUnmarshalObject(t *testing.T) {
	var text Text
	require.NoError(t, json.Unmarshal([]byte(`{"type": "/type/text", "value": "A wrapped description."}`), &text))
	assert.Equal(t, "A wrapped description.", text.Value)
	assert.Equal(t, "/type/text", text.Type)
}

func TestTextUnmarshalRejectsOtherShapes(t *testing.T) {
	var text Text
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &text))
}

func TestTextInsideEdition(t *testing.T) {
	data := `{
		"key": "/books/OL7353617M",
		"title": "The Hobbit",
		"description": {"type": "/type/text", "value": "In a hole in the ground..."}
	}`

	var edition Edition
	require.NoError(t, json.Unmarshal([]byte(data), &edition))
	assert.Equal(t, "In a hole in the ground...", edition.Description.Value)
	assert.Equal(t, "OL7353617M", edition.OLID())
}

func TestRefOLID(t *testing.T) {
	assert.Equal(t, "OL23919A", Ref{Key: "/authors/OL23919A"}.OLID())
	assert.Equal(t, "OL45883W", Ref{Key: "/works/OL45883W"}.OLID())
	assert.Equal(t, "", Ref{}.OLID())
	assert.Equal(t, "", Ref{Key: "/authors/garbage"}.OLID())
}

func TestEditionHasCover(t *testing.T) {
	assert.False(t, Edition{}.HasCover())
	assert.True(t, Edition{Covers: []int{12345}}.HasCover())
	assert.True(t, Edition{CoverURL: "https://example.com/cover.jpg"}.HasCover())
}

func TestEditionInEnglish(t *testing.T) {
	assert.False(t, Edition{}.InEnglish())
	assert.False(t, Edition{Languages: []Ref{{Key: "/languages/fin"}}}.InEnglish())
	assert.True(t, Edition{Languages: []Ref{{Key: "/languages/fin"}, {Key: "/languages/eng"}}}.InEnglish())
}

func TestEditionInlineAuthorName(t *testing.T) {
	assert.Empty(t, Edition{}.InlineAuthorName())
	assert.Empty(t, Edition{Authors: []EditionAuthor{{Key: "/authors/OL23919A"}}}.InlineAuthorName())
	assert.Equal(t, "J. R. R. Tolkien", Edition{Authors: []EditionAuthor{
		{Key: "/authors/OL26320A", Name: "  J. R. R. Tolkien "},
	}}.InlineAuthorName())
}

func TestSearchResultUnmarshal(t *testing.T) {
	data := `{
		"numFound": 2,
		"start": 0,
		"numFoundExact": true,
		"docs": [
			{"key": "/works/OL45883W", "title": "The Hobbit", "author_name": ["J. R. R. Tolkien"], "first_publish_year": 1937},
			{"key": "/works/OL27448W", "title": "The Lord of the Rings"}
		]
	}`

	var result SearchResult
	require.NoError(t, json.Unmarshal([]byte(data), &result))
	assert.Equal(t, 2, result.NumFound)
	require.Len(t, result.Docs, 2)
	assert.Equal(t, "OL45883W", result.Docs[0].OLID())
	assert.Equal(t, 1937, result.Docs[0].FirstPublishYear)
}
