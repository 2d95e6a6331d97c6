package openlibrary

import (
	"encoding/json"
	"strings"
)

// Text is a field the catalog serves either as a bare string or as a
// {"type": ..., "value": ...} object. It always unwraps to the string value.
type Text struct {
	Value string
	Type  string
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = s
		t.Type = ""
		return nil
	}
	var obj struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Value = obj.Value
	t.Type = obj.Type
	return nil
}

func (t Text) String() string { return t.Value }

// Ref is a back-reference to another catalog resource, e.g.
// {"key": "/authors/OL23919A"}.
type Ref struct {
	Key string `json:"key"`
}

// OLID returns the bare identifier embedded in the reference key, or ""
// if the key is empty or malformed.
func (r Ref) OLID() string {
	if r.Key == "" {
		return ""
	}
	code, err := Classify(r.Key, "")
	if err != nil {
		return ""
	}
	return code
}

// EditionAuthor is an author entry on an edition: some responses carry an
// inline name, others only a back-reference requiring a follow-up fetch.
type EditionAuthor struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Edition is a specific published instance of a work, as returned by the
// /books/{id}.json and /works/{id}/editions.json endpoints.
type Edition struct {
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle,omitempty"`
	Description   Text            `json:"description,omitzero"`
	NumberOfPages int             `json:"number_of_pages,omitempty"`
	PublishDate   string          `json:"publish_date,omitempty"`
	Publishers    []string        `json:"publishers,omitempty"`
	ISBN10        []string        `json:"isbn_10,omitempty"`
	ISBN13        []string        `json:"isbn_13,omitempty"`
	Covers        []int           `json:"covers,omitempty"`
	CoverURL      string          `json:"cover_url,omitempty"`
	Languages     []Ref           `json:"languages,omitempty"`
	Authors       []EditionAuthor `json:"authors,omitempty"`
	Works         []Ref           `json:"works,omitempty"`
}

// OLID returns the edition's bare identifier.
func (e Edition) OLID() string { return Ref{Key: e.Key}.OLID() }

// HasCover reports whether the edition carries any cover reference.
func (e Edition) HasCover() bool {
	return e.CoverURL != "" || len(e.Covers) > 0
}

// InEnglish reports whether English appears in the edition's language list.
func (e Edition) InEnglish() bool {
	for _, lang := range e.Languages {
		if lang.Key == "/languages/eng" {
			return true
		}
	}
	return false
}

// InlineAuthorName returns the first non-empty inline author name, or "".
func (e Edition) InlineAuthorName() string {
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			return name
		}
	}
	return ""
}

// WorkAuthor is an author entry on a work, carrying a role type and a
// back-reference (occasionally an inline structure with a name).
type WorkAuthor struct {
	Type   Ref    `json:"type"`
	Author Ref    `json:"author"`
	Name   string `json:"name,omitempty"`
}

// Work is an abstract literary creation aggregating many editions.
type Work struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Description Text         `json:"description,omitzero"`
	Authors     []WorkAuthor `json:"authors,omitempty"`
	Covers      []int        `json:"covers,omitempty"`
	Subjects    []string     `json:"subjects,omitempty"`
}

// OLID returns the work's bare identifier.
func (w Work) OLID() string { return Ref{Key: w.Key}.OLID() }

// Author is an author resource from /authors/{id}.json.
type Author struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	PersonalName string `json:"personal_name,omitempty"`
	BirthDate    string `json:"birth_date,omitempty"`
	Bio          Text   `json:"bio,omitzero"`
}

// EditionList is the paged response from /works/{id}/editions.json.
type EditionList struct {
	Size    int       `json:"size"`
	Entries []Edition `json:"entries"`
}

// WorkList is the paged response from /authors/{id}/works.json.
type WorkList struct {
	Size    int    `json:"size"`
	Entries []Work `json:"entries"`
}

// SearchDoc is a lightweight work/edition hybrid returned by full-text
// search.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name,omitempty"`
	AuthorKey        []string `json:"author_key,omitempty"`
	CoverID          int      `json:"cover_i,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	EditionCount     int      `json:"edition_count,omitempty"`
	Editions         *struct {
		NumFound int         `json:"numFound"`
		Docs     []SearchDoc `json:"docs"`
	} `json:"editions,omitempty"`
}

// OLID returns the document's bare work identifier.
func (d SearchDoc) OLID() string { return Ref{Key: d.Key}.OLID() }

// SearchResult is a paged full-text search response.
type SearchResult struct {
	NumFound      int         `json:"numFound"`
	Start         int         `json:"start"`
	NumFoundExact bool        `json:"numFoundExact"`
	Docs          []SearchDoc `json:"docs"`
}

// RatingsSummary is the aggregate from /works/{id}/ratings.json.
type RatingsSummary struct {
	Summary struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	} `json:"summary"`
}

// BookshelfCounts is the aggregate from /works/{id}/bookshelves.json.
type BookshelfCounts struct {
	Counts struct {
		WantToRead       int `json:"want_to_read"`
		CurrentlyReading int `json:"currently_reading"`
		AlreadyRead      int `json:"already_read"`
	} `json:"counts"`
}
