package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultEditionLimit is the page size for a work's edition list.
	DefaultEditionLimit = 50
	// DefaultWorkLimit is the page size for an author's work list.
	DefaultWorkLimit = 20
	// DefaultSearchLimit is the page size for full-text search.
	DefaultSearchLimit = 20
)

// SearchQuery configures a full-text search request. Only Q is required.
type SearchQuery struct {
	Q      string
	Fields string
	Limit  int
	Offset int
	Page   int
	Lang   string
	Sort   string
}

// GetBook fetches a single edition by its OLID.
func (c *Client) GetBook(ctx context.Context, id string) (*Edition, error) {
	code, err := Classify(id, KindBook)
	if err != nil {
		return nil, err
	}

	var edition Edition
	if err := c.getJSON(ctx, fmt.Sprintf("%s/books/%s.json", c.baseURL, code), &edition); err != nil {
		return nil, err
	}
	return &edition, nil
}

// GetWork fetches a work by its OLID.
func (c *Client) GetWork(ctx context.Context, id string) (*Work, error) {
	code, err := Classify(id, KindWork)
	if err != nil {
		return nil, err
	}

	var work Work
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s.json", c.baseURL, code), &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// GetAuthor fetches an author by their OLID.
func (c *Client) GetAuthor(ctx context.Context, id string) (*Author, error) {
	code, err := Classify(id, KindAuthor)
	if err != nil {
		return nil, err
	}

	var author Author
	if err := c.getJSON(ctx, fmt.Sprintf("%s/authors/%s.json", c.baseURL, code), &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// GetWorkEditions fetches the editions belonging to a work. A non-positive
// limit falls back to DefaultEditionLimit.
func (c *Client) GetWorkEditions(ctx context.Context, id string, limit int) (*EditionList, error) {
	code, err := Classify(id, KindWork)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultEditionLimit
	}

	var list EditionList
	endpoint := fmt.Sprintf("%s/works/%s/editions.json?limit=%d", c.baseURL, code, limit)
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAuthorWorks fetches the works by an author. A non-positive limit falls
// back to DefaultWorkLimit.
func (c *Client) GetAuthorWorks(ctx context.Context, id string, limit int) (*WorkList, error) {
	code, err := Classify(id, KindAuthor)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultWorkLimit
	}

	var list WorkList
	endpoint := fmt.Sprintf("%s/authors/%s/works.json?limit=%d", c.baseURL, code, limit)
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Search runs a full-text search. An HTTP 422 means the remote search
// engine could not process the query text; that is served as an empty
// result rather than an error.
func (c *Client) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	if strings.TrimSpace(query.Q) == "" {
		return &SearchResult{Docs: []SearchDoc{}}, nil
	}

	params := url.Values{}
	params.Set("q", query.Q)
	if query.Fields != "" {
		params.Set("fields", query.Fields)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Lang != "" {
		params.Set("lang", query.Lang)
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}

	var result SearchResult
	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		var catalogErr *CatalogError
		if errors.As(err, &catalogErr) && catalogErr.StatusCode == http.StatusUnprocessableEntity {
			return &SearchResult{Docs: []SearchDoc{}}, nil
		}
		return nil, err
	}
	if result.Docs == nil {
		result.Docs = []SearchDoc{}
	}
	return &result, nil
}

// GetBookByISBN fetches the edition identified by an ISBN-10 or ISBN-13.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*Edition, error) {
	cleaned, err := CleanISBN(isbn)
	if err != nil {
		return nil, err
	}

	var edition Edition
	if err := c.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, cleaned), &edition); err != nil {
		return nil, err
	}
	return &edition, nil
}

// GetWorkRatings fetches the community rating aggregate for a work.
func (c *Client) GetWorkRatings(ctx context.Context, id string) (*RatingsSummary, error) {
	code, err := Classify(id, KindWork)
	if err != nil {
		return nil, err
	}

	var ratings RatingsSummary
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s/ratings.json", c.baseURL, code), &ratings); err != nil {
		return nil, err
	}
	return &ratings, nil
}

// GetWorkBookshelves fetches the community bookshelf counts for a work.
func (c *Client) GetWorkBookshelves(ctx context.Context, id string) (*BookshelfCounts, error) {
	code, err := Classify(id, KindWork)
	if err != nil {
		return nil, err
	}

	var shelves BookshelfCounts
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s/bookshelves.json", c.baseURL, code), &shelves); err != nil {
		return nil, err
	}
	return &shelves, nil
}
