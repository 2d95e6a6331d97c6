// Package catalog exposes the cached, caller-facing catalog operations:
// search, detail lookups, and best-edition resolution. It sits between
// callers and the openlibrary client, serving cached responses where the
// operation is cacheable.
package catalog

import (
	"context"
	"strings"

	"github.com/mlahtinen/shelfmark/internal/cache"
	"github.com/mlahtinen/shelfmark/internal/openlibrary"
)

const (
	searchCacheTable = "search_cache"
	bookCacheTable   = "book_cache"
)

// Service wires the catalog client with the response cache. It is
// stateless; every method is an independent request/response operation.
type Service struct {
	client *openlibrary.Client
}

// NewService creates a Service around a constructed client.
func NewService(client *openlibrary.Client) *Service {
	return &Service{client: client}
}

// Client exposes the underlying catalog client for uncached operations.
func (s *Service) Client() *openlibrary.Client {
	return s.client
}

// NormalizeQuery produces the cache key for a search query. Lower-casing
// and trimming makes near-identical queries share one entry.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// SearchBooks runs a cached full-text search. With skipCache a fresh fetch
// is forced and the cache refreshed with the result.
func (s *Service) SearchBooks(ctx context.Context, query openlibrary.SearchQuery, skipCache bool) (*openlibrary.SearchResult, error) {
	key := NormalizeQuery(query.Q)
	fetch := func() (*openlibrary.SearchResult, error) {
		return s.client.Search(ctx, query)
	}

	var result *openlibrary.SearchResult
	var err error
	if skipCache {
		result, _, err = cache.Refresh(searchCacheTable, key, fetch)
	} else {
		result, _, err = cache.GetOrFetch(searchCacheTable, key, fetch)
	}
	return result, err
}

// GetBookDetails resolves full details for a book, work, or edition
// identifier, serving a cached resolution when one is live. The cache key
// is the bare catalog identifier.
func (s *Service) GetBookDetails(ctx context.Context, id string) (*openlibrary.ResolvedBook, error) {
	code, err := openlibrary.Classify(id, "")
	if err != nil {
		return nil, err
	}

	book, _, err := cache.GetOrFetch(bookCacheTable, code, func() (*openlibrary.ResolvedBook, error) {
		return openlibrary.ResolveBestEdition(ctx, s.client, code, openlibrary.ResolveOptions{})
	})
	return book, err
}

// GetBookByISBN fetches the edition identified by an ISBN, uncached: ISBN
// lookups land on a single edition whose details are cached under its OLID
// by GetBookDetails.
func (s *Service) GetBookByISBN(ctx context.Context, isbn string) (*openlibrary.Edition, error) {
	return s.client.GetBookByISBN(ctx, isbn)
}

// GetWork fetches a work directly.
func (s *Service) GetWork(ctx context.Context, id string) (*openlibrary.Work, error) {
	return s.client.GetWork(ctx, id)
}

// GetWorkEditions fetches a work's edition list directly.
func (s *Service) GetWorkEditions(ctx context.Context, id string, limit int) (*openlibrary.EditionList, error) {
	return s.client.GetWorkEditions(ctx, id, limit)
}

// ResolveBestEdition selects and resolves the best edition for an
// identifier with explicit options, bypassing the detail cache (callers
// supplying a known edition or an author fallback want a fresh pass).
func (s *Service) ResolveBestEdition(ctx context.Context, id string, opts openlibrary.ResolveOptions) (*openlibrary.ResolvedBook, error) {
	return openlibrary.ResolveBestEdition(ctx, s.client, id, opts)
}
