package cache

// SQL schemas for cache tables.
// The generic tables use "cache_key" as the primary key column; timestamps
// are integer milliseconds since the epoch.

// SearchCacheSchema defines the schema for full-text search result cache,
// keyed by the normalized (lower-cased, trimmed) query text.
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_cached_at ON search_cache(cached_at);
`

// BookCacheSchema defines the schema for book detail cache, keyed by the
// bare Open Library identifier.
const BookCacheSchema = `
CREATE TABLE IF NOT EXISTS book_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_book_cached_at ON book_cache(cached_at);
`

// CoverCacheSchema defines the schema for the cover availability cache.
// Unlike the generic tables it stores a boolean, not a JSON document.
const CoverCacheSchema = `
CREATE TABLE IF NOT EXISTS cover_cache (
	olid TEXT PRIMARY KEY NOT NULL,
	has_cover INTEGER NOT NULL,
	checked_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cover_checked_at ON cover_cache(checked_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	SearchCacheSchema,
	BookCacheSchema,
	CoverCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"search_cache": true,
	"book_cache":   true,
	"cover_cache":  true,
}
