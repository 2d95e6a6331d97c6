// Package covers records whether a catalog identifier has an associated
// cover image, so repeated existence probes against the cover service are
// avoided.
package covers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlahtinen/shelfmark/internal/cache"
	"github.com/mlahtinen/shelfmark/internal/openlibrary"
)

// TTL is how long a recorded probe result stays live (7 days).
const TTL = 168 * time.Hour

// Prober answers whether the cover service has an image for an OLID.
type Prober interface {
	ProbeCover(ctx context.Context, olid string) bool
}

// Checker caches cover availability probes.
type Checker struct {
	prober Prober
	now    func() time.Time
}

// NewChecker creates a Checker backed by the given prober, normally an
// *openlibrary.Client.
func NewChecker(prober Prober) *Checker {
	return &Checker{prober: prober, now: time.Now}
}

var _ Prober = (*openlibrary.Client)(nil)

// HasCover reports whether the identifier has a cover image, serving a
// cached answer while it is live and probing (then recording) otherwise.
// Probe failures are indistinguishable from "no cover" for the caller.
func (c *Checker) HasCover(ctx context.Context, olid string) bool {
	if olid == "" {
		return false
	}

	if hasCover, ok := c.cachedResult(olid); ok {
		slog.Debug("Cover cache hit", "olid", olid, "has_cover", hasCover)
		return hasCover
	}

	hasCover := c.prober.ProbeCover(ctx, olid)
	if err := c.record(olid, hasCover); err != nil {
		// A failed write only costs a repeat probe next time.
		slog.Warn("Failed to record cover availability", "olid", olid, "error", err)
	}
	return hasCover
}

// cachedResult returns a live cached probe result. Stale rows are treated
// as absent and overwritten by the next record.
func (c *Checker) cachedResult(olid string) (bool, bool) {
	cacheDB, err := cache.GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to get cover cache, probing directly", "error", err)
		return false, false
	}

	query := `
		SELECT has_cover, checked_at
		FROM cover_cache
		WHERE olid = ?
	`

	var hasCover int
	var checkedAt int64
	err = cacheDB.QueryRow(query, olid).Scan(&hasCover, &checkedAt)
	if err == sql.ErrNoRows {
		return false, false
	}
	if err != nil {
		slog.Warn("Failed to query cover cache", "olid", olid, "error", err)
		return false, false
	}

	if c.now().Sub(time.UnixMilli(checkedAt)) >= TTL {
		return false, false
	}
	return hasCover != 0, true
}

func (c *Checker) record(olid string, hasCover bool) error {
	cacheDB, err := cache.GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to get cover cache: %w", err)
	}

	value := 0
	if hasCover {
		value = 1
	}

	query := `
		INSERT INTO cover_cache (olid, has_cover, checked_at)
		VALUES (?, ?, ?)
		ON CONFLICT(olid) DO UPDATE SET
			has_cover = excluded.has_cover,
			checked_at = excluded.checked_at
	`
	return cacheDB.Exec(query, olid, value, c.now().UTC().UnixMilli())
}
