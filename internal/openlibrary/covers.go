package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// CoverSize selects the cover image variant served by the cover service.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

const defaultCoverMaxWidth = 500

// CoverURL constructs the cover image URL for an edition OLID.
func (c *Client) CoverURL(olid string, size CoverSize) string {
	return fmt.Sprintf("%s/b/olid/%s-%s.jpg", c.coverBaseURL, olid, size)
}

// CoverURLByID constructs the cover image URL for a numeric cover ID, as
// carried by search docs and edition covers lists.
func (c *Client) CoverURLByID(coverID int, size CoverSize) string {
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", c.coverBaseURL, coverID, size)
}

// ProbeCover checks whether the cover service has an image for the given
// OLID. The probe endpoint answers with JSON; an "error" field means not
// found. Probe failures are reported as "no cover", never as an error,
// since a missing cover is not a failure state for callers.
func (c *Client) ProbeCover(ctx context.Context, olid string) bool {
	endpoint := fmt.Sprintf("%s/b/olid/%s.json", c.coverBaseURL, olid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Cover probe failed", "olid", olid, "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Debug("Cover probe returned unparseable body", "olid", olid, "error", err)
		return false
	}
	_, notFound := payload["error"]
	return !notFound
}

// DownloadCover downloads a cover image and saves it to savePath, resizing
// down to maxWidth when the source is wider. A non-positive maxWidth uses
// a sensible default.
func (c *Client) DownloadCover(ctx context.Context, coverURL, savePath string, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = defaultCoverMaxWidth
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CatalogError{
			Message:    fmt.Sprintf("unexpected status %d downloading cover", resp.StatusCode),
			StatusCode: resp.StatusCode,
			Endpoint:   coverURL,
		}
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}
