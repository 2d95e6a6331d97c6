package openlibrary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// UnknownAuthor is the terminal fallback when no author can be resolved
// for a selected edition.
const UnknownAuthor = "Unknown Author"

var (
	// ErrNoUsableEditions is returned when every candidate edition of a
	// work lacks author data.
	ErrNoUsableEditions = errors.New("no usable editions found")
	// ErrEditionResolutionFailed is the opaque failure surfaced when a
	// fetch during resolution fails with no fallback path; the cause is
	// logged, not propagated.
	ErrEditionResolutionFailed = errors.New("edition resolution failed")
)

// Scoring weights for edition selection. These reward data completeness
// and are a fixed contract, not tunable parameters.
const (
	scorePageCount  = 100
	scoreCover      = 75
	scoreInlineName = 60
	scoreEnglish    = 50
)

// ResolveOptions tune ResolveBestEdition.
type ResolveOptions struct {
	// EditionID names a specific edition to use, skipping candidate scoring.
	EditionID string
	// FallbackAuthor is used when neither the edition nor the work yields
	// an author name.
	FallbackAuthor string
	// EditionLimit caps the candidate list; defaults to DefaultEditionLimit.
	EditionLimit int
}

// ResolvedBook is the outcome of edition resolution: the chosen edition
// plus author and description resolved transitively through the work.
type ResolvedBook struct {
	Edition     Edition `json:"edition"`
	WorkID      string  `json:"work_id,omitempty"`
	Author      string  `json:"author"`
	Description string  `json:"description,omitempty"`
}

// ScoreEdition computes the selection score for a candidate edition.
func ScoreEdition(e Edition) int {
	score := 0
	if e.NumberOfPages > 0 {
		score += scorePageCount
	}
	if e.HasCover() {
		score += scoreCover
	}
	if e.InlineAuthorName() != "" {
		score += scoreInlineName
	}
	if e.InEnglish() {
		score += scoreEnglish
	}
	return score
}

// SelectBestEdition drops editions without any author data and picks the
// highest-scoring remainder. Ties keep the earlier candidate, preserving
// the catalog's own ordering.
func SelectBestEdition(candidates []Edition) (*Edition, error) {
	var best *Edition
	bestScore := -1
	for i := range candidates {
		if len(candidates[i].Authors) == 0 {
			continue
		}
		if score := ScoreEdition(candidates[i]); score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, ErrNoUsableEditions
	}
	return best, nil
}

// ResolveBestEdition selects the most complete edition for a work-or-edition
// identifier and resolves its author and description, following back-
// references through the work when the edition record omits them.
func ResolveBestEdition(ctx context.Context, client *Client, id string, opts ResolveOptions) (*ResolvedBook, error) {
	resolved, err := resolveBestEdition(ctx, client, id, opts)
	if err != nil {
		if errors.Is(err, ErrNoUsableEditions) {
			return nil, err
		}
		var invalid *InvalidIdentifierError
		if errors.As(err, &invalid) {
			return nil, err
		}
		slog.Warn("Edition resolution failed", "id", id, "error", err)
		return nil, ErrEditionResolutionFailed
	}
	return resolved, nil
}

func resolveBestEdition(ctx context.Context, client *Client, id string, opts ResolveOptions) (*ResolvedBook, error) {
	parsed, err := ParseIdentifier(id)
	if err != nil {
		return nil, err
	}

	editionID := opts.EditionID
	if editionID == "" && parsed.Kind() == KindBook {
		editionID = parsed.String()
	}

	var edition *Edition
	workID := ""
	if parsed.Kind() == KindWork {
		workID = parsed.String()
	}

	if editionID != "" {
		edition, err = client.GetBook(ctx, editionID)
		if err != nil {
			return nil, err
		}
	} else {
		list, err := client.GetWorkEditions(ctx, parsed.String(), opts.EditionLimit)
		if err != nil {
			return nil, err
		}
		edition, err = SelectBestEdition(list.Entries)
		if err != nil {
			return nil, err
		}
	}

	if workID == "" && len(edition.Works) > 0 {
		workID = edition.Works[0].OLID()
	}

	// The work is fetched lazily, at most once; author fallback tolerates
	// a failed fetch, description resolution does not.
	var work *Work
	var workErr error
	workFetched := false
	getWork := func() (*Work, error) {
		if !workFetched {
			workFetched = true
			if workID == "" {
				workErr = errors.New("edition has no work back-reference")
			} else {
				work, workErr = client.GetWork(ctx, workID)
			}
		}
		return work, workErr
	}

	author := resolveAuthor(ctx, client, edition, getWork, opts.FallbackAuthor)

	description := strings.TrimSpace(edition.Description.Value)
	if description == "" && workID != "" {
		w, err := getWork()
		if err != nil {
			return nil, err
		}
		description = strings.TrimSpace(w.Description.Value)
	}

	return &ResolvedBook{
		Edition:     *edition,
		WorkID:      workID,
		Author:      author,
		Description: description,
	}, nil
}

// resolveAuthor walks the fallback chain: edition inline name, edition
// author back-reference, the work's first author (inline or fetched), the
// caller-supplied fallback, then UnknownAuthor.
func resolveAuthor(ctx context.Context, client *Client, edition *Edition, getWork func() (*Work, error), fallback string) string {
	if name := edition.InlineAuthorName(); name != "" {
		return name
	}

	for _, ref := range edition.Authors {
		olid := Ref{Key: ref.Key}.OLID()
		if olid == "" {
			continue
		}
		author, err := client.GetAuthor(ctx, olid)
		if err != nil {
			slog.Debug("Edition author fetch failed, trying work", "author", olid, "error", err)
			break
		}
		if name := strings.TrimSpace(author.Name); name != "" {
			return name
		}
	}

	if work, err := getWork(); err == nil && len(work.Authors) > 0 {
		entry := work.Authors[0]
		if name := strings.TrimSpace(entry.Name); name != "" {
			return name
		}
		if olid := entry.Author.OLID(); olid != "" {
			if author, err := client.GetAuthor(ctx, olid); err == nil {
				if name := strings.TrimSpace(author.Name); name != "" {
					return name
				}
			}
		}
	}

	if fallback != "" {
		return fallback
	}
	return UnknownAuthor
}
