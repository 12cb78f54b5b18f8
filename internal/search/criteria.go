package search

import "time"

// Provider limits imposed by the YouTube Data API.
const (
	// MaxPageSize is the largest page the search endpoints accept.
	MaxPageSize = 50
	// MaxDetailBatch is the largest number of IDs a single details
	// request may carry. Batches above it are split.
	MaxDetailBatch = 50
)

// RankingMode selects which provider feed the retriever paginates.
type RankingMode string

const (
	// RankRecency pages the date-ordered search feed; the provider
	// filters by publish time server-side.
	RankRecency RankingMode = "recency"
	// RankPopularity pages the curated most-popular feed, which the
	// provider does not filter by recency; the timestamp and duration
	// filters are applied client-side before any detail fetch.
	RankPopularity RankingMode = "popularity"
)

// Criteria describes one retrieval. It is treated as an immutable value:
// callers build it once and the retriever never modifies it, so the same
// retriever can serve concurrent or repeated calls with different
// criteria.
type Criteria struct {
	// TimeWindow bounds how far back uploads may be.
	TimeWindow time.Duration
	// MaxDurationSeconds excludes videos longer than this.
	MaxDurationSeconds int
	// Query is the optional search term; empty matches everything.
	Query string
	// Region is the two-letter provider region code.
	Region string
	// PageSize is the per-page request size, at most MaxPageSize.
	PageSize int64
	// ResultCap is a soft cap on accumulated records, checked between
	// pages. A page may push slightly past it before pagination stops.
	ResultCap int
	// MinViewCount excludes videos with fewer views.
	MinViewCount int64
	// CategoryID is the optional provider category ID.
	CategoryID string
	// Ranking picks the feed and its filtering split.
	Ranking RankingMode
	// ExtendedDetails requests the extra metadata parts on the detail
	// fetch (tags, privacy status, topic categories).
	ExtendedDetails bool
}

// ClampedPageSize returns the page size bounded to the provider maximum.
func (c Criteria) ClampedPageSize() int64 {
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return c.PageSize
}

// CutoffFrom computes the absolute lower-bound publish time for the
// criteria relative to now, in UTC.
func (c Criteria) CutoffFrom(now time.Time) time.Time {
	return now.UTC().Add(-c.TimeWindow)
}
