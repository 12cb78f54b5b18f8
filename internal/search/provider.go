package search

import (
	"context"
	"time"

	"shortscope/internal/models"
)

// Candidate is a lightweight entry from a provider feed page, carrying
// just enough for client-side prefiltering before the detail fetch.
type Candidate struct {
	ID          string
	PublishedAt time.Time

	// DurationSeconds is known up front only for feeds that include
	// content details (the popular feed). HasDuration marks it valid.
	DurationSeconds float64
	HasDuration     bool
}

// Page is one page of feed results. RawCount is the item count before
// any client-side prefiltering; a page with RawCount zero ends
// pagination regardless of the remaining cap.
type Page struct {
	Candidates []Candidate
	NextToken  string
	RawCount   int
}

// Provider is the slice of the video service the retriever depends on:
// paged candidate feeds plus a batched detail fetch. The concrete
// implementation lives in internal/yt; tests substitute fakes.
type Provider interface {
	// RecentPage fetches one page of the date-ordered search feed,
	// already restricted server-side to uploads after publishedAfter.
	RecentPage(ctx context.Context, c Criteria, publishedAfter time.Time, pageToken string) (*Page, error)

	// PopularPage fetches one page of the curated most-popular feed.
	// The provider applies no recency filter to this feed.
	PopularPage(ctx context.Context, c Criteria, pageToken string) (*Page, error)

	// Details fetches full records for a batch of video IDs. Callers
	// must keep len(ids) within MaxDetailBatch.
	Details(ctx context.Context, ids []string, extended bool) ([]*models.Video, error)
}
