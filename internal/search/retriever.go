package search

import (
	"context"
	"sort"
	"time"

	"shortscope/internal/models"
)

// ProgressFunc is notified after each processed page with the 1-based
// page number and the number of records accumulated so far. It lets the
// CLI and the dashboard show progress without the retriever knowing
// anything about rendering.
type ProgressFunc func(page, accumulated int)

// Option configures a Retriever.
type Option func(*Retriever)

// WithProgress installs a per-page progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Retriever) { r.progress = fn }
}

// Retriever accumulates filtered video records from a paged provider
// feed. Each Retrieve call is independent and synchronous; the only
// mutable state is the call-local accumulator.
type Retriever struct {
	provider Provider
	progress ProgressFunc
	now      func() time.Time
}

func New(provider Provider, opts ...Option) *Retriever {
	r := &Retriever{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve pages the feed selected by the criteria's ranking mode,
// fetches details for each page's candidates in one batched request,
// keeps the records satisfying the duration and view-count filters, and
// stops on feed exhaustion or once the soft result cap is reached.
//
// On a provider failure mid-pagination the records accumulated so far
// are returned alongside a *ProviderError; callers should present them
// as a partial result with a warning.
//
// The returned slice is sorted by view count descending, with records
// of equal view count keeping their original fetch order, and holds at
// most ResultCap records.
func (r *Retriever) Retrieve(ctx context.Context, c Criteria) ([]*models.Video, error) {
	cutoff := c.CutoffFrom(r.now())
	strat := strategyFor(c.Ranking)

	var accumulated []*models.Video
	token := ""
	pageNum := 0

	for {
		pageNum++

		page, err := strat.page(ctx, r.provider, c, cutoff, token)
		if err != nil {
			return finish(accumulated, c.ResultCap), &ProviderError{Op: "search", Page: pageNum, Err: err}
		}

		// An empty page means the feed is exhausted even if the
		// provider handed out a continuation token.
		if page.RawCount == 0 {
			break
		}

		var ids []string
		for _, cand := range page.Candidates {
			if strat.admit(cand, cutoff, c.MaxDurationSeconds) {
				ids = append(ids, cand.ID)
			}
		}

		if len(ids) > 0 {
			details, err := r.fetchDetails(ctx, ids, c.ExtendedDetails)
			if err != nil {
				return finish(accumulated, c.ResultCap), &ProviderError{Op: "details", Page: pageNum, Err: err}
			}
			for _, video := range details {
				if video.DurationSeconds <= float64(c.MaxDurationSeconds) && video.ViewCount >= c.MinViewCount {
					accumulated = append(accumulated, video)
				}
			}
		}

		if r.progress != nil {
			r.progress(pageNum, len(accumulated))
		}

		token = page.NextToken
		if token == "" || len(accumulated) >= c.ResultCap {
			break
		}
	}

	return finish(accumulated, c.ResultCap), nil
}

// finish establishes the final ordering and trims the accumulator back
// to the cap. A page may have pushed the accumulator past the cap
// before pagination stopped; only the top of the ranking survives.
func finish(videos []*models.Video, limit int) []*models.Video {
	sortByViews(videos)
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

// fetchDetails requests full records for the given IDs, splitting into
// multiple requests when a page produced more candidates than one
// details call may carry.
func (r *Retriever) fetchDetails(ctx context.Context, ids []string, extended bool) ([]*models.Video, error) {
	if len(ids) <= MaxDetailBatch {
		return r.provider.Details(ctx, ids, extended)
	}

	var all []*models.Video
	for start := 0; start < len(ids); start += MaxDetailBatch {
		end := start + MaxDetailBatch
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := r.provider.Details(ctx, ids[start:end], extended)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func sortByViews(videos []*models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ViewCount > videos[j].ViewCount
	})
}
