package search

import (
	"context"
	"time"
)

// strategy captures what differs between the two ranking modes: the
// shape of the page request and how much filtering is the client's job
// before the detail fetch.
type strategy interface {
	page(ctx context.Context, p Provider, c Criteria, cutoff time.Time, token string) (*Page, error)
	admit(cand Candidate, cutoff time.Time, maxDurationSeconds int) bool
}

func strategyFor(mode RankingMode) strategy {
	if mode == RankPopularity {
		return popularityStrategy{}
	}
	return recencyStrategy{}
}

// recencyStrategy pages the date-ordered search feed. The provider
// already filters by publish time and coarsely by duration, so every
// candidate proceeds to the detail fetch.
type recencyStrategy struct{}

func (recencyStrategy) page(ctx context.Context, p Provider, c Criteria, cutoff time.Time, token string) (*Page, error) {
	return p.RecentPage(ctx, c, cutoff, token)
}

func (recencyStrategy) admit(Candidate, time.Time, int) bool { return true }

// popularityStrategy pages the curated popular feed, which the provider
// does not filter by recency. Stale and overlong candidates are dropped
// here so they never cost a detail fetch.
type popularityStrategy struct{}

func (popularityStrategy) page(ctx context.Context, p Provider, c Criteria, _ time.Time, token string) (*Page, error) {
	return p.PopularPage(ctx, c, token)
}

func (popularityStrategy) admit(cand Candidate, cutoff time.Time, maxDurationSeconds int) bool {
	// A zero publish time means the timestamp failed to parse; keep
	// the candidate rather than dropping it on bad provider data.
	if !cand.PublishedAt.IsZero() && cand.PublishedAt.Before(cutoff) {
		return false
	}
	if cand.HasDuration && cand.DurationSeconds > float64(maxDurationSeconds) {
		return false
	}
	return true
}
