package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"shortscope/internal/models"
)

// fakeProvider serves scripted feed pages and detail records, counting
// requests so tests can assert on request shape.
type fakeProvider struct {
	pages    []*Page
	pageErrs []error

	details    map[string]*models.Video
	detailsErr error

	feedCalls     int
	detailCalls   int
	detailBatches [][]string
	popularCalls  int
}

func (f *fakeProvider) nextPage() (*Page, error) {
	idx := f.feedCalls
	f.feedCalls++
	if idx < len(f.pageErrs) && f.pageErrs[idx] != nil {
		return nil, f.pageErrs[idx]
	}
	if idx >= len(f.pages) {
		return &Page{}, nil
	}
	return f.pages[idx], nil
}

func (f *fakeProvider) RecentPage(ctx context.Context, c Criteria, publishedAfter time.Time, pageToken string) (*Page, error) {
	return f.nextPage()
}

func (f *fakeProvider) PopularPage(ctx context.Context, c Criteria, pageToken string) (*Page, error) {
	f.popularCalls++
	return f.nextPage()
}

func (f *fakeProvider) Details(ctx context.Context, ids []string, extended bool) ([]*models.Video, error) {
	f.detailCalls++
	f.detailBatches = append(f.detailBatches, append([]string(nil), ids...))
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	var out []*models.Video
	for _, id := range ids {
		if v, ok := f.details[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func video(id string, durationSeconds float64, views int64) *models.Video {
	return &models.Video{
		ID:              id,
		Title:           "video " + id,
		DurationSeconds: durationSeconds,
		ViewCount:       views,
		PublishedAt:     time.Now().UTC().Add(-time.Hour),
		URL:             models.WatchURL(id),
	}
}

func page(next string, ids ...string) *Page {
	p := &Page{NextToken: next, RawCount: len(ids)}
	for _, id := range ids {
		p.Candidates = append(p.Candidates, Candidate{ID: id, PublishedAt: time.Now().UTC().Add(-time.Hour)})
	}
	return p
}

func criteria() Criteria {
	return Criteria{
		TimeWindow:         7 * 24 * time.Hour,
		MaxDurationSeconds: 60,
		Region:             "KR",
		PageSize:           50,
		ResultCap:          200,
		MinViewCount:       1000,
		Ranking:            RankRecency,
	}
}

func TestRetrieveFiltersAndRanks(t *testing.T) {
	// One page of five candidates with durations 30/70/10/60/45s and
	// views 500/5000/2000/900/1200. With max duration 60s, min views
	// 1000 and cap 3, only the 10s/2000 and 45s/1200 records qualify.
	provider := &fakeProvider{
		pages: []*Page{page("", "a", "b", "c", "d", "e")},
		details: map[string]*models.Video{
			"a": video("a", 30, 500),
			"b": video("b", 70, 5000),
			"c": video("c", 10, 2000),
			"d": video("d", 60, 900),
			"e": video("e", 45, 1200),
		},
	}

	c := criteria()
	c.ResultCap = 3

	got, err := New(provider).Retrieve(context.Background(), c)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].ID != "c" || got[0].ViewCount != 2000 {
		t.Errorf("Expected first record c/2000 views, got %s/%d", got[0].ID, got[0].ViewCount)
	}
	if got[1].ID != "e" || got[1].ViewCount != 1200 {
		t.Errorf("Expected second record e/1200 views, got %s/%d", got[1].ID, got[1].ViewCount)
	}

	for _, v := range got {
		if v.DurationSeconds > float64(c.MaxDurationSeconds) {
			t.Errorf("Record %s violates duration filter: %.1fs", v.ID, v.DurationSeconds)
		}
		if v.ViewCount < c.MinViewCount {
			t.Errorf("Record %s violates view filter: %d", v.ID, v.ViewCount)
		}
	}
}

func TestZeroItemFirstPage(t *testing.T) {
	provider := &fakeProvider{
		pages: []*Page{{NextToken: "more", RawCount: 0}},
	}

	got, err := New(provider).Retrieve(context.Background(), criteria())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %d records", len(got))
	}
	if provider.detailCalls != 0 {
		t.Errorf("Expected no detail fetch for an empty first page, got %d", provider.detailCalls)
	}
	if provider.feedCalls != 1 {
		t.Errorf("Expected pagination to stop after the empty page, got %d feed calls", provider.feedCalls)
	}
}

func TestSinglePageWithoutCursor(t *testing.T) {
	provider := &fakeProvider{
		pages: []*Page{page("", "a")},
		details: map[string]*models.Video{
			"a": video("a", 20, 2000),
		},
	}

	if _, err := New(provider).Retrieve(context.Background(), criteria()); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if provider.feedCalls != 1 {
		t.Errorf("Expected exactly one search request, got %d", provider.feedCalls)
	}
	if provider.detailCalls != 1 {
		t.Errorf("Expected at most one detail fetch, got %d", provider.detailCalls)
	}
}

func TestSoftCapCheckedBetweenPages(t *testing.T) {
	// The first page pushes the accumulator past the cap of 3. The page
	// is still processed whole and pagination stops before page two,
	// but only the top 3 by views survive the final trim.
	details := make(map[string]*models.Video)
	var ids []string
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("v%d", i)
		ids = append(ids, id)
		details[id] = video(id, 30, int64(2000+i))
	}
	provider := &fakeProvider{
		pages:   []*Page{page("next", ids...), page("", "unreached")},
		details: details,
	}

	c := criteria()
	c.ResultCap = 3

	got, err := New(provider).Retrieve(context.Background(), c)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected the result trimmed to the cap of 3, got %d", len(got))
	}
	want := []string{"v4", "v3", "v2"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if provider.feedCalls != 1 {
		t.Errorf("Expected pagination to stop at the cap, got %d feed calls", provider.feedCalls)
	}
}

func TestStableSortPreservesFetchOrderOnTies(t *testing.T) {
	provider := &fakeProvider{
		pages: []*Page{page("", "first", "second", "third")},
		details: map[string]*models.Video{
			"first":  video("first", 10, 5000),
			"second": video("second", 20, 5000),
			"third":  video("third", 30, 9000),
		},
	}

	got, err := New(provider).Retrieve(context.Background(), criteria())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	want := []string{"third", "first", "second"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestProviderErrorKeepsPartialResults(t *testing.T) {
	t.Run("SearchFailure", func(t *testing.T) {
		provider := &fakeProvider{
			pages:    []*Page{page("next", "a")},
			pageErrs: []error{nil, errors.New("quota exceeded")},
			details: map[string]*models.Video{
				"a": video("a", 20, 3000),
			},
		}

		got, err := New(provider).Retrieve(context.Background(), criteria())
		if err == nil {
			t.Fatal("Expected an error from the failed second page")
		}
		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			t.Fatalf("Expected *ProviderError, got %T", err)
		}
		if provErr.Op != "search" || provErr.Page != 2 {
			t.Errorf("Expected search failure on page 2, got %s on page %d", provErr.Op, provErr.Page)
		}
		if len(got) != 1 || got[0].ID != "a" {
			t.Errorf("Expected the page-one record preserved, got %d records", len(got))
		}
	})

	t.Run("DetailsFailure", func(t *testing.T) {
		provider := &fakeProvider{
			pages:      []*Page{page("", "a")},
			detailsErr: errors.New("backend error"),
		}

		got, err := New(provider).Retrieve(context.Background(), criteria())
		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			t.Fatalf("Expected *ProviderError, got %v", err)
		}
		if provErr.Op != "details" {
			t.Errorf("Expected details failure, got %s", provErr.Op)
		}
		if len(got) != 0 {
			t.Errorf("Expected no records, got %d", len(got))
		}
	})
}

func TestDetailBatchSplitting(t *testing.T) {
	details := make(map[string]*models.Video)
	var ids []string
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("v%03d", i)
		ids = append(ids, id)
		details[id] = video(id, 30, 2000)
	}
	provider := &fakeProvider{
		pages:   []*Page{page("", ids...)},
		details: details,
	}

	got, err := New(provider).Retrieve(context.Background(), criteria())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 120 {
		t.Errorf("Expected 120 records, got %d", len(got))
	}

	wantBatches := []int{50, 50, 20}
	if len(provider.detailBatches) != len(wantBatches) {
		t.Fatalf("Expected %d detail batches, got %d", len(wantBatches), len(provider.detailBatches))
	}
	for i, want := range wantBatches {
		if len(provider.detailBatches[i]) != want {
			t.Errorf("Batch %d: expected %d IDs, got %d", i, want, len(provider.detailBatches[i]))
		}
	}
}

func TestPopularityModePrefiltersBeforeDetails(t *testing.T) {
	now := time.Now().UTC()
	p := &Page{
		RawCount: 3,
		Candidates: []Candidate{
			{ID: "stale", PublishedAt: now.Add(-30 * 24 * time.Hour), DurationSeconds: 20, HasDuration: true},
			{ID: "long", PublishedAt: now.Add(-time.Hour), DurationSeconds: 300, HasDuration: true},
			{ID: "good", PublishedAt: now.Add(-time.Hour), DurationSeconds: 25, HasDuration: true},
		},
	}
	provider := &fakeProvider{
		pages: []*Page{p},
		details: map[string]*models.Video{
			"good": video("good", 25, 50000),
		},
	}

	c := criteria()
	c.Ranking = RankPopularity

	got, err := New(provider).Retrieve(context.Background(), c)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if provider.popularCalls != 1 {
		t.Errorf("Expected the popular feed to be paged, got %d calls", provider.popularCalls)
	}
	if len(provider.detailBatches) != 1 {
		t.Fatalf("Expected one detail batch, got %d", len(provider.detailBatches))
	}
	if len(provider.detailBatches[0]) != 1 || provider.detailBatches[0][0] != "good" {
		t.Errorf("Expected only the fresh short candidate in the detail fetch, got %v", provider.detailBatches[0])
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Errorf("Expected one record, got %d", len(got))
	}
}

func TestProgressObserver(t *testing.T) {
	provider := &fakeProvider{
		pages: []*Page{page("next", "a"), page("", "b")},
		details: map[string]*models.Video{
			"a": video("a", 20, 2000),
			"b": video("b", 20, 3000),
		},
	}

	var pages, totals []int
	r := New(provider, WithProgress(func(pageNum, accumulated int) {
		pages = append(pages, pageNum)
		totals = append(totals, accumulated)
	}))

	if _, err := r.Retrieve(context.Background(), criteria()); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("Expected progress for pages [1 2], got %v", pages)
	}
	if len(totals) != 2 || totals[0] != 1 || totals[1] != 2 {
		t.Errorf("Expected accumulated counts [1 2], got %v", totals)
	}
}
