package yt

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shortscope/internal/models"
	"shortscope/internal/search"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API v3 service behind the
// search.Provider interface. Construction requires a developer API key;
// no OAuth flow is involved since everything read is public data.
type Client struct {
	service *youtube.Service
}

// NewClient builds an API-key authenticated client. A missing key or a
// service initialization failure is fatal for the caller: no retrieval
// is attempted without a working client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing YouTube API key: set YOUTUBE_API_KEY or youtube.api_key")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// RecentPage implements search.Provider using the search endpoint with
// date ordering. The provider filters by publish time server-side and
// pre-restricts to its own "short" duration class, which is coarser
// than the caller's max-duration filter and re-checked after the detail
// fetch.
func (c *Client) RecentPage(ctx context.Context, criteria search.Criteria, publishedAfter time.Time, pageToken string) (*search.Page, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Type("video").
		VideoDuration("short").
		Order("date").
		PublishedAfter(publishedAfter.Format(time.RFC3339)).
		RegionCode(criteria.Region).
		MaxResults(criteria.ClampedPageSize()).
		Context(ctx)

	if criteria.Query != "" {
		call = call.Q(criteria.Query)
	}
	if criteria.CategoryID != "" {
		call = call.VideoCategoryId(criteria.CategoryID)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	page := &search.Page{
		NextToken: resp.NextPageToken,
		RawCount:  len(resp.Items),
	}
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		page.Candidates = append(page.Candidates, search.Candidate{
			ID:          item.Id.VideoId,
			PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
		})
	}
	return page, nil
}

// PopularPage implements search.Provider using the curated most-popular
// chart. That feed carries no recency filter, so candidates include
// publish time and duration for the retriever's client-side prefilter.
func (c *Client) PopularPage(ctx context.Context, criteria search.Criteria, pageToken string) (*search.Page, error) {
	call := c.service.Videos.List([]string{"snippet", "contentDetails"}).
		Chart("mostPopular").
		RegionCode(criteria.Region).
		MaxResults(criteria.ClampedPageSize()).
		Context(ctx)

	if criteria.CategoryID != "" {
		call = call.VideoCategoryId(criteria.CategoryID)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("popular feed request failed: %w", err)
	}

	page := &search.Page{
		NextToken: resp.NextPageToken,
		RawCount:  len(resp.Items),
	}
	for _, item := range resp.Items {
		cand := search.Candidate{
			ID:          item.Id,
			PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
		}
		if item.ContentDetails != nil {
			cand.DurationSeconds = search.ParseDurationSeconds(item.ContentDetails.Duration)
			cand.HasDuration = true
		}
		page.Candidates = append(page.Candidates, cand)
	}
	return page, nil
}

// Details implements search.Provider with a single videos request for
// the whole batch. Callers keep batches within search.MaxDetailBatch.
func (c *Client) Details(ctx context.Context, ids []string, extended bool) ([]*models.Video, error) {
	parts := []string{"snippet", "contentDetails", "statistics"}
	if extended {
		parts = append(parts, "status", "topicDetails")
	}

	resp, err := c.service.Videos.List(parts).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video details request failed: %w", err)
	}

	videos := make([]*models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		video := &models.Video{
			ID:  item.Id,
			URL: models.WatchURL(item.Id),
		}
		if item.Snippet != nil {
			video.Title = item.Snippet.Title
			video.Description = item.Snippet.Description
			video.ChannelTitle = item.Snippet.ChannelTitle
			video.ChannelID = item.Snippet.ChannelId
			video.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
			if extended {
				video.Tags = item.Snippet.Tags
			}
		}
		if item.ContentDetails != nil {
			video.Duration = item.ContentDetails.Duration
			video.DurationSeconds = search.ParseDurationSeconds(item.ContentDetails.Duration)
		}
		if item.Statistics != nil {
			video.ViewCount = int64(item.Statistics.ViewCount)
			video.LikeCount = int64(item.Statistics.LikeCount)
		}
		if extended {
			if item.Status != nil {
				video.PrivacyStatus = item.Status.PrivacyStatus
			}
			if item.TopicDetails != nil {
				video.TopicCategories = item.TopicDetails.TopicCategories
			}
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// parseTimestamp decodes an RFC 3339 publish time. Malformed values
// yield the zero time rather than dropping the record.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Printf("Warning: unparseable publish time %q: %v", value, err)
		return time.Time{}
	}
	return ts
}
