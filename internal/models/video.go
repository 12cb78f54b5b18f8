package models

import (
	"fmt"
	"time"
)

// Video is a single retrieved video with the metadata needed for
// filtering, ranking and display. Records are built once by the
// retriever and never mutated afterwards.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ChannelTitle    string    `json:"channel_title"`
	ChannelID       string    `json:"channel_id,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	Duration        string    `json:"duration"`
	DurationSeconds float64   `json:"duration_seconds"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	URL             string    `json:"url"`

	// Populated only when extended details are requested.
	Tags            []string `json:"tags,omitempty"`
	PrivacyStatus   string   `json:"privacy_status,omitempty"`
	TopicCategories []string `json:"topic_categories,omitempty"`
}

// WatchURL derives the canonical watch page URL for a video ID.
func WatchURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}
