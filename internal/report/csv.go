package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"shortscope/internal/models"
)

var csvHeader = []string{
	"rank", "id", "title", "channel", "published_at", "published_local",
	"duration_seconds", "view_count", "like_count", "url",
}

// WriteCSV writes the result set as CSV, one row per video in ranked
// order, with publish times in both UTC and the display zone.
func WriteCSV(w io.Writer, videos []*models.Video, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, v := range videos {
		row := []string{
			fmt.Sprintf("%d", i+1),
			v.ID,
			v.Title,
			v.ChannelTitle,
			v.PublishedAt.UTC().Format(time.RFC3339),
			FormatInZone(v.PublishedAt, loc),
			fmt.Sprintf("%.1f", v.DurationSeconds),
			fmt.Sprintf("%d", v.ViewCount),
			fmt.Sprintf("%d", v.LikeCount),
			v.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
