// Package report renders a result set as the plain-text ranked report
// and as CSV.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"shortscope/internal/models"
	"shortscope/internal/stats"
)

// Render writes the full text report: the ranked video list, aggregate
// statistics, and the hour-of-day upload distribution in the given
// display zone.
func Render(w io.Writer, videos []*models.Video, loc *time.Location) {
	fmt.Fprintln(w, "=== Search Results ===")
	fmt.Fprintf(w, "Found %d videos.\n", len(videos))

	for i, v := range videos {
		fmt.Fprintf(w, "\n--- Video %d ---\n", i+1)
		fmt.Fprintf(w, "Title:     %s\n", v.Title)
		fmt.Fprintf(w, "Channel:   %s\n", v.ChannelTitle)
		fmt.Fprintf(w, "Published: %s\n", FormatInZone(v.PublishedAt, loc))
		fmt.Fprintf(w, "Views:     %s\n", FormatCount(v.ViewCount))
		fmt.Fprintf(w, "Likes:     %s\n", FormatCount(v.LikeCount))
		fmt.Fprintf(w, "Length:    %.1fs\n", v.DurationSeconds)
		fmt.Fprintf(w, "URL:       %s\n", v.URL)
	}

	if len(videos) == 0 {
		return
	}

	summary := stats.Summarize(videos)
	fmt.Fprintln(w, "\n=== Statistics ===")
	fmt.Fprintf(w, "Average views:  %s\n", FormatCount(int64(summary.AvgViews)))
	fmt.Fprintf(w, "Average likes:  %s\n", FormatCount(int64(summary.AvgLikes)))
	fmt.Fprintf(w, "Average length: %.1fs\n", summary.AvgDuration)

	fmt.Fprintf(w, "\n=== Uploads by Hour (%s) ===\n", loc)
	hours := stats.HourHistogram(videos, loc)
	total := len(videos)
	for hour, count := range hours {
		if count == 0 {
			continue
		}
		percentage := float64(count) / float64(total) * 100
		bar := strings.Repeat("■", int(percentage/5))
		fmt.Fprintf(w, "%02d:00  %d (%.1f%%) %s\n", hour, count, percentage, bar)
	}
}

// FormatInZone renders a timestamp in the display zone with its zone
// abbreviation. Converting preserves the instant, only the wall-clock
// representation changes.
func FormatInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04:05 MST")
}

// FormatCount renders an integer with comma grouping, e.g. 1234567 ->
// "1,234,567".
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
