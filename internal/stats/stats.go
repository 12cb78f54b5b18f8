// Package stats computes the aggregate figures and histograms shared by
// the text report and the dashboard charts.
package stats

import (
	"fmt"
	"time"

	"shortscope/internal/models"
)

// Summary holds the aggregate statistics over a result set.
type Summary struct {
	Count       int
	AvgViews    float64
	AvgLikes    float64
	AvgDuration float64
}

func Summarize(videos []*models.Video) Summary {
	s := Summary{Count: len(videos)}
	if s.Count == 0 {
		return s
	}
	var views, likes int64
	var duration float64
	for _, v := range videos {
		views += v.ViewCount
		likes += v.LikeCount
		duration += v.DurationSeconds
	}
	n := float64(s.Count)
	s.AvgViews = float64(views) / n
	s.AvgLikes = float64(likes) / n
	s.AvgDuration = duration / n
	return s
}

// Bucket is one histogram bar.
type Bucket struct {
	Label string
	Count int
}

// viewBinEdges are the fixed view-count bin edges; each bucket is
// half-open [lo, hi), with the last bucket unbounded.
var viewBinEdges = []int64{0, 10_000, 50_000, 100_000, 500_000, 1_000_000}

// ViewHistogram buckets videos by view count into the fixed bins
// [0,10k) [10k,50k) [50k,100k) [100k,500k) [500k,1M) [1M,inf).
func ViewHistogram(videos []*models.Video) []Bucket {
	buckets := make([]Bucket, len(viewBinEdges))
	for i := range buckets {
		if i+1 < len(viewBinEdges) {
			buckets[i].Label = fmt.Sprintf("%s-%s", compactCount(viewBinEdges[i]), compactCount(viewBinEdges[i+1]))
		} else {
			buckets[i].Label = compactCount(viewBinEdges[i]) + "+"
		}
	}
	for _, v := range videos {
		buckets[binIndex(v.ViewCount)].Count++
	}
	return buckets
}

func binIndex(views int64) int {
	for i := len(viewBinEdges) - 1; i > 0; i-- {
		if views >= viewBinEdges[i] {
			return i
		}
	}
	return 0
}

// durationBinEdges are the fixed duration bin edges in seconds,
// half-open like the view bins.
var durationBinEdges = []float64{0, 15, 30, 45, 60}

// DurationHistogram buckets videos by duration into the fixed bins
// [0,15) [15,30) [30,45) [45,60) [60,inf) seconds.
func DurationHistogram(videos []*models.Video) []Bucket {
	buckets := make([]Bucket, len(durationBinEdges))
	for i := range buckets {
		if i+1 < len(durationBinEdges) {
			buckets[i].Label = fmt.Sprintf("%.0f-%.0fs", durationBinEdges[i], durationBinEdges[i+1])
		} else {
			buckets[i].Label = fmt.Sprintf("%.0fs+", durationBinEdges[i])
		}
	}
	for _, v := range videos {
		idx := 0
		for i := len(durationBinEdges) - 1; i > 0; i-- {
			if v.DurationSeconds >= durationBinEdges[i] {
				idx = i
				break
			}
		}
		buckets[idx].Count++
	}
	return buckets
}

// HourHistogram counts uploads per hour of day after converting each
// publish time into the given zone.
func HourHistogram(videos []*models.Video, loc *time.Location) [24]int {
	var hours [24]int
	for _, v := range videos {
		hours[v.PublishedAt.In(loc).Hour()]++
	}
	return hours
}

func compactCount(n int64) string {
	switch {
	case n >= 1_000_000 && n%1_000_000 == 0:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1_000 && n%1_000 == 0:
		return fmt.Sprintf("%dk", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
