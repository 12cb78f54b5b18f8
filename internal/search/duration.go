package search

import (
	"log"
	"regexp"
	"strconv"
)

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// ParseDurationSeconds converts an ISO 8601 duration string as returned
// by the provider (e.g. "PT1M30S", "PT45S") into seconds. Malformed or
// empty input yields 0 seconds: the record is kept and will pass any
// positive max-duration filter. That leniency matches the provider's
// occasional habit of omitting durations for live or processing videos,
// where dropping the record would be worse than misreporting its length.
func ParseDurationSeconds(duration string) float64 {
	if duration == "" {
		return 0
	}

	matches := iso8601Duration.FindStringSubmatch(duration)
	if matches == nil {
		log.Printf("Warning: unparseable duration %q, treating as 0s", duration)
		return 0
	}

	var total float64
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			total += float64(hours) * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			total += float64(minutes) * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.ParseFloat(matches[3], 64); err == nil {
			total += seconds
		}
	}
	return total
}
