package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shortscope/internal/search"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `youtube:
  api_key: test-key
search:
  time_window_hours: 24
  max_duration_seconds: 45
  region: US
  min_view_count: 5000
  ranking: popularity
display:
  timezone: America/New_York
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.YouTube.APIKey != "test-key" {
		t.Errorf("Expected API key from file, got %q", cfg.YouTube.APIKey)
	}
	if cfg.Search.TimeWindowHours != 24 {
		t.Errorf("Expected 24h window, got %d", cfg.Search.TimeWindowHours)
	}
	if cfg.Search.Ranking != "popularity" {
		t.Errorf("Expected popularity ranking, got %q", cfg.Search.Ranking)
	}
	// Unset fields fall back to defaults.
	if cfg.Search.PageSize != 50 {
		t.Errorf("Expected default page size 50, got %d", cfg.Search.PageSize)
	}
	if cfg.Search.ResultCap != 200 {
		t.Errorf("Expected default result cap 200, got %d", cfg.Search.ResultCap)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.YouTube.APIKey != "env-key" {
		t.Errorf("Expected API key from env, got %q", cfg.YouTube.APIKey)
	}
	if cfg.Search.Region != "KR" {
		t.Errorf("Expected default region KR, got %q", cfg.Search.Region)
	}
	if cfg.Display.Timezone != "Asia/Seoul" {
		t.Errorf("Expected default timezone Asia/Seoul, got %q", cfg.Display.Timezone)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"WindowTooSmall", func(c *Config) { c.Search.TimeWindowHours = 0 }},
		{"WindowTooLarge", func(c *Config) { c.Search.TimeWindowHours = 721 }},
		{"DurationTooSmall", func(c *Config) { c.Search.MaxDurationSeconds = 5 }},
		{"DurationTooLarge", func(c *Config) { c.Search.MaxDurationSeconds = 181 }},
		{"NegativeViews", func(c *Config) { c.Search.MinViewCount = -1 }},
		{"ViewsTooLarge", func(c *Config) { c.Search.MinViewCount = 1_000_001 }},
		{"PageSizeTooSmall", func(c *Config) { c.Search.PageSize = 5 }},
		{"PageSizeTooLarge", func(c *Config) { c.Search.PageSize = 201 }},
		{"UnknownRegion", func(c *Config) { c.Search.Region = "XX" }},
		{"UnknownCategory", func(c *Config) { c.Search.Category = "cooking" }},
		{"UnknownRanking", func(c *Config) { c.Search.Ranking = "relevance" }},
		{"UnknownTimezone", func(c *Config) { c.Display.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestCriteriaConversion(t *testing.T) {
	cfg := validConfig()
	cfg.Search.TimeWindowHours = 48
	cfg.Search.PageSize = 200 // above provider max, must clamp
	cfg.Search.Category = "music"
	cfg.Search.Ranking = "popularity"

	c := cfg.Criteria()

	if c.TimeWindow != 48*time.Hour {
		t.Errorf("Expected 48h window, got %v", c.TimeWindow)
	}
	if c.PageSize != search.MaxPageSize {
		t.Errorf("Expected page size clamped to %d, got %d", search.MaxPageSize, c.PageSize)
	}
	if c.CategoryID != "10" {
		t.Errorf("Expected music category ID 10, got %q", c.CategoryID)
	}
	if c.Ranking != search.RankPopularity {
		t.Errorf("Expected popularity ranking, got %q", c.Ranking)
	}
}

func TestCategoryCatalog(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"", "", true},
		{"music", "10", true},
		{"gaming", "20", true},
		{"news", "25", true},
		{"cooking", "", false},
	}
	for _, tt := range tests {
		id, ok := CategoryID(tt.name)
		if id != tt.id || ok != tt.ok {
			t.Errorf("CategoryID(%q) = (%q, %v), want (%q, %v)", tt.name, id, ok, tt.id, tt.ok)
		}
	}
}

func TestTimezoneRoundTrip(t *testing.T) {
	cfg := validConfig()
	loc := cfg.Location()

	utc := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	converted := utc.In(loc)

	if !converted.Equal(utc) {
		t.Error("Zone conversion must preserve the instant")
	}
	if back := converted.UTC(); !back.Equal(utc) || back.Hour() != 23 {
		t.Errorf("Round trip changed the instant: %v", back)
	}
	// Asia/Seoul is UTC+9, so 23:30 UTC is 08:30 the next day.
	if converted.Hour() != 8 || converted.Minute() != 30 {
		t.Errorf("Expected 08:30 KST, got %02d:%02d", converted.Hour(), converted.Minute())
	}
}
