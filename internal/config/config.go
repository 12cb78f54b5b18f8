package config

import (
	"fmt"
	"os"
	"time"

	"shortscope/internal/search"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Search  SearchConfig  `yaml:"search"`
	Display DisplayConfig `yaml:"display"`
	Watch   WatchConfig   `yaml:"watch"`
	AI      AIConfig      `yaml:"ai"`
	Email   EmailConfig   `yaml:"email"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
}

type SearchConfig struct {
	TimeWindowHours    int    `yaml:"time_window_hours"`
	MaxDurationSeconds int    `yaml:"max_duration_seconds"`
	Query              string `yaml:"query"`
	Region             string `yaml:"region"`
	PageSize           int64  `yaml:"page_size"`
	ResultCap          int    `yaml:"result_cap"`
	MinViewCount       int64  `yaml:"min_view_count"`
	Category           string `yaml:"category"`
	Ranking            string `yaml:"ranking"`
	ExtendedDetails    bool   `yaml:"extended_details"`
}

type DisplayConfig struct {
	// Timezone is the IANA zone name used for published-at display and
	// the hour-of-day histogram.
	Timezone string `yaml:"timezone"`
}

type WatchConfig struct {
	// Schedule is a 6-field cron expression (with seconds).
	Schedule   string `yaml:"schedule"`
	HealthPort int    `yaml:"health_port"`
	// DataDir holds the seen-video store.
	DataDir string `yaml:"data_dir"`
	// SeenMaxAgeDays controls how long a video stays marked as seen.
	SeenMaxAgeDays int `yaml:"seen_max_age_days"`
	// Email enables the digest mail on scheduled scans.
	Email bool `yaml:"email"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err):
		// No config file is fine: defaults plus env vars cover the
		// whole surface.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Search.TimeWindowHours == 0 {
		c.Search.TimeWindowHours = 24 * 7
	}
	if c.Search.MaxDurationSeconds == 0 {
		c.Search.MaxDurationSeconds = 60
	}
	if c.Search.Region == "" {
		c.Search.Region = "KR"
	}
	if c.Search.PageSize == 0 {
		c.Search.PageSize = 50
	}
	if c.Search.ResultCap == 0 {
		c.Search.ResultCap = 200
	}
	if c.Search.MinViewCount == 0 {
		c.Search.MinViewCount = 1000
	}
	if c.Search.Ranking == "" {
		c.Search.Ranking = string(search.RankRecency)
	}
	if c.Display.Timezone == "" {
		c.Display.Timezone = "Asia/Seoul"
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = "0 0 * * * *" // Hourly
	}
	if c.Watch.HealthPort == 0 {
		c.Watch.HealthPort = 8080
	}
	if c.Watch.DataDir == "" {
		c.Watch.DataDir = "data"
	}
	if c.Watch.SeenMaxAgeDays == 0 {
		c.Watch.SeenMaxAgeDays = 7
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
}

func (c *Config) Validate() error {
	s := &c.Search
	if s.TimeWindowHours < 1 || s.TimeWindowHours > 720 {
		return fmt.Errorf("time_window_hours must be in [1, 720], got %d", s.TimeWindowHours)
	}
	if s.MaxDurationSeconds < 10 || s.MaxDurationSeconds > 180 {
		return fmt.Errorf("max_duration_seconds must be in [10, 180], got %d", s.MaxDurationSeconds)
	}
	if s.MinViewCount < 0 || s.MinViewCount > 1_000_000 {
		return fmt.Errorf("min_view_count must be in [0, 1000000], got %d", s.MinViewCount)
	}
	if s.PageSize < 10 || s.PageSize > 200 {
		return fmt.Errorf("page_size must be in [10, 200], got %d", s.PageSize)
	}
	if s.ResultCap < 1 {
		return fmt.Errorf("result_cap must be positive, got %d", s.ResultCap)
	}
	if !IsValidRegion(s.Region) {
		return fmt.Errorf("unknown region code %q", s.Region)
	}
	if s.Category != "" {
		if _, ok := CategoryID(s.Category); !ok {
			return fmt.Errorf("unknown category %q", s.Category)
		}
	}
	switch search.RankingMode(s.Ranking) {
	case search.RankRecency, search.RankPopularity:
	default:
		return fmt.Errorf("ranking must be %q or %q, got %q", search.RankRecency, search.RankPopularity, s.Ranking)
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("unknown display timezone %q: %w", c.Display.Timezone, err)
	}
	return nil
}

// Criteria converts the validated search section into the immutable
// criteria value the retriever consumes. Page sizes above the provider
// maximum are clamped here, not rejected.
func (c *Config) Criteria() search.Criteria {
	categoryID, _ := CategoryID(c.Search.Category)
	pageSize := c.Search.PageSize
	if pageSize > search.MaxPageSize {
		pageSize = search.MaxPageSize
	}
	return search.Criteria{
		TimeWindow:         time.Duration(c.Search.TimeWindowHours) * time.Hour,
		MaxDurationSeconds: c.Search.MaxDurationSeconds,
		Query:              c.Search.Query,
		Region:             c.Search.Region,
		PageSize:           pageSize,
		ResultCap:          c.Search.ResultCap,
		MinViewCount:       c.Search.MinViewCount,
		CategoryID:         categoryID,
		Ranking:            search.RankingMode(c.Search.Ranking),
		ExtendedDetails:    c.Search.ExtendedDetails,
	}
}

// Location resolves the display timezone. Validate has already checked
// the name, so failures here fall back to UTC instead of erroring.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EmailConfigured reports whether enough of the email section is filled
// in to send digests.
func (c *Config) EmailConfigured() bool {
	e := &c.Email
	return e.SMTPServer != "" && e.Username != "" && e.Password != "" && e.FromEmail != "" && e.ToEmail != ""
}
