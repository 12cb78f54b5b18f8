// Package storage persists the set of video IDs already surfaced by
// earlier scans, so repeat runs can mark genuinely new findings and the
// watch mode's digests do not repeat themselves.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SeenStore is a JSON-file backed set of video IDs with an expiry age.
type SeenStore struct {
	filePath string
	seen     map[string]time.Time
	mu       sync.RWMutex
	maxAge   time.Duration
}

type seenEntry struct {
	VideoID string    `json:"video_id"`
	SeenAt  time.Time `json:"seen_at"`
}

// NewSeenStore opens (or creates) the store under dataDir. Entries
// older than maxAge are dropped on load.
func NewSeenStore(dataDir string, maxAge time.Duration) (*SeenStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &SeenStore{
		filePath: filepath.Join(dataDir, "seen_videos.json"),
		seen:     make(map[string]time.Time),
		maxAge:   maxAge,
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load seen-video store: %w", err)
	}
	s.expire()

	return s, nil
}

// IsSeen reports whether the video ID was recorded within the max age.
func (s *SeenStore) IsSeen(videoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seenAt, ok := s.seen[videoID]
	if !ok {
		return false
	}
	return time.Since(seenAt) < s.maxAge
}

// MarkSeen records the given video IDs as seen now and persists the
// store.
func (s *SeenStore) MarkSeen(videoIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, id := range videoIDs {
		s.seen[id] = now
	}
	return s.save()
}

// Count returns the number of tracked IDs.
func (s *SeenStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

func (s *SeenStore) expire() {
	cutoff := time.Now().Add(-s.maxAge)
	for id, seenAt := range s.seen {
		if seenAt.Before(cutoff) {
			delete(s.seen, id)
		}
	}
}

func (s *SeenStore) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer file.Close()

	var entries []seenEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode store data: %w", err)
	}
	for _, e := range entries {
		s.seen[e.VideoID] = e.SeenAt
	}
	return nil
}

func (s *SeenStore) save() error {
	entries := make([]seenEntry, 0, len(s.seen))
	for id, seenAt := range s.seen {
		entries = append(entries, seenEntry{VideoID: id, SeenAt: seenAt})
	}

	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to create store file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
