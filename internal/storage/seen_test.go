package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSeenStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSeenStore(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	t.Run("UnknownIDNotSeen", func(t *testing.T) {
		if store.IsSeen("nope") {
			t.Error("Unknown ID should not be seen")
		}
	})

	t.Run("MarkAndCheck", func(t *testing.T) {
		if err := store.MarkSeen([]string{"a", "b"}); err != nil {
			t.Fatalf("MarkSeen failed: %v", err)
		}
		if !store.IsSeen("a") || !store.IsSeen("b") {
			t.Error("Marked IDs should be seen")
		}
		if store.Count() != 2 {
			t.Errorf("Expected 2 tracked IDs, got %d", store.Count())
		}
	})

	t.Run("PersistsAcrossReopen", func(t *testing.T) {
		reopened, err := NewSeenStore(dir, 24*time.Hour)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		if !reopened.IsSeen("a") {
			t.Error("Seen IDs should survive a reopen")
		}
	})
}

func TestSeenStoreExpiry(t *testing.T) {
	dir := t.TempDir()

	// Write a store file with one fresh and one stale entry.
	entries := []seenEntry{
		{VideoID: "fresh", SeenAt: time.Now()},
		{VideoID: "stale", SeenAt: time.Now().Add(-48 * time.Hour)},
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("Failed to marshal entries: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "seen_videos.json"), data, 0600); err != nil {
		t.Fatalf("Failed to write store file: %v", err)
	}

	store, err := NewSeenStore(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if !store.IsSeen("fresh") {
		t.Error("Fresh entry should still be seen")
	}
	if store.IsSeen("stale") {
		t.Error("Stale entry should have expired")
	}
	if store.Count() != 1 {
		t.Errorf("Expected expired entry removed, count %d", store.Count())
	}
}

func TestSeenStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seen_videos.json"), []byte("not json"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := NewSeenStore(dir, time.Hour); err == nil {
		t.Error("Expected error for corrupt store file")
	}
}
