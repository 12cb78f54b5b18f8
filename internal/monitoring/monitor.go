package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of the most recent scan for the watch
// mode's health endpoint.
type Monitor struct {
	mu           sync.Mutex
	lastScanOK   bool
	lastScanTime time.Time
	lastFound    int
	lastNew      int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(found, fresh int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScanOK = true
	m.lastScanTime = time.Now()
	m.lastFound = found
	m.lastNew = fresh

	log.Printf("Scan completed: %d videos (%d new), took %v", found, fresh, duration)
}

// RecordPartialFailure notes a scan that returned results despite a
// provider error mid-pagination. Health status is left unchanged.
func (m *Monitor) RecordPartialFailure(err error, found int, duration time.Duration) {
	log.Printf("PARTIAL FAILURE: %v (kept %d videos, took %v)", err, found, duration)
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScanOK = false
	m.lastScanTime = time.Now()

	log.Printf("CRITICAL FAILURE: %v (took %v)", err, duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastScanTime.IsZero() {
		return true // No scans yet
	}
	return m.lastScanOK
}

func (m *Monitor) StatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastScanTime.IsZero() {
		return "No scans yet"
	}
	if m.lastScanOK {
		return fmt.Sprintf("Last scan %s: %d videos (%d new)",
			m.lastScanTime.Format("Jan 2 15:04"), m.lastFound, m.lastNew)
	}
	return fmt.Sprintf("Last scan failed: %s", m.lastScanTime.Format("Jan 2 15:04"))
}
