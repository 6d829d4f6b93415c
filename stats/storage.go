package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats aggregates audit activity for one calendar month.
type MonthlyStats struct {
	AuditsRun     int       `json:"audits_run"`
	DomainAudits  int       `json:"domain_audits"`
	PagesAudited  int       `json:"pages_audited"`
	FetchFailures int       `json:"fetch_failures"`
	RenderFetches int       `json:"render_fetches"`
	TotalScore    float64   `json:"total_score"`
	LastUpdated   time.Time `json:"last_updated"`
}

// AverageScore returns the mean overall score of successful audits this month.
func (m *MonthlyStats) AverageScore() float64 {
	successful := m.PagesAudited - m.FetchFailures
	if successful <= 0 {
		return 0
	}
	return m.TotalScore / float64(successful)
}

// Storage persists audit telemetry to disk, keyed by month. Writes are
// coalesced through a background goroutine so request handlers never block
// on the filesystem.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	writeBuffer chan struct{}
}

// NewStorage creates a new telemetry storage instance under dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	filePath := filepath.Join(dataDir, "stats.json")
	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filePath,
		writeBuffer: make(chan struct{}, 1),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write to a temporary file first so a crash never truncates the stats.
	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename stats file: %w", err)
	}

	return nil
}

// backgroundWriter debounces save requests.
func (s *Storage) backgroundWriter() {
	for range s.writeBuffer {
		if err := s.save(); err != nil {
			log.Printf("Failed to save stats: %v", err)
		}
		time.Sleep(time.Second)
	}
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// A write is already queued.
	}
}

func (s *Storage) currentMonth() *MonthlyStats {
	key := time.Now().Format("2006-01")
	month, ok := s.stats[key]
	if !ok {
		month = &MonthlyStats{}
		s.stats[key] = month
	}
	return month
}

// RecordPageAudit tracks one completed page audit.
func (s *Storage) RecordPageAudit(score float64, strategy string, failed bool) {
	s.mutex.Lock()
	month := s.currentMonth()
	month.AuditsRun++
	month.PagesAudited++
	if failed {
		month.FetchFailures++
	} else {
		month.TotalScore += score
	}
	if strategy == "render" {
		month.RenderFetches++
	}
	month.LastUpdated = time.Now()
	s.mutex.Unlock()

	s.requestWrite()
}

// RecordDomainAudit tracks one completed domain audit and its page outcomes.
func (s *Storage) RecordDomainAudit(pagesAudited, pagesSuccessful int, averageScore float64) {
	s.mutex.Lock()
	month := s.currentMonth()
	month.DomainAudits++
	month.PagesAudited += pagesAudited
	month.FetchFailures += pagesAudited - pagesSuccessful
	month.TotalScore += averageScore * float64(pagesSuccessful)
	month.LastUpdated = time.Now()
	s.mutex.Unlock()

	s.requestWrite()
}

// GetCurrentStats returns a copy of the current month's stats.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return *s.currentMonth()
}

// Cleanup removes stats older than monthsToKeep months.
func (s *Storage) Cleanup(monthsToKeep int) {
	cutoff := time.Now().AddDate(0, -monthsToKeep, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key < cutoff {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// GetMonthly returns a copy of the stats for the given "YYYY-MM" key.
func (s *Storage) GetMonthly(key string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	month, ok := s.stats[key]
	if !ok {
		return MonthlyStats{}, false
	}
	return *month, true
}

// Months returns the available months in descending order.
func (s *Storage) Months() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.stats))
	for key := range s.stats {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// Close flushes any pending write and stops the background writer.
func (s *Storage) Close() error {
	close(s.writeBuffer)
	return s.save()
}
