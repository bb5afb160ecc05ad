package manager

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"firesnake/store"
)

const (
	SessionHistoryKey = "sessionHistory"
	MaxSessionHistory = 100
)

// SessionRecord is one finished session
type SessionRecord struct {
	UUID      string    `json:"uuid"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Cause     string    `json:"cause"`
}

// Duration returns how long the session ran
func (r SessionRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// StatsManager keeps the most recent sessions, oldest first
type StatsManager struct {
	mu      sync.RWMutex
	store   store.Store
	log     *slog.Logger
	records []SessionRecord
}

func NewStatsManager(st store.Store, log *slog.Logger) *StatsManager {
	if log == nil {
		log = slog.Default()
	}
	sm := &StatsManager{
		store:   st,
		log:     log,
		records: make([]SessionRecord, 0),
	}

	raw, ok, err := st.Get(SessionHistoryKey)
	switch {
	case err != nil:
		log.Warn("session history unavailable", "err", err)
	case ok:
		var records []SessionRecord
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			log.Warn("malformed session history, starting empty", "err", err)
		} else {
			sm.records = records
		}
	}
	return sm
}

// AddSession appends a record, trims to MaxSessionHistory and persists
func (sm *StatsManager) AddSession(rec SessionRecord) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.records = append(sm.records, rec)
	if len(sm.records) > MaxSessionHistory {
		sm.records = sm.records[len(sm.records)-MaxSessionHistory:]
	}

	data, err := json.Marshal(sm.records)
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}
	if err := sm.store.Set(SessionHistoryKey, string(data)); err != nil {
		return fmt.Errorf("save session history: %w", err)
	}
	return nil
}

// GetSessions returns a copy of the history
func (sm *StatsManager) GetSessions() []SessionRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]SessionRecord, len(sm.records))
	copy(out, sm.records)
	return out
}

func (sm *StatsManager) GetAverageScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.records) == 0 {
		return 0
	}
	total := 0
	for _, r := range sm.records {
		total += r.Score
	}
	return float64(total) / float64(len(sm.records))
}

func (sm *StatsManager) GetMedianScore() float64 {
	sm.mu.RLock()
	scores := make([]int, len(sm.records))
	for i, r := range sm.records {
		scores[i] = r.Score
	}
	sm.mu.RUnlock()

	if len(scores) == 0 {
		return 0
	}
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

// GetBestSession returns the highest scoring recorded session
func (sm *StatsManager) GetBestSession() (SessionRecord, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.records) == 0 {
		return SessionRecord{}, false
	}
	best := sm.records[0]
	for _, r := range sm.records[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}
