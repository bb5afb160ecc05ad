package manager

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"firesnake/store"
)

const (
	HighScoreKey      = "highScore"
	DefaultPlayerName = "Anonymous"
)

// HighScore is the persisted best result
type HighScore struct {
	Score      int    `json:"score"`
	PlayerName string `json:"playerName"`
}

// ParseHighScore accepts the structured record or a legacy bare integer.
// The boolean is false when raw is neither; the zero record is returned then.
func ParseHighScore(raw string) (HighScore, bool) {
	var hs HighScore
	if err := json.Unmarshal([]byte(raw), &hs); err == nil {
		if hs.Score < 0 {
			return HighScore{}, false
		}
		return hs, true
	}

	legacy, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || legacy < 0 {
		return HighScore{}, false
	}
	return HighScore{Score: legacy}, true
}

// EncodeHighScore always emits the structured form
func EncodeHighScore(hs HighScore) (string, error) {
	data, err := json.Marshal(hs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type StateManager struct {
	mu        sync.RWMutex
	store     store.Store
	log       *slog.Logger
	highScore HighScore
}

// NewStateManager loads the stored high score; unreadable values fall back to the zero record
func NewStateManager(st store.Store, log *slog.Logger) *StateManager {
	if log == nil {
		log = slog.Default()
	}
	sm := &StateManager{
		store: st,
		log:   log,
	}
	sm.load()
	return sm
}

func (sm *StateManager) load() {
	raw, ok, err := sm.store.Get(HighScoreKey)
	if err != nil {
		sm.log.Warn("high score unavailable", "err", err)
		return
	}
	if !ok {
		return
	}

	hs, valid := ParseHighScore(raw)
	if !valid {
		sm.log.Warn("malformed high score, using default", "raw", raw)
	}
	sm.highScore = hs
}

func (sm *StateManager) GetHighScore() HighScore {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

// IsRecord reports whether score strictly beats the stored high score
func (sm *StateManager) IsRecord(score int) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return score > sm.highScore.Score
}

// Submit stores score under playerName when it is a record.
// The in-memory record is updated even if persisting fails.
func (sm *StateManager) Submit(score int, playerName string) (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if score <= sm.highScore.Score {
		return false, nil
	}

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		playerName = DefaultPlayerName
	}
	sm.highScore = HighScore{Score: score, PlayerName: playerName}

	raw, err := EncodeHighScore(sm.highScore)
	if err != nil {
		return true, fmt.Errorf("encode high score: %w", err)
	}
	if err := sm.store.Set(HighScoreKey, raw); err != nil {
		return true, fmt.Errorf("save high score: %w", err)
	}
	sm.log.Info("new high score", "score", score, "player", playerName)
	return true, nil
}
