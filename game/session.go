package game

import (
	"sync"
	"time"

	"firesnake/game/manager"
	"firesnake/game/types"

	"github.com/google/uuid"
)

// State is the lifecycle of a session
type State int

const (
	StateStart State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "start"
	}
}

// Session tracks the Start → Playing ↔ Paused → GameOver lifecycle
type Session struct {
	mu        sync.RWMutex
	id        string
	state     State
	startTime time.Time
	endTime   time.Time
	outcome   Outcome
	now       func() time.Time
}

func NewSession() *Session {
	return &Session{
		state: StateStart,
		now:   time.Now,
	}
}

// Start begins a new session from Start or GameOver
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStart && s.state != StateGameOver {
		return false
	}
	s.id = uuid.New().String()
	s.state = StatePlaying
	s.startTime = s.now()
	s.endTime = time.Time{}
	s.outcome = Outcome{}
	return true
}

// TogglePause flips Playing and Paused; other states are left alone
func (s *Session) TogglePause() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePlaying:
		s.state = StatePaused
	case StatePaused:
		s.state = StatePlaying
	default:
		return s.state, false
	}
	return s.state, true
}

// End moves a playing session to GameOver with its terminal outcome
func (s *Session) End(o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return false
	}
	s.state = StateGameOver
	s.endTime = s.now()
	s.outcome = o
	return true
}

// Abort ends a playing or paused session without a terminal tick
func (s *Session) Abort(o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying && s.state != StatePaused {
		return false
	}
	o.Result = types.ResultContinue
	s.state = StateGameOver
	s.endTime = s.now()
	s.outcome = o
	return true
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) Outcome() Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

// Record summarizes a finished session for the history
func (s *Session) Record() manager.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cause := s.outcome.Result.String()
	if s.outcome.Result == types.ResultContinue {
		cause = "quit"
	} else if s.outcome.Collision.Fatal() {
		cause = s.outcome.Collision.String()
	}
	return manager.SessionRecord{
		UUID:      s.id,
		StartTime: s.startTime,
		EndTime:   s.endTime,
		Score:     s.outcome.Score,
		Length:    s.outcome.Length,
		Cause:     cause,
	}
}
