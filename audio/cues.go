// Package audio plays short tone patterns as game feedback.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a game event with its own tone pattern
type Cue int

const (
	CueTurn Cue = iota
	CueEat
	CueRecord
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueTurn:
		return "turn"
	case CueEat:
		return "eat"
	case CueRecord:
		return "record"
	case CueGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Pattern alternates tone and silence, starting with a tone
type Pattern []time.Duration

// Total is the length of the whole pattern
func (p Pattern) Total() time.Duration {
	var d time.Duration
	for _, step := range p {
		d += step
	}
	return d
}

type tone struct {
	freq    float64
	pattern Pattern
}

var tones = map[Cue]tone{
	CueTurn:     {freq: 660, pattern: Pattern{15 * time.Millisecond}},
	CueEat:      {freq: 880, pattern: Pattern{50 * time.Millisecond, 30 * time.Millisecond, 50 * time.Millisecond}},
	CueRecord:   {freq: 1320, pattern: Pattern{50 * time.Millisecond, 30 * time.Millisecond, 50 * time.Millisecond, 30 * time.Millisecond, 120 * time.Millisecond}},
	CueGameOver: {freq: 220, pattern: Pattern{200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond, 100 * time.Millisecond, 400 * time.Millisecond}},
}

// PatternFor returns the timing of a cue
func PatternFor(c Cue) Pattern {
	return tones[c].pattern
}

// Build renders a pattern as a finite streamer at the given frequency
func Build(p Pattern, freq float64, sr beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(p))
	for i, step := range p {
		n := sr.N(step)
		if i%2 == 1 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		sine, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(n, sine))
	}
	return beep.Seq(parts...), nil
}
