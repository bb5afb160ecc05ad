package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays cues through the system audio device. Until Init succeeds
// every cue is silently dropped.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	log         *slog.Logger
	initialized bool
}

// NewSpeaker creates a speaker; volume is linear in [0,1]
func NewSpeaker(volume float64, log *slog.Logger) *Speaker {
	if log == nil {
		log = slog.Default()
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: math.Min(math.Max(volume, 0), 1),
		log:    log,
	}
}

// Init opens the audio device
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues a cue on the mixer
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	t, ok := tones[c]
	if !ok {
		return
	}
	stream, err := Build(t.pattern, t.freq, sampleRate)
	if err != nil {
		s.log.Debug("cue not built", "cue", c, "err", err)
		return
	}

	speaker.Lock()
	s.mixer.Add(withVolume(stream, s.volume))
	speaker.Unlock()
}

func (s *Speaker) Turn()     { s.Play(CueTurn) }
func (s *Speaker) Eat()      { s.Play(CueEat) }
func (s *Speaker) Record()   { s.Play(CueRecord) }
func (s *Speaker) GameOver() { s.Play(CueGameOver) }

// Close stops playback and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// withVolume scales a linear volume onto beep's log2 volume; 0 is silent
func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}
