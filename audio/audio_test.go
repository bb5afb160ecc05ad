package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Expected no stream error, got: %v", err)
	}
	return out
}

func TestBuildLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, c := range []Cue{CueTurn, CueEat, CueRecord, CueGameOver} {
		p := PatternFor(c)
		s, err := Build(p, 440, rate)
		if err != nil {
			t.Fatalf("%v: Expected no error, got: %v", c, err)
		}

		want := 0
		for _, step := range p {
			want += rate.N(step)
		}
		if got := len(drain(t, s)); got != want {
			t.Errorf("%v: Expected %d samples, got %d", c, want, got)
		}
	}
}

func TestBuildAlternatesToneAndSilence(t *testing.T) {
	rate := beep.SampleRate(8000)
	p := Pattern{20 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond}
	s, err := Build(p, 440, rate)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	samples := drain(t, s)

	on := rate.N(p[0])
	gap := rate.N(p[1])

	loud := false
	for _, smp := range samples[:on] {
		if smp[0] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Errorf("Expected sound in the first segment")
	}
	for i, smp := range samples[on : on+gap] {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("Expected silence at gap sample %d, got %v", i, smp)
		}
	}
}

func TestGameOverPattern(t *testing.T) {
	p := PatternFor(CueGameOver)
	if len(p) != 5 || p.Total() != time.Second {
		t.Errorf("Expected 5 steps over 1s, got %d over %v", len(p), p.Total())
	}
}

func TestSpeakerSilentBeforeInit(t *testing.T) {
	s := NewSpeaker(2, nil)
	if s.volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", s.volume)
	}
	// must not touch the audio device
	s.Turn()
	s.Eat()
	s.Record()
	s.GameOver()
	s.Close()
}

func TestWithVolumeSilent(t *testing.T) {
	s, _ := Build(Pattern{10 * time.Millisecond}, 440, beep.SampleRate(8000))
	for _, smp := range drain(t, withVolume(s, 0)) {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("Expected silence at zero volume, got %v", smp)
		}
	}
}
