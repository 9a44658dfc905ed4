package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies one game sound.
type Cue int

const (
	CueSwap      Cue = iota // tiles exchanged
	CueRevert               // no-match swap snapped back
	CueMatch                // match removal committed
	CueExplosion            // bomb/plus detonation
	CueCascade              // follow-up match in the same move
	CueGameOver             // out of moves
	cueCount                // sentinel
)

// Player owns the speaker and mixes cue tones on demand. All methods are
// safe to call before Init; they just do nothing, so the game runs fine
// on machines without an audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
}

// NewPlayer creates a silent, uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}, volume: 0.6}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences the mixer. beep has no speaker teardown; clearing the
// mixer is enough to stop output.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play fires one cue tone. Fire-and-forget; overlapping cues mix.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := cueStreamer(c)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}

// cueStreamer builds the synthesized tone for a cue.
func cueStreamer(c Cue) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueSwap:
		// Soft short blip.
		return note(520, 70*ms, 5*ms, 40*ms, WaveSine, sampleRate)
	case CueRevert:
		// Low descending buzz: the "nope" sound.
		return beep.Seq(
			note(220, 70*ms, 3*ms, 30*ms, WaveSaw, sampleRate),
			note(160, 90*ms, 3*ms, 60*ms, WaveSaw, sampleRate),
		)
	case CueMatch:
		// Bright two-harmonic ding.
		return beep.Mix(
			newVolume(note(880, 160*ms, 4*ms, 120*ms, WaveSine, sampleRate), 0.7),
			newVolume(note(1760, 160*ms, 4*ms, 140*ms, WaveSine, sampleRate), 0.3),
		)
	case CueCascade:
		// Same ding a fifth up, so chains rise in pitch.
		return beep.Mix(
			newVolume(note(1318.51, 140*ms, 4*ms, 110*ms, WaveSine, sampleRate), 0.7),
			newVolume(note(2637.02, 140*ms, 4*ms, 120*ms, WaveSine, sampleRate), 0.3),
		)
	case CueExplosion:
		// Noise burst over a low square rumble.
		return beep.Mix(
			newVolume(note(0, 220*ms, 2*ms, 180*ms, WaveNoise, sampleRate), 0.6),
			newVolume(note(90, 220*ms, 2*ms, 200*ms, WaveSquare, sampleRate), 0.4),
		)
	case CueGameOver:
		// Three-note descending close.
		return beep.Seq(
			note(659.26, 180*ms, 5*ms, 80*ms, WaveSquare, sampleRate),
			note(523.25, 180*ms, 5*ms, 80*ms, WaveSquare, sampleRate),
			note(392.00, 320*ms, 5*ms, 240*ms, WaveSquare, sampleRate),
		)
	default:
		return nil
	}
}
