// Package sound synthesises the short cues the presentation plays during a draft.
package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/mcoot/teamdraft/internal/model"
)

// Cue names a sound effect
type Cue string

const (
	CueTick    Cue = "tick"    // wheel passes a segment
	CuePick    Cue = "pick"    // wheel lands on a player
	CueCoin    Cue = "coin"    // coin flip starts
	CueFanfare Cue = "fanfare" // teams ready or sides decided
)

// Cues lists every cue in a stable order
var Cues = []Cue{CueTick, CuePick, CueCoin, CueFanfare}

// ParseCue converts a string to a Cue
func ParseCue(s string) (Cue, error) {
	for _, c := range Cues {
		if string(c) == s {
			return c, nil
		}
	}
	return "", model.ErrUnknownCue
}

type note struct {
	freq     float64 // 0 is a rest
	duration time.Duration
}

var scores = map[Cue][]note{
	CueTick: {{freq: 1200, duration: 25 * time.Millisecond}},
	CuePick: {
		{freq: 659.25, duration: 90 * time.Millisecond},
		{freq: 987.77, duration: 160 * time.Millisecond},
	},
	CueCoin: {
		{freq: 987.77, duration: 80 * time.Millisecond},
		{freq: 1318.51, duration: 220 * time.Millisecond},
	},
	CueFanfare: {
		{freq: 523.25, duration: 120 * time.Millisecond},
		{freq: 659.25, duration: 120 * time.Millisecond},
		{freq: 783.99, duration: 120 * time.Millisecond},
		{freq: 0, duration: 60 * time.Millisecond},
		{freq: 1046.50, duration: 400 * time.Millisecond},
	},
}

// streamer builds the cue as a finite stream at the given rate
func streamer(cue Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	score, ok := scores[cue]
	if !ok {
		return nil, model.ErrUnknownCue
	}

	parts := make([]beep.Streamer, 0, len(score))
	for _, n := range score {
		samples := rate.N(n.duration)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.2fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}

	return gain(beep.Seq(parts...), volume), nil
}

// gain scales a stream linearly; zero or less is silent
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
