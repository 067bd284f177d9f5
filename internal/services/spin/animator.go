// Package spin animates the draft wheel for a single pick.
//
// The Animator is a pure state machine: it never sleeps or starts timers.
// Callers feed it the current time and it reports the wheel position.
package spin

import (
	"math"
	"time"

	"github.com/mcoot/teamdraft/internal/dependencies/random"
)

const (
	fullCircle = 360.0

	minRotations   = 3
	rotationSpread = 5 // rotations in [3, 7]

	minOffsetFraction    = 0.3
	offsetFractionSpread = 0.4 // offset in [0.3, 0.7) of a segment

	minDuration    = 3000 * time.Millisecond
	durationSpread = 2001 // ms, duration in [3000, 5000]

	minHold    = 600 * time.Millisecond
	holdSpread = 201 // ms

	minGap    = 300 * time.Millisecond
	gapSpread = 301 // ms
)

// Params are the random values drawn at the start of a spin
type Params struct {
	TargetIndex    int
	Rotations      int
	OffsetFraction float64
	Duration       time.Duration
}

// DrawParams draws spin parameters for a pool of m players
func DrawParams(rnd random.Random, m int) Params {
	return Params{
		TargetIndex:    rnd.Intn(m),
		Rotations:      minRotations + rnd.Intn(rotationSpread),
		OffsetFraction: minOffsetFraction + offsetFractionSpread*rnd.Float64(),
		Duration:       minDuration + time.Duration(rnd.Intn(durationSpread))*time.Millisecond,
	}
}

// HoldDuration draws how long a picked player stays on the wheel
func HoldDuration(rnd random.Random) time.Duration {
	return minHold + time.Duration(rnd.Intn(holdSpread))*time.Millisecond
}

// GapDuration draws the pause between two picks
func GapDuration(rnd random.Random) time.Duration {
	return minGap + time.Duration(rnd.Intn(gapSpread))*time.Millisecond
}

// Animator holds the wheel state for one pick at a time.
// The pool and position carry over between picks.
type Animator struct {
	pool     []string
	position float64

	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	spinning  bool
	animated  bool

	paused      bool
	pausedAt    time.Time
	totalPaused time.Duration
}

// New creates an Animator over the given pool, starting at position 0
func New(pool []string) *Animator {
	return &Animator{pool: append([]string{}, pool...)}
}

// SegmentWidth returns the angle each player occupies
func (a *Animator) SegmentWidth() float64 {
	if len(a.pool) == 0 {
		return 0
	}
	return fullCircle / float64(len(a.pool))
}

// Begin starts a spin from the current position.
// A pool of one resolves immediately and Begin returns false.
func (a *Animator) Begin(rnd random.Random, now time.Time) bool {
	a.start = a.position
	a.startTime = now
	a.paused = false
	a.pausedAt = time.Time{}
	a.totalPaused = 0

	if len(a.pool) <= 1 {
		a.target = a.position
		a.duration = 0
		a.spinning = false
		a.animated = false
		return false
	}

	p := DrawParams(rnd, len(a.pool))
	seg := a.SegmentWidth()
	a.target = a.start + float64(p.Rotations)*fullCircle + float64(p.TargetIndex)*seg + p.OffsetFraction*seg
	a.duration = p.Duration
	a.spinning = true
	a.animated = true
	return true
}

// Elapsed returns the unpaused time spent on the current spin
func (a *Animator) Elapsed(now time.Time) time.Duration {
	ref := now
	if a.paused {
		ref = a.pausedAt
	}
	elapsed := ref.Sub(a.startTime) - a.totalPaused
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Advance moves the wheel to where it should be at now and reports whether the spin finished
func (a *Animator) Advance(now time.Time) bool {
	if !a.spinning {
		return true
	}
	if a.paused {
		return false
	}

	progress := float64(a.Elapsed(now)) / float64(a.duration)
	progress = math.Max(0, math.Min(1, progress))
	eased := 1 - math.Pow(1-progress, 3)
	a.position = a.start + (a.target-a.start)*eased

	if progress >= 1 {
		a.position = a.target
		a.spinning = false
		return true
	}
	return false
}

// Pause freezes the spin. It returns false if there is nothing to pause or it is already paused.
func (a *Animator) Pause(now time.Time) bool {
	if !a.spinning || a.paused {
		return false
	}
	a.paused = true
	a.pausedAt = now
	return true
}

// Resume continues a paused spin, excluding the paused interval from elapsed time.
// It returns false if the spin was not paused.
func (a *Animator) Resume(now time.Time) bool {
	if !a.paused {
		return false
	}
	if now.After(a.pausedAt) {
		a.totalPaused += now.Sub(a.pausedAt)
	}
	a.paused = false
	a.pausedAt = time.Time{}
	return true
}

// Spinning reports whether a spin is in progress
func (a *Animator) Spinning() bool {
	return a.spinning
}

// Animated reports whether the last spin was animated rather than an immediate pick
func (a *Animator) Animated() bool {
	return a.animated
}

// Paused reports whether the spin is paused
func (a *Animator) Paused() bool {
	return a.paused
}

// occupantAt returns the pool index under the pointer at the given angle
func (a *Animator) occupantAt(angle float64) int {
	m := len(a.pool)
	if m == 0 {
		return -1
	}
	norm := math.Mod(angle, fullCircle)
	if norm < 0 {
		norm += fullCircle
	}
	return int(math.Floor(norm/a.SegmentWidth())) % m
}

// Highlight returns the player under the pointer at the current position
func (a *Animator) Highlight() string {
	idx := a.occupantAt(a.position)
	if idx < 0 {
		return ""
	}
	return a.pool[idx]
}

// Picked returns the player the spin lands on
func (a *Animator) Picked() string {
	idx := a.occupantAt(a.target)
	if idx < 0 {
		return ""
	}
	return a.pool[idx]
}

// Remove takes a player out of the pool and snaps the wheel to a segment boundary of the new layout
func (a *Animator) Remove(name string) {
	for i, p := range a.pool {
		if p == name {
			a.pool = append(a.pool[:i:i], a.pool[i+1:]...)
			break
		}
	}
	a.Recenter()
}

// Recenter snaps the position down to the nearest segment boundary
func (a *Animator) Recenter() {
	seg := a.SegmentWidth()
	if seg == 0 {
		return
	}
	a.position = math.Floor(a.position/seg) * seg
	a.start = a.position
	a.target = a.position
}

// Pool returns a copy of the remaining players
func (a *Animator) Pool() []string {
	return append([]string{}, a.pool...)
}

// Position returns the current wheel angle in degrees
func (a *Animator) Position() float64 {
	return a.position
}

// Start returns the angle the current spin began at
func (a *Animator) Start() float64 {
	return a.start
}

// Target returns the angle the current spin lands on
func (a *Animator) Target() float64 {
	return a.target
}

// Duration returns the unpaused length of the current spin
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// TotalPaused returns the paused time accumulated during the current spin
func (a *Animator) TotalPaused() time.Duration {
	return a.totalPaused
}
