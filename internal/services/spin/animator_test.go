package spin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamdraft/internal/dependencies/mocks"
	"github.com/mcoot/teamdraft/internal/dependencies/random"
)

type AnimatorSuite struct {
	suite.Suite
	random *mocks.MockRandom
	t0     time.Time
}

func TestAnimatorSuite(t *testing.T) {
	suite.Run(t, new(AnimatorSuite))
}

func (s *AnimatorSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// queueSpin sets up target index 2, 4 rotations, offset 0.5 and a 3500ms duration
func (s *AnimatorSuite) queueSpin() {
	s.random.QueueIntn(2, 1, 500)
	s.random.QueueFloat64(0.5)
}

func (s *AnimatorSuite) TestBeginComputesTarget() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})

	s.True(a.Begin(s.random, s.t0))

	// 4*360 + 2*90 + 0.5*90
	s.InDelta(1665.0, a.Target(), 1e-9)
	s.Equal(3500*time.Millisecond, a.Duration())
	s.Equal(90.0, a.SegmentWidth())
	s.Equal("C", a.Picked())
}

func (s *AnimatorSuite) TestAdvanceEasesOut() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})
	a.Begin(s.random, s.t0)

	s.False(a.Advance(s.t0.Add(1750 * time.Millisecond)))
	// progress 0.5 eases to 0.875
	s.InDelta(1665.0*0.875, a.Position(), 1e-9)
	s.Equal("A", a.Highlight())

	s.True(a.Advance(s.t0.Add(3500 * time.Millisecond)))
	s.InDelta(1665.0, a.Position(), 1e-9)
	s.Equal("C", a.Highlight())
	s.False(a.Spinning())
}

func (s *AnimatorSuite) TestAdvanceBeforeStartStaysAtStart() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})
	a.Begin(s.random, s.t0)

	s.False(a.Advance(s.t0.Add(-time.Second)))
	s.Equal(0.0, a.Position())
}

func (s *AnimatorSuite) TestPauseFreezesPositionAndExcludesPausedTime() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})
	a.Begin(s.random, s.t0)

	a.Advance(s.t0.Add(time.Second))
	frozen := a.Position()

	s.True(a.Pause(s.t0.Add(time.Second)))
	s.False(a.Pause(s.t0.Add(2*time.Second)), "second pause is a no-op")

	s.False(a.Advance(s.t0.Add(8 * time.Second)))
	s.Equal(frozen, a.Position())
	s.Equal(time.Second, a.Elapsed(s.t0.Add(8*time.Second)))

	s.True(a.Resume(s.t0.Add(11 * time.Second)))
	s.False(a.Resume(s.t0.Add(12*time.Second)), "second resume is a no-op")
	s.Equal(10*time.Second, a.TotalPaused())

	s.False(a.Advance(s.t0.Add(13499 * time.Millisecond)))
	s.True(a.Advance(s.t0.Add(13500 * time.Millisecond)))
	s.Equal(3500*time.Millisecond, a.Elapsed(s.t0.Add(13500*time.Millisecond)))
}

func (s *AnimatorSuite) TestResumeWithoutPauseIsNoop() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})
	a.Begin(s.random, s.t0)

	s.False(a.Resume(s.t0.Add(time.Second)))
	s.Equal(time.Duration(0), a.TotalPaused())
}

func (s *AnimatorSuite) TestSinglePlayerPicksImmediately() {
	a := New([]string{"solo"})

	s.False(a.Begin(s.random, s.t0))
	s.False(a.Spinning())
	s.False(a.Animated())
	s.True(a.Advance(s.t0))
	s.Equal("solo", a.Picked())
	s.False(a.Pause(s.t0), "pause has no effect without a spin")
}

func (s *AnimatorSuite) TestRemoveRecentersToSegmentBoundary() {
	s.queueSpin()
	a := New([]string{"A", "B", "C", "D"})
	a.Begin(s.random, s.t0)
	a.Advance(s.t0.Add(4 * time.Second))

	a.Remove("C")

	s.Equal([]string{"A", "B", "D"}, a.Pool())
	s.Equal(120.0, a.SegmentWidth())
	// floor(1665 / 120) * 120
	s.Equal(1560.0, a.Position())
}

func (s *AnimatorSuite) TestHoldAndGapRanges() {
	s.random.QueueIntn(0, 200, 0, 300)

	s.Equal(600*time.Millisecond, HoldDuration(s.random))
	s.Equal(800*time.Millisecond, HoldDuration(s.random))
	s.Equal(300*time.Millisecond, GapDuration(s.random))
	s.Equal(600*time.Millisecond, GapDuration(s.random))
}

func (s *AnimatorSuite) TestDrawParamsRanges() {
	rnd := random.New()
	for range 500 {
		p := DrawParams(rnd, 7)
		s.GreaterOrEqual(p.TargetIndex, 0)
		s.Less(p.TargetIndex, 7)
		s.GreaterOrEqual(p.Rotations, 3)
		s.LessOrEqual(p.Rotations, 7)
		s.GreaterOrEqual(p.OffsetFraction, 0.3)
		s.Less(p.OffsetFraction, 0.7)
		s.GreaterOrEqual(p.Duration, 3000*time.Millisecond)
		s.LessOrEqual(p.Duration, 5000*time.Millisecond)
	}
}

func (s *AnimatorSuite) TestHighlightAtRestIsPicked() {
	rnd := random.New()
	pool := []string{"A", "B", "C", "D", "E"}
	for range 200 {
		a := New(pool)
		a.Begin(rnd, s.t0)
		a.Advance(s.t0.Add(10 * time.Second))
		s.Equal(a.Highlight(), a.Picked())
	}
}

func (s *AnimatorSuite) TestElapsedAtCompletionMatchesDurationUnderRandomPauses() {
	const tick = 50 * time.Millisecond
	rnd := random.New()

	for range 50 {
		a := New([]string{"A", "B", "C", "D", "E", "F"})
		now := s.t0
		a.Begin(rnd, now)

		for {
			now = now.Add(tick)
			if rnd.Intn(4) == 0 {
				if a.Paused() {
					a.Resume(now)
				} else {
					a.Pause(now)
				}
			}
			if a.Advance(now) {
				break
			}
		}

		elapsed := a.Elapsed(now)
		s.GreaterOrEqual(elapsed, a.Duration())
		s.Less(elapsed, a.Duration()+tick)
	}
}
