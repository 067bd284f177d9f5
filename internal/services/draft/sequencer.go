package draft

import (
	"time"

	"github.com/mcoot/teamdraft/internal/dependencies/random"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/partition"
	"github.com/mcoot/teamdraft/internal/services/shuffle"
	"github.com/mcoot/teamdraft/internal/services/spin"
)

// Sequencer runs an animated draft one pick at a time.
//
// It owns the draft context: the wheel, the balancer and the assignment map.
// All waits are deadlines checked by Tick; the Sequencer itself never blocks.
type Sequencer struct {
	id         model.DraftID
	generation uint64
	rnd        random.Random

	wheel       *spin.Animator
	balancer    *partition.Balancer
	assignments model.Assignment

	status    model.DraftStatus
	total     int
	picks     int
	current   string
	deadline  time.Time
	startedAt time.Time

	// pause state for hold and gap; spin pauses live in the wheel
	paused   bool
	pausedAt time.Time
}

// NewSequencer seeds a draft with a shuffled copy of the roster
func NewSequencer(id model.DraftID, generation uint64, roster []string, rnd random.Random) *Sequencer {
	return &Sequencer{
		id:          id,
		generation:  generation,
		rnd:         rnd,
		wheel:       spin.New(shuffle.Shuffle(rnd, roster)),
		balancer:    partition.NewBalancer(),
		assignments: make(model.Assignment, len(roster)),
		status:      model.DraftStatusIdle,
		total:       len(roster),
	}
}

// ID returns the draft ID
func (s *Sequencer) ID() model.DraftID { return s.id }

// Generation returns the generation token the draft was started under
func (s *Sequencer) Generation() uint64 { return s.generation }

// Status returns the current phase
func (s *Sequencer) Status() model.DraftStatus { return s.status }

// Done reports whether every player has been picked and the teams published
func (s *Sequencer) Done() bool { return s.status == model.DraftStatusComplete }

// Start begins the first pick
func (s *Sequencer) Start(now time.Time) []model.Event {
	if s.status != model.DraftStatusIdle {
		return nil
	}
	s.startedAt = now
	return s.beginPick(now)
}

// Tick advances the draft to now and returns the events produced.
// Several phases may complete in one call if their deadlines have all passed.
func (s *Sequencer) Tick(now time.Time) []model.Event {
	var events []model.Event
	for {
		switch s.status {
		case model.DraftStatusSpinning:
			if s.wheel.Paused() {
				return events
			}
			if !s.wheel.Advance(now) {
				return append(events, s.event(model.EventPickProgress, now, model.PickProgressPayload{
					Position:    s.wheel.Position(),
					Highlight:   s.wheel.Highlight(),
					PickedSoFar: s.picks,
				}))
			}
			events = append(events, s.resolve(now)...)

		case model.DraftStatusHolding:
			if s.paused || now.Before(s.deadline) {
				return events
			}
			s.wheel.Remove(s.current)
			s.current = ""
			if len(s.wheel.Pool()) == 0 {
				s.status = model.DraftStatusComplete
				teams := s.balancer.Teams()
				return append(events, s.event(model.EventTeamsReady, now, model.TeamsReadyPayload{
					Mode:      model.DrawModeSequential,
					Team1:     teams.Team1,
					Team2:     teams.Team2,
					Celebrate: true,
				}))
			}
			s.status = model.DraftStatusGap
			s.deadline = now.Add(spin.GapDuration(s.rnd))

		case model.DraftStatusGap:
			if s.paused || now.Before(s.deadline) {
				return events
			}
			events = append(events, s.beginPick(now)...)

		default:
			return events
		}
	}
}

func (s *Sequencer) beginPick(now time.Time) []model.Event {
	animated := s.wheel.Begin(s.rnd, now)
	s.status = model.DraftStatusSpinning
	started := s.event(model.EventPickStarted, now, model.PickStartedPayload{
		Pool:         s.wheel.Pool(),
		StartAngle:   s.wheel.Start(),
		SegmentWidth: s.wheel.SegmentWidth(),
		Duration:     s.wheel.Duration(),
		PickNumber:   s.picks + 1,
	})
	if animated {
		return []model.Event{started}
	}
	return append([]model.Event{started}, s.resolve(now)...)
}

func (s *Sequencer) resolve(now time.Time) []model.Event {
	player := s.wheel.Picked()
	team := s.balancer.Assign(player)
	s.assignments[player] = team
	s.picks++
	s.current = player
	s.status = model.DraftStatusHolding
	s.deadline = now.Add(spin.HoldDuration(s.rnd))

	return []model.Event{s.event(model.EventPickResolved, now, model.PickResolvedPayload{
		Player:     player,
		Team:       team,
		PickNumber: s.picks,
		Remaining:  s.total - s.picks,
	})}
}

// Pause freezes the current spin, hold or gap.
// Hold and gap can only be paused when they follow an animated spin.
// A repeated pause returns no event and no error.
func (s *Sequencer) Pause(now time.Time) (*model.Event, error) {
	switch s.status {
	case model.DraftStatusSpinning:
		if s.wheel.Paused() {
			return nil, nil
		}
		if !s.wheel.Pause(now) {
			return nil, model.ErrNothingToPause
		}
	case model.DraftStatusHolding, model.DraftStatusGap:
		if !s.wheel.Animated() {
			return nil, model.ErrNothingToPause
		}
		if s.paused {
			return nil, nil
		}
		s.paused = true
		s.pausedAt = now
	default:
		return nil, model.ErrNothingToPause
	}

	ev := s.event(model.EventDraftPaused, now, s.pausePayload())
	return &ev, nil
}

// Resume continues a paused draft. Resuming an unpaused draft returns no event and no error.
func (s *Sequencer) Resume(now time.Time) (*model.Event, error) {
	switch s.status {
	case model.DraftStatusSpinning:
		if !s.wheel.Resume(now) {
			if !s.wheel.Spinning() {
				return nil, model.ErrNothingToPause
			}
			return nil, nil
		}
	case model.DraftStatusHolding, model.DraftStatusGap:
		if !s.wheel.Animated() {
			return nil, model.ErrNothingToPause
		}
		if !s.paused {
			return nil, nil
		}
		if now.After(s.pausedAt) {
			s.deadline = s.deadline.Add(now.Sub(s.pausedAt))
		}
		s.paused = false
		s.pausedAt = time.Time{}
	default:
		return nil, model.ErrNothingToPause
	}

	ev := s.event(model.EventDraftResumed, now, s.pausePayload())
	return &ev, nil
}

// Paused reports whether any phase of the draft is paused
func (s *Sequencer) Paused() bool {
	return s.paused || s.wheel.Paused()
}

// Deadline returns when the current hold or gap ends
func (s *Sequencer) Deadline() time.Time {
	return s.deadline
}

func (s *Sequencer) pausePayload() model.DraftPausedPayload {
	return model.DraftPausedPayload{
		Position:    s.wheel.Position(),
		TotalPaused: s.wheel.TotalPaused(),
	}
}

// State returns a read-only view of the draft
func (s *Sequencer) State() model.DraftState {
	state := model.DraftState{
		ID:          s.id,
		Generation:  s.generation,
		Mode:        model.DrawModeSequential,
		Status:      s.status,
		Assignments: s.assignments.Clone(),
		Teams:       model.Teams{Team1: []string{}, Team2: []string{}},
		StartedAt:   s.startedAt,
	}
	if s.status == model.DraftStatusComplete {
		state.Teams = s.balancer.Teams()
		return state
	}
	state.Spin = &model.SpinView{
		Pool:          s.wheel.Pool(),
		Position:      s.wheel.Position(),
		Target:        s.wheel.Target(),
		SegmentWidth:  s.wheel.SegmentWidth(),
		Highlight:     s.wheel.Highlight(),
		Duration:      s.wheel.Duration(),
		Paused:        s.Paused(),
		TotalPaused:   s.wheel.TotalPaused(),
		PickedSoFar:   s.picks,
		CurrentPicked: s.current,
	}
	return state
}

func (s *Sequencer) event(t model.EventType, now time.Time, payload any) model.Event {
	return model.Event{
		Type:       t,
		Timestamp:  now,
		DraftID:    s.id,
		Generation: s.generation,
		Payload:    payload,
	}
}
