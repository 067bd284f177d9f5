// Package toss runs the coin toss that decides which team starts on attack.
package toss

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/teamdraft/internal/dependencies/random"
	"github.com/mcoot/teamdraft/internal/model"
)

const (
	minFlipDelay    = 3000 * time.Millisecond
	flipDelaySpread = 1001 // ms, reveal in [3000, 4000]

	nonceLength   = 16
	nonceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Commit returns the hex blake2b-256 digest of "nonce:outcome"
func Commit(nonce string, outcome model.CoinFace) string {
	sum := blake2b.Sum256([]byte(nonce + ":" + string(outcome)))
	return hex.EncodeToString(sum[:])
}

// Verify checks a revealed nonce and outcome against a published commitment
func Verify(commitment, nonce string, outcome model.CoinFace) bool {
	return Commit(nonce, outcome) == commitment
}

// Protocol is the side-decision state machine.
// Events it returns carry a type, timestamp and payload; the caller stamps draft identity.
type Protocol struct {
	rnd random.Random

	phase     model.TossPhase
	mode      model.SideMode
	preferred model.Side

	call       model.CoinFace
	outcome    model.CoinFace
	nonce      string
	commitment string
	revealAt   time.Time

	winner     model.TeamNumber
	winnerSide model.Side
	attacking  model.TeamNumber
}

// New creates an idle Protocol
func New(rnd random.Random) *Protocol {
	return &Protocol{rnd: rnd, phase: model.TossPhaseIdle}
}

// Phase returns the current phase
func (p *Protocol) Phase() model.TossPhase {
	return p.phase
}

// Start moves idle to choose. In auto mode the call is submitted straight away.
func (p *Protocol) Start(mode model.SideMode, preferred model.Side, now time.Time) ([]model.Event, error) {
	if p.phase != model.TossPhaseIdle {
		return nil, model.ErrTossPhase
	}
	if mode == "" {
		mode = model.SideModeCoin
	}
	if preferred == "" {
		preferred = model.SideAttack
	}

	p.mode = mode
	p.preferred = preferred
	p.phase = model.TossPhaseChoose
	events := []model.Event{newEvent(model.EventSideCallRequested, now, model.SideCallRequestedPayload{Mode: mode})}

	if mode == model.SideModeAuto {
		face := model.Heads
		if p.rnd.Intn(2) == 1 {
			face = model.Tails
		}
		more, err := p.Call(face, now)
		if err != nil {
			return nil, err
		}
		events = append(events, more...)
	}
	return events, nil
}

// Call records Team 1's call and draws the outcome. The outcome is fixed from here on.
func (p *Protocol) Call(face model.CoinFace, now time.Time) ([]model.Event, error) {
	if p.phase != model.TossPhaseChoose {
		return nil, model.ErrTossPhase
	}

	p.call = face
	p.outcome = model.Heads
	if p.rnd.Intn(2) == 1 {
		p.outcome = model.Tails
	}
	p.nonce = p.rnd.String(nonceLength, nonceAlphabet)
	p.commitment = Commit(p.nonce, p.outcome)
	p.revealAt = now.Add(minFlipDelay + time.Duration(p.rnd.Intn(flipDelaySpread))*time.Millisecond)
	p.phase = model.TossPhaseFlipping

	return []model.Event{newEvent(model.EventSideTossStarted, now, model.SideTossStartedPayload{
		Call:       face,
		Commitment: p.commitment,
		RevealAt:   p.revealAt,
	})}, nil
}

// Tick reveals the outcome once the flip deadline passes.
// In auto mode the winner's preferred side is submitted on reveal.
func (p *Protocol) Tick(now time.Time) []model.Event {
	if p.phase != model.TossPhaseFlipping || now.Before(p.revealAt) {
		return nil
	}

	p.winner = model.Team2
	if p.outcome == p.call {
		p.winner = model.Team1
	}
	p.phase = model.TossPhaseResult
	events := []model.Event{newEvent(model.EventSideTossResult, now, model.SideTossResultPayload{
		Outcome: p.outcome,
		Winner:  p.winner,
		Nonce:   p.nonce,
	})}

	if p.mode == model.SideModeAuto {
		events = append(events, p.choose(p.preferred, now))
	}
	return events
}

// Choose records the toss winner's starting side
func (p *Protocol) Choose(side model.Side, now time.Time) ([]model.Event, error) {
	if p.phase != model.TossPhaseResult {
		return nil, model.ErrTossPhase
	}
	return []model.Event{p.choose(side, now)}, nil
}

// choose completes the toss. The caller has checked the phase is result.
func (p *Protocol) choose(side model.Side, now time.Time) model.Event {
	p.winnerSide = side
	p.attacking = p.winner
	if side == model.SideDefense {
		p.attacking = p.winner.Opponent()
	}
	p.phase = model.TossPhaseComplete

	return newEvent(model.EventSideComplete, now, model.SideCompletePayload{
		AttackingTeam: p.attacking,
		DefendingTeam: p.attacking.Opponent(),
		ChosenBy:      p.winner,
		Side:          side,
	})
}

// Reset returns the protocol to idle. It returns nil if it was already idle.
func (p *Protocol) Reset(reason string, now time.Time) *model.Event {
	if p.phase == model.TossPhaseIdle {
		return nil
	}
	*p = Protocol{rnd: p.rnd, phase: model.TossPhaseIdle}
	ev := newEvent(model.EventSideTossReset, now, model.SideTossResetPayload{Reason: reason})
	return &ev
}

// State returns a read-only view. The outcome stays hidden until it is revealed.
func (p *Protocol) State() model.TossState {
	state := model.TossState{
		Phase:         p.phase,
		Mode:          p.mode,
		Call:          p.call,
		Winner:        p.winner,
		WinnerSide:    p.winnerSide,
		AttackingTeam: p.attacking,
		Commitment:    p.commitment,
	}
	if p.phase == model.TossPhaseResult || p.phase == model.TossPhaseComplete {
		state.Outcome = p.outcome
	}
	return state
}

func newEvent(t model.EventType, now time.Time, payload any) model.Event {
	return model.Event{Type: t, Timestamp: now, Payload: payload}
}
