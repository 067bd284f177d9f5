package model

import (
	"time"
)

// EventType identifies the type of event
type EventType string

const (
	// Roster events
	EventRosterUpdated   EventType = "roster_updated"
	EventSettingsUpdated EventType = "settings_updated"

	// Draft events
	EventTeamsReady     EventType = "teams_ready"
	EventPickStarted    EventType = "pick_started"
	EventPickProgress   EventType = "pick_progress"
	EventPickResolved   EventType = "pick_resolved"
	EventDraftPaused    EventType = "draft_paused"
	EventDraftResumed   EventType = "draft_resumed"
	EventDraftCancelled EventType = "draft_cancelled"

	// Side-decision events
	EventSideCallRequested EventType = "side_call_requested"
	EventSideTossStarted   EventType = "side_toss_started"
	EventSideTossResult    EventType = "side_toss_result"
	EventSideComplete      EventType = "side_complete"
	EventSideTossReset     EventType = "side_toss_reset"
)

// Event is the base structure for all events
type Event struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	DraftID    DraftID   `json:"draft_id,omitempty"` // Empty for roster-only events
	Generation uint64    `json:"generation"`
	Payload    any       `json:"payload,omitempty"` // Type-specific data
}

// RosterUpdatedPayload contains data for roster updated events
type RosterUpdatedPayload struct {
	Roster []string `json:"roster"`
}

// SettingsUpdatedPayload contains data for settings updated events
type SettingsUpdatedPayload struct {
	Settings Settings `json:"settings"`
}

// TeamsReadyPayload contains data for teams ready events
type TeamsReadyPayload struct {
	Mode      DrawMode `json:"mode"`
	Team1     []string `json:"team1"`
	Team2     []string `json:"team2"`
	Celebrate bool     `json:"celebrate"`
}

// PickStartedPayload contains data for pick started events
type PickStartedPayload struct {
	Pool         []string      `json:"pool"`
	StartAngle   float64       `json:"start_angle"`
	SegmentWidth float64       `json:"segment_width"`
	Duration     time.Duration `json:"duration"`
	PickNumber   int           `json:"pick_number"`
}

// PickProgressPayload contains data for pick progress events
type PickProgressPayload struct {
	Position    float64 `json:"position"`
	Highlight   string  `json:"highlight"`
	PickedSoFar int     `json:"picked_so_far"`
}

// PickResolvedPayload contains data for pick resolved events
type PickResolvedPayload struct {
	Player     string     `json:"player"`
	Team       TeamNumber `json:"team"`
	PickNumber int        `json:"pick_number"`
	Remaining  int        `json:"remaining"`
}

// DraftPausedPayload contains data for pause and resume events
type DraftPausedPayload struct {
	Position    float64       `json:"position"`
	TotalPaused time.Duration `json:"total_paused"`
}

// DraftCancelledPayload contains data for draft cancelled events
type DraftCancelledPayload struct {
	Reason string `json:"reason"`
}

// SideCallRequestedPayload contains data for side call requested events
type SideCallRequestedPayload struct {
	Mode SideMode `json:"mode"`
}

// SideTossStartedPayload contains data for side toss started events.
// Commitment is blake2b-256 of "nonce:outcome"; the nonce is revealed with the result.
type SideTossStartedPayload struct {
	Call       CoinFace  `json:"call"`
	Commitment string    `json:"commitment"`
	RevealAt   time.Time `json:"reveal_at"`
}

// SideTossResultPayload contains data for side toss result events
type SideTossResultPayload struct {
	Outcome CoinFace   `json:"outcome"`
	Winner  TeamNumber `json:"winner"`
	Nonce   string     `json:"nonce"`
}

// SideCompletePayload contains data for side complete events
type SideCompletePayload struct {
	AttackingTeam TeamNumber `json:"attacking_team"`
	DefendingTeam TeamNumber `json:"defending_team"`
	ChosenBy      TeamNumber `json:"chosen_by"`
	Side          Side       `json:"side"`
}

// SideTossResetPayload contains data for side toss reset events
type SideTossResetPayload struct {
	Reason string `json:"reason"`
}
