package model

import "time"

// DraftID uniquely identifies one draw
type DraftID string

// DraftStatus represents the current phase of a draft
type DraftStatus string

const (
	DraftStatusIdle     DraftStatus = "idle"     // No draft, or the last one was cancelled
	DraftStatusSpinning DraftStatus = "spinning" // Wheel animating toward a pick
	DraftStatusHolding  DraftStatus = "holding"  // Picked player shown before removal
	DraftStatusGap      DraftStatus = "gap"      // Pause between picks
	DraftStatusComplete DraftStatus = "complete" // Teams published
)

// Assignment maps a revealed player to their team
type Assignment map[string]TeamNumber

// Clone returns a copy of the assignment map
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SpinView is a read-only view of the wheel for presentation
type SpinView struct {
	Pool          []string      `json:"pool"`
	Position      float64       `json:"position"`
	Target        float64       `json:"target,omitempty"`
	SegmentWidth  float64       `json:"segment_width"`
	Highlight     string        `json:"highlight,omitempty"`
	Duration      time.Duration `json:"duration"`
	Paused        bool          `json:"paused"`
	TotalPaused   time.Duration `json:"total_paused"`
	PickedSoFar   int           `json:"picked_so_far"`
	CurrentPicked string        `json:"current_picked,omitempty"`
}

// DraftState is a read-only view of the current draft
type DraftState struct {
	ID          DraftID     `json:"id,omitempty"`
	Generation  uint64      `json:"generation"`
	Mode        DrawMode    `json:"mode,omitempty"`
	Status      DraftStatus `json:"status"`
	Assignments Assignment  `json:"assignments"`
	Teams       Teams       `json:"teams"`
	Spin        *SpinView   `json:"spin,omitempty"`
	StartedAt   time.Time   `json:"started_at,omitzero"`
}

// InProgress reports whether a sequential draft is still running
func (d DraftState) InProgress() bool {
	switch d.Status {
	case DraftStatusSpinning, DraftStatusHolding, DraftStatusGap:
		return true
	}
	return false
}

// MapCount is the preferred number of maps in a series
type MapCount int

// DefaultMapCount is used when no preference is stored
const DefaultMapCount MapCount = 3

// Valid reports whether the count is one of the supported series lengths
func (m MapCount) Valid() bool {
	return m == 1 || m == 3 || m == 5
}

// Settings holds persisted session preferences
type Settings struct {
	MapCount MapCount `json:"map_count"`
}

// Session is a complete snapshot of the engine for transports
type Session struct {
	Roster   []string   `json:"roster"`
	Draft    DraftState `json:"draft"`
	Toss     TossState  `json:"toss"`
	Settings Settings   `json:"settings"`
}

// CanDraw reports whether the roster is large enough to draw teams
func (s Session) CanDraw() bool {
	return len(s.Roster) >= 2
}
