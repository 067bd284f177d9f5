package model

// TossPhase is the current step of the side-decision protocol
type TossPhase string

const (
	TossPhaseIdle     TossPhase = "idle"
	TossPhaseChoose   TossPhase = "choose"   // Waiting for Team 1's call
	TossPhaseFlipping TossPhase = "flipping" // Outcome drawn, reveal pending
	TossPhaseResult   TossPhase = "result"   // Outcome revealed, waiting for the winner's side
	TossPhaseComplete TossPhase = "complete"
)

// CoinFace is one side of the coin
type CoinFace string

const (
	Heads CoinFace = "heads"
	Tails CoinFace = "tails"
)

// ParseCoinFace converts a string to a CoinFace
func ParseCoinFace(s string) (CoinFace, error) {
	switch CoinFace(s) {
	case Heads, Tails:
		return CoinFace(s), nil
	}
	return "", ErrInvalidCoinFace
}

// Side is the starting side a team plays
type Side string

const (
	SideAttack  Side = "attack"
	SideDefense Side = "defense"
)

// ParseSide converts a string to a Side
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideAttack, SideDefense:
		return Side(s), nil
	}
	return "", ErrInvalidSide
}

// SideMode selects how the toss inputs are supplied
type SideMode string

const (
	SideModeCoin SideMode = "coin" // Team 1 calls, the winner chooses
	SideModeAuto SideMode = "auto" // Call and side choice are submitted by the engine
)

// ParseSideMode converts a string to a SideMode, defaulting to coin
func ParseSideMode(s string) (SideMode, error) {
	switch SideMode(s) {
	case "":
		return SideModeCoin, nil
	case SideModeCoin, SideModeAuto:
		return SideMode(s), nil
	}
	return "", ErrInvalidSideMode
}

// TossState is a read-only view of the side-decision protocol
type TossState struct {
	Phase         TossPhase  `json:"phase"`
	Mode          SideMode   `json:"mode,omitempty"`
	Call          CoinFace   `json:"call,omitempty"`
	Outcome       CoinFace   `json:"outcome,omitempty"` // Only set once revealed
	Winner        TeamNumber `json:"winner,omitempty"`
	WinnerSide    Side       `json:"winner_side,omitempty"`
	AttackingTeam TeamNumber `json:"attacking_team,omitempty"`
	Commitment    string     `json:"commitment,omitempty"`
}

// SideOf returns the starting side for a team once the toss is complete
func (s TossState) SideOf(team TeamNumber) Side {
	if !s.AttackingTeam.Valid() {
		return ""
	}
	if team == s.AttackingTeam {
		return SideAttack
	}
	return SideDefense
}
