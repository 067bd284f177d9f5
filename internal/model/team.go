package model

import "strconv"

// MaxRosterSize is the largest roster a session accepts (5 per team)
const MaxRosterSize = 10

// TeamNumber identifies one of the two teams
type TeamNumber int

const (
	NoTeam TeamNumber = 0
	Team1  TeamNumber = 1
	Team2  TeamNumber = 2
)

// Opponent returns the other team
func (t TeamNumber) Opponent() TeamNumber {
	switch t {
	case Team1:
		return Team2
	case Team2:
		return Team1
	}
	return NoTeam
}

// Valid reports whether t is Team1 or Team2
func (t TeamNumber) Valid() bool {
	return t == Team1 || t == Team2
}

func (t TeamNumber) String() string {
	if !t.Valid() {
		return "none"
	}
	return "Team " + strconv.Itoa(int(t))
}

// DrawMode selects how teams are produced
type DrawMode string

const (
	DrawModeInstant    DrawMode = "instant"    // Shuffle and split in one step
	DrawModeSequential DrawMode = "sequential" // Animated wheel, one pick at a time
)

// ParseDrawMode converts a string to a DrawMode
func ParseDrawMode(s string) (DrawMode, error) {
	switch DrawMode(s) {
	case DrawModeInstant, DrawModeSequential:
		return DrawMode(s), nil
	case "wheel":
		return DrawModeSequential, nil
	}
	return "", ErrInvalidDrawMode
}

// Teams holds the two team rosters produced by a draw
type Teams struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// Empty reports whether no team has members
func (t Teams) Empty() bool {
	return len(t.Team1) == 0 && len(t.Team2) == 0
}

// Members returns the roster of the given team
func (t Teams) Members(team TeamNumber) []string {
	switch team {
	case Team1:
		return t.Team1
	case Team2:
		return t.Team2
	}
	return nil
}

// Clone returns a deep copy so callers can't alias engine state
func (t Teams) Clone() Teams {
	return Teams{
		Team1: append([]string{}, t.Team1...),
		Team2: append([]string{}, t.Team2...),
	}
}
