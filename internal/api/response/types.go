package response

import (
	"github.com/mcoot/teamdraft/internal/model"
)

// Roster is the response for roster endpoints
type Roster struct {
	Players   []string `json:"players"`
	Count     int      `json:"count"`
	Remaining int      `json:"remaining"`
}

// RosterFromNames builds a Roster response
func RosterFromNames(names []string) Roster {
	if names == nil {
		names = []string{}
	}
	return Roster{
		Players:   names,
		Count:     len(names),
		Remaining: model.MaxRosterSize - len(names),
	}
}

// AddPlayer is the response for adding a single player
type AddPlayer struct {
	Added  bool   `json:"added"`
	Roster Roster `json:"roster"`
}

// BulkAdd is the response for bulk adds
type BulkAdd struct {
	Added  []string `json:"added"`
	Roster Roster   `json:"roster"`
}

// Settings is the response for settings endpoints
type Settings struct {
	MapCount int `json:"map_count"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{MapCount: int(s.MapCount)}
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
