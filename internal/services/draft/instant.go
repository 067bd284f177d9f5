// Package draft turns a roster into two teams, either instantly or through an animated wheel.
package draft

import (
	"github.com/mcoot/teamdraft/internal/dependencies/random"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/partition"
	"github.com/mcoot/teamdraft/internal/services/shuffle"
)

// Instant shuffles the roster and splits it evenly
func Instant(rnd random.Random, roster []string) model.Teams {
	return partition.EvenSplit(shuffle.Shuffle(rnd, roster))
}

// Assignments builds the assignment map for a finished set of teams
func Assignments(teams model.Teams) model.Assignment {
	out := make(model.Assignment, len(teams.Team1)+len(teams.Team2))
	for _, p := range teams.Team1 {
		out[p] = model.Team1
	}
	for _, p := range teams.Team2 {
		out[p] = model.Team2
	}
	return out
}
