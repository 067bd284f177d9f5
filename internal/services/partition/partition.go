// Package partition splits a player order into two teams.
package partition

import "github.com/mcoot/teamdraft/internal/model"

// EvenSplit puts the first ceil(n/2) players on Team 1 and the rest on Team 2.
// The caller supplies an already shuffled order.
func EvenSplit(order []string) model.Teams {
	mid := (len(order) + 1) / 2
	return model.Teams{
		Team1: append([]string{}, order[:mid]...),
		Team2: append([]string{}, order[mid:]...),
	}
}

// Balancer builds two teams one player at a time.
// Each player joins the smaller team; ties go to Team 1.
type Balancer struct {
	teams model.Teams
}

// NewBalancer creates an empty Balancer
func NewBalancer() *Balancer {
	return &Balancer{teams: model.Teams{Team1: []string{}, Team2: []string{}}}
}

// Assign adds the player to the smaller team and returns which team it joined
func (b *Balancer) Assign(name string) model.TeamNumber {
	if len(b.teams.Team1) <= len(b.teams.Team2) {
		b.teams.Team1 = append(b.teams.Team1, name)
		return model.Team1
	}
	b.teams.Team2 = append(b.teams.Team2, name)
	return model.Team2
}

// Teams returns a copy of the teams built so far
func (b *Balancer) Teams() model.Teams {
	return b.teams.Clone()
}
