package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/teamdraft/internal/model"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("P%d", i+1)
	}
	return out
}

func TestEvenSplit(t *testing.T) {
	tests := []struct {
		name      string
		order     []string
		wantTeam1 []string
		wantTeam2 []string
	}{
		{
			name:      "odd roster favours team 1",
			order:     []string{"A", "B", "C", "D", "E"},
			wantTeam1: []string{"A", "B", "C"},
			wantTeam2: []string{"D", "E"},
		},
		{
			name:      "even roster",
			order:     []string{"A", "B"},
			wantTeam1: []string{"A"},
			wantTeam2: []string{"B"},
		},
		{
			name:      "empty roster",
			order:     []string{},
			wantTeam1: []string{},
			wantTeam2: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := EvenSplit(tt.order)
			assert.Equal(t, tt.wantTeam1, teams.Team1)
			assert.Equal(t, tt.wantTeam2, teams.Team2)
		})
	}
}

func TestEvenSplit_DoesNotAliasInput(t *testing.T) {
	order := []string{"A", "B", "C"}
	teams := EvenSplit(order)
	teams.Team1[0] = "Z"
	assert.Equal(t, "A", order[0])
}

func TestBalancer_TiesGoToTeam1(t *testing.T) {
	b := NewBalancer()

	assert.Equal(t, model.Team1, b.Assign("A"))
	assert.Equal(t, model.Team2, b.Assign("B"))
	assert.Equal(t, model.Team1, b.Assign("C"))
	assert.Equal(t, model.Team2, b.Assign("D"))
	assert.Equal(t, model.Team1, b.Assign("E"))

	teams := b.Teams()
	assert.Equal(t, []string{"A", "C", "E"}, teams.Team1)
	assert.Equal(t, []string{"B", "D"}, teams.Team2)
}

func TestPartitionSizeInvariant(t *testing.T) {
	for n := 2; n <= model.MaxRosterSize; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			roster := names(n)

			even := EvenSplit(roster)
			b := NewBalancer()
			for _, p := range roster {
				b.Assign(p)
			}
			balanced := b.Teams()

			for _, teams := range []model.Teams{even, balanced} {
				assert.Len(t, teams.Team1, (n+1)/2)
				assert.Len(t, teams.Team2, n/2)
				assert.ElementsMatch(t, roster, append(append([]string{}, teams.Team1...), teams.Team2...))
				for _, p := range teams.Team1 {
					assert.NotContains(t, teams.Team2, p)
				}
			}
		})
	}
}
