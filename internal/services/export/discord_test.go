package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/teamdraft/internal/model"
)

func TestDiscord(t *testing.T) {
	teams := model.Teams{Team1: []string{"Jett", "Sage", "Omen"}, Team2: []string{"Sova", "Raze"}}

	tests := []struct {
		name string
		toss model.TossState
		want string
	}{
		{
			name: "sides undecided",
			toss: model.TossState{Phase: model.TossPhaseIdle},
			want: "** Team 1 **\n• Jett\n• Sage\n• Omen\n\n** Team 2 **\n• Sova\n• Raze\n",
		},
		{
			name: "team 2 attacks",
			toss: model.TossState{Phase: model.TossPhaseComplete, AttackingTeam: model.Team2},
			want: "** Team 1 ** (Defense)\n• Jett\n• Sage\n• Omen\n\n** Team 2 ** (Attack)\n• Sova\n• Raze\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Discord(teams, tt.toss))
		})
	}
}
