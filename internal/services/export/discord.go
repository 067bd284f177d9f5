// Package export formats drawn teams for pasting into chat.
package export

import (
	"strings"

	"github.com/mcoot/teamdraft/internal/model"
)

// Discord renders both teams as Discord markdown.
// The starting side is appended to each header once the toss is complete.
func Discord(teams model.Teams, toss model.TossState) string {
	var b strings.Builder
	for i, team := range []model.TeamNumber{model.Team1, model.Team2} {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("** ")
		b.WriteString(team.String())
		b.WriteString(" **")
		switch toss.SideOf(team) {
		case model.SideAttack:
			b.WriteString(" (Attack)")
		case model.SideDefense:
			b.WriteString(" (Defense)")
		}
		b.WriteString("\n")
		for _, name := range teams.Members(team) {
			b.WriteString("• ")
			b.WriteString(name)
			b.WriteString("\n")
		}
	}
	return b.String()
}
