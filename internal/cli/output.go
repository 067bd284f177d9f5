package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates an Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Roster:
		o.printRoster(v)
	case response.AddPlayer:
		o.printAddPlayer(v)
	case response.BulkAdd:
		o.printBulkAdd(v)
	case response.Settings:
		fmt.Fprintf(o.w, "Map count: %d\n", v.MapCount)
	case model.DraftState:
		o.printDraft(v)
	case model.TossState:
		o.printToss(v)
	case model.Session:
		o.printSession(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRoster(r response.Roster) {
	fmt.Fprintf(o.w, "Players (%d/%d):\n", r.Count, r.Count+r.Remaining)
	for _, name := range r.Players {
		fmt.Fprintf(o.w, "  - %s\n", name)
	}
}

func (o *Output) printAddPlayer(a response.AddPlayer) {
	if a.Added {
		fmt.Fprintln(o.w, "Player added")
	} else {
		fmt.Fprintln(o.w, "Player not added (empty, duplicate, or roster full)")
	}
	o.printRoster(a.Roster)
}

func (o *Output) printBulkAdd(b response.BulkAdd) {
	fmt.Fprintf(o.w, "Added %d player(s)", len(b.Added))
	if len(b.Added) > 0 {
		fmt.Fprintf(o.w, ": %s", strings.Join(b.Added, ", "))
	}
	fmt.Fprintln(o.w)
	o.printRoster(b.Roster)
}

func (o *Output) printDraft(d model.DraftState) {
	fmt.Fprintf(o.w, "Draft: %s\n", d.Status)
	if d.Mode != "" {
		fmt.Fprintf(o.w, "Mode: %s\n", d.Mode)
	}

	if d.Spin != nil {
		state := "spinning"
		if d.Spin.Paused {
			state = "paused"
		}
		fmt.Fprintf(o.w, "Wheel (%s, %d picked): %s\n", state, d.Spin.PickedSoFar, strings.Join(d.Spin.Pool, ", "))
		if d.Spin.Highlight != "" {
			fmt.Fprintf(o.w, "Pointer on: %s\n", d.Spin.Highlight)
		}
	}

	if !d.Teams.Empty() {
		o.printTeams(d.Teams, model.TossState{})
	}
}

func (o *Output) printTeams(t model.Teams, toss model.TossState) {
	for _, team := range []model.TeamNumber{model.Team1, model.Team2} {
		header := team.String()
		if side := toss.SideOf(team); side != "" {
			header += " (" + string(side) + ")"
		}
		fmt.Fprintf(o.w, "%s:\n", header)
		for _, name := range t.Members(team) {
			fmt.Fprintf(o.w, "  - %s\n", name)
		}
	}
}

func (o *Output) printToss(t model.TossState) {
	fmt.Fprintf(o.w, "Toss: %s\n", t.Phase)
	if t.Call != "" {
		fmt.Fprintf(o.w, "Team 1 called: %s\n", t.Call)
	}
	if t.Outcome != "" {
		fmt.Fprintf(o.w, "Coin: %s, %s wins\n", t.Outcome, t.Winner)
	} else if t.Commitment != "" {
		fmt.Fprintf(o.w, "Commitment: %s\n", t.Commitment)
	}
	if t.AttackingTeam.Valid() {
		fmt.Fprintf(o.w, "Attacking: %s\n", t.AttackingTeam)
		fmt.Fprintf(o.w, "Defending: %s\n", t.AttackingTeam.Opponent())
	}
}

func (o *Output) printSession(s model.Session) {
	o.printRoster(response.RosterFromNames(s.Roster))
	fmt.Fprintf(o.w, "Map count: %d\n", s.Settings.MapCount)
	fmt.Fprintln(o.w)
	o.printDraft(s.Draft)
	if s.Toss.Phase != "" && s.Toss.Phase != model.TossPhaseIdle {
		fmt.Fprintln(o.w)
		o.printToss(s.Toss)
	}
}
