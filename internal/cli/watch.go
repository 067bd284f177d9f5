package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/web/sse"
)

var (
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleDim       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleTeam1     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleTeam2     = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the draft live in the terminal",
		Long:  "Render the wheel, teams and coin toss as they change. Press q or Esc to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			return runWatch(screen)
		},
	}
}

type streamEvent struct {
	name string
	data string
}

func runWatch(screen tcell.Screen) error {
	ctx, cancel := signalContext()
	defer cancel()

	view := &watchView{}
	if err := view.refresh(); err != nil {
		return err
	}

	resp, err := openStream(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	events := make(chan streamEvent, 64)
	streamErr := make(chan error, 1)
	go func() {
		streamErr <- readSSE(resp.Body, func(event, data string) {
			select {
			case events <- streamEvent{event, data}:
			case <-ctx.Done():
			}
		})
	}()

	keys := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case keys <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	view.draw(screen)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-streamErr:
			if ctx.Err() != nil {
				return nil
			}
			if err == nil {
				return fmt.Errorf("server closed the stream")
			}
			return fmt.Errorf("stream error: %w", err)
		case ev := <-events:
			if view.apply(ev.name, ev.data) {
				if err := view.refresh(); err != nil {
					view.status = err.Error()
				}
			}
			view.draw(screen)
		case ev := <-keys:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				view.draw(screen)
			}
		}
	}
}

// watchView is the terminal's copy of the session
type watchView struct {
	session   model.Session
	lastEvent string
	status    string
}

func (v *watchView) refresh() error {
	var s model.Session
	if err := client.Get("/api/v1/session", &s); err != nil {
		return err
	}
	v.session = s
	v.status = ""
	return nil
}

// apply folds one stream event into the view. It reports whether the
// session needs to be fetched again.
func (v *watchView) apply(event, data string) bool {
	switch event {
	case "connected", sse.EventBoard, sse.EventWheel:
		return false
	case string(model.EventPickProgress):
		var ev struct {
			Payload model.PickProgressPayload `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &ev); err != nil || v.session.Draft.Spin == nil {
			return true
		}
		spin := *v.session.Draft.Spin
		spin.Position = ev.Payload.Position
		spin.Highlight = ev.Payload.Highlight
		spin.PickedSoFar = ev.Payload.PickedSoFar
		v.session.Draft.Spin = &spin
		return false
	}
	v.lastEvent = event
	return true
}

func (v *watchView) draw(screen tcell.Screen) {
	screen.Clear()
	c := &canvas{screen: screen}
	s := v.session

	c.line(fmt.Sprintf("Team draft  %d/%d players  best of %d", len(s.Roster), model.MaxRosterSize, s.Settings.MapCount), styleTitle)
	c.line("", tcell.StyleDefault)

	draft := s.Draft
	c.line("Draft: "+string(draft.Status), tcell.StyleDefault)
	if spin := draft.Spin; spin != nil {
		state := "spinning"
		if spin.Paused {
			state = "paused"
		}
		c.line(fmt.Sprintf("Wheel %s  %6.1f°  pick %d", state, spin.Position, spin.PickedSoFar+1), styleDim)
		for _, name := range spin.Pool {
			if name == spin.Highlight {
				c.line(" > "+name, styleHighlight)
			} else {
				c.line("   "+name, tcell.StyleDefault)
			}
		}
	} else if !draft.InProgress() && draft.Teams.Empty() {
		c.line("Roster: "+strings.Join(s.Roster, ", "), styleDim)
	}

	if !draft.Teams.Empty() {
		c.line("", tcell.StyleDefault)
		for _, team := range []model.TeamNumber{model.Team1, model.Team2} {
			style := styleTeam1
			if team == model.Team2 {
				style = styleTeam2
			}
			header := team.String()
			if side := s.Toss.SideOf(team); side != "" {
				header += " (" + string(side) + ")"
			}
			c.line(header+": "+strings.Join(draft.Teams.Members(team), ", "), style)
		}
	}

	if s.Toss.Phase != "" && s.Toss.Phase != model.TossPhaseIdle {
		c.line("", tcell.StyleDefault)
		c.line("Toss: "+tossSummary(s.Toss), tcell.StyleDefault)
	}

	c.line("", tcell.StyleDefault)
	footer := "q to quit"
	if v.lastEvent != "" {
		footer = "last: " + v.lastEvent + "  " + footer
	}
	if v.status != "" {
		footer = v.status + "  " + footer
	}
	c.line(footer, styleDim)

	screen.Show()
}

func tossSummary(t model.TossState) string {
	switch t.Phase {
	case model.TossPhaseChoose:
		return "waiting for Team 1 to call"
	case model.TossPhaseFlipping:
		return "flipping, Team 1 called " + string(t.Call)
	case model.TossPhaseResult:
		return fmt.Sprintf("%s, %s picks a side", t.Outcome, t.Winner)
	case model.TossPhaseComplete:
		return fmt.Sprintf("%s attacks, %s defends", t.AttackingTeam, t.AttackingTeam.Opponent())
	}
	return string(t.Phase)
}

// canvas writes successive lines of text to a screen
type canvas struct {
	screen tcell.Screen
	y      int
}

func (c *canvas) line(text string, style tcell.Style) {
	width, height := c.screen.Size()
	if c.y >= height {
		return
	}
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		c.screen.SetContent(x, c.y, r, nil, style)
		x++
	}
	c.y++
}
