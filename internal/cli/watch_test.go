package cli

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/teamdraft/internal/model"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func screenText(screen tcell.SimulationScreen) string {
	cells, width, height := screen.GetContents()
	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			runes := cells[y*width+x].Runes
			if len(runes) > 0 {
				b.WriteRune(runes[0])
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func spinningView() *watchView {
	return &watchView{session: model.Session{
		Roster:   []string{"Jett", "Sage", "Omen"},
		Settings: model.Settings{MapCount: 3},
		Draft: model.DraftState{
			Status: model.DraftStatusSpinning,
			Mode:   model.DrawModeSequential,
			Spin: &model.SpinView{
				Pool:         []string{"Jett", "Sage", "Omen"},
				SegmentWidth: 120,
			},
		},
	}}
}

func TestWatchView_ApplyProgressUpdatesWheelInPlace(t *testing.T) {
	v := spinningView()

	refetch := v.apply("pick_progress", `{"type":"pick_progress","payload":{"position":250,"highlight":"Sage","picked_so_far":0}}`)

	assert.False(t, refetch)
	assert.Equal(t, 250.0, v.session.Draft.Spin.Position)
	assert.Equal(t, "Sage", v.session.Draft.Spin.Highlight)
	assert.Empty(t, v.lastEvent)
}

func TestWatchView_ApplyOtherEventsRequestRefresh(t *testing.T) {
	v := spinningView()

	assert.False(t, v.apply("board", "<div></div>"))
	assert.False(t, v.apply("connected", `{}`))
	assert.True(t, v.apply("pick_resolved", `{}`))
	assert.Equal(t, "pick_resolved", v.lastEvent)

	// Progress without a wheel to update falls back to a refresh
	v.session.Draft.Spin = nil
	assert.True(t, v.apply("pick_progress", `{"payload":{}}`))
}

func TestWatchView_DrawsWheelWithHighlight(t *testing.T) {
	screen := newSimScreen(t)
	v := spinningView()
	v.session.Draft.Spin.Highlight = "Omen"

	v.draw(screen)

	text := screenText(screen)
	assert.Contains(t, text, "3/10 players")
	assert.Contains(t, text, "Draft: spinning")
	assert.Contains(t, text, " > Omen")
	assert.Contains(t, text, "   Jett")

	row := -1
	for i, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, " > Omen") {
			row = i
		}
	}
	require.NotEqual(t, -1, row)
	_, _, style, _ := screen.GetContent(1, row)
	assert.Equal(t, styleHighlight, style)
}

func TestWatchView_DrawsTeamsAndSides(t *testing.T) {
	screen := newSimScreen(t)
	v := &watchView{session: model.Session{
		Roster: []string{"A", "B", "C"},
		Draft: model.DraftState{
			Status: model.DraftStatusComplete,
			Teams:  model.Teams{Team1: []string{"A", "C"}, Team2: []string{"B"}},
		},
		Toss: model.TossState{
			Phase:         model.TossPhaseComplete,
			AttackingTeam: model.Team2,
		},
	}}

	v.draw(screen)

	text := screenText(screen)
	assert.Contains(t, text, "Team 1 (defense): A, C")
	assert.Contains(t, text, "Team 2 (attack): B")
	assert.Contains(t, text, "Toss: Team 2 attacks, Team 1 defends")
}

func TestCanvas_ClipsToScreen(t *testing.T) {
	screen := newSimScreen(t)
	screen.SetSize(5, 1)

	c := &canvas{screen: screen}
	c.line("abcdefgh", tcell.StyleDefault)
	c.line("second", tcell.StyleDefault)
	screen.Show()

	assert.Equal(t, "abcde\n", screenText(screen))
}
