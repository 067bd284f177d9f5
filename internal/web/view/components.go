package view

import (
	"math"

	"github.com/a-h/templ"

	"github.com/mcoot/teamdraft/internal/model"
)

// Element IDs targeted by htmx swaps
const (
	BoardID = "board"
	WheelID = "wheel"
)

// Flash is a one-shot message shown above the board
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Page renders the full document with the board inside it
func Page(s model.Session, flash *Flash) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Team Draft</title>
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<main hx-ext="sse" sse-connect="/events">
<div sse-swap="board,wheel" hx-swap="none"></div>
`)
		if flash != nil {
			h.printf(`<div class="flash flash-%s">`, templ.EscapeString(flash.Type))
			h.text(flash.Message)
			h.raw("</div>\n")
		}
		h.printf(`<div id="%s">`, BoardID)
		h.component(Board(s))
		h.raw("</div>\n</main>\n</body>\n</html>\n")
	})
}

// Board renders the inner content of the board container
func Board(s model.Session) templ.Component {
	return render(func(h *htmlWriter) {
		locked := s.Draft.InProgress()

		h.component(Roster(s.Roster, locked))
		h.component(Controls(s))

		h.printf(`<div id="%s">`, WheelID)
		h.component(Wheel(s.Draft.Spin))
		h.raw(`</div>`)

		h.component(Teams(s.Draft.Teams, s.Toss))
		if s.Draft.Status == model.DraftStatusComplete && !s.Draft.Teams.Empty() {
			h.component(Toss(s.Toss))
		}
		h.component(Settings(s.Settings))
	})
}

// Roster renders the player list and the add form
func Roster(names []string, locked bool) templ.Component {
	return render(func(h *htmlWriter) {
		h.printf(`<section class="roster" data-count="%d">`, len(names))
		h.printf(`<h2>Players (%d/%d)</h2>`, len(names), model.MaxRosterSize)
		h.raw(`<ul class="players">`)
		for _, name := range names {
			h.raw(`<li class="player">`)
			h.text(name)
			if !locked {
				h.raw(`<form hx-post="/roster/remove" hx-target="#board"><input type="hidden" name="name" value="`)
				h.text(name)
				h.raw(`"><button type="submit" class="remove">&times;</button></form>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		if !locked && len(names) < model.MaxRosterSize {
			h.raw(`<form class="add-player" hx-post="/roster" hx-target="#board">` +
				`<textarea name="names" placeholder="One player per line"></textarea>` +
				`<button type="submit">Add</button></form>`)
		}
		if !locked && len(names) > 0 {
			h.raw(`<form class="clear-roster" hx-post="/roster/clear" hx-target="#board"><button type="submit">Clear</button></form>`)
		}
		h.raw(`</section>`)
	})
}

// Controls renders draw, pause and reset buttons for the current draft status
func Controls(s model.Session) templ.Component {
	return render(func(h *htmlWriter) {
		h.printf(`<section class="controls" data-status="%s">`, s.Draft.Status)
		if s.CanDraw() {
			h.raw(`<form hx-post="/draw" hx-target="#board">` +
				`<button type="submit" name="mode" value="instant" class="draw-instant">Instant draw</button>` +
				`<button type="submit" name="mode" value="sequential" class="draw-sequential">Spin the wheel</button>` +
				`</form>`)
		}
		if s.Draft.InProgress() {
			if s.Draft.Spin != nil && s.Draft.Spin.Paused {
				h.raw(`<form hx-post="/resume" hx-target="#board"><button type="submit" class="resume">Resume</button></form>`)
			} else {
				h.raw(`<form hx-post="/pause" hx-target="#board"><button type="submit" class="pause">Pause</button></form>`)
			}
		}
		h.raw(`<form hx-post="/reset" hx-target="#board"><button type="submit" class="reset">Reset all</button></form>`)
		h.raw(`</section>`)
	})
}

// Wheel renders the spinning wheel segments. A nil spin renders an empty wheel.
func Wheel(spin *model.SpinView) templ.Component {
	return render(func(h *htmlWriter) {
		if spin == nil || len(spin.Pool) == 0 {
			h.raw(`<div class="wheel empty"></div>`)
			return
		}
		rotation := math.Mod(spin.Position, 360)
		h.printf(`<div class="wheel" data-position="%.2f" data-picked="%d" style="transform: rotate(-%.2fdeg)"`,
			spin.Position, spin.PickedSoFar, rotation)
		if spin.Paused {
			h.raw(` data-paused="true"`)
		}
		h.raw(`>`)
		for i, name := range spin.Pool {
			class := "segment"
			if name == spin.Highlight {
				class += " highlight"
			}
			if name == spin.CurrentPicked {
				class += " picked"
			}
			h.printf(`<div class="%s" style="--angle: %.2fdeg">`, class, float64(i)*spin.SegmentWidth)
			h.text(name)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

// Teams renders both team columns, labelled with their sides once decided
func Teams(teams model.Teams, toss model.TossState) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="teams">`)
		for _, team := range []model.TeamNumber{model.Team1, model.Team2} {
			h.printf(`<div class="team" data-team="%d">`, int(team))
			h.raw(`<h3>`)
			h.text(team.String())
			if side := toss.SideOf(team); side != "" {
				h.printf(` <span class="side side-%s">`, side)
				h.text(sideLabel(side))
				h.raw(`</span>`)
			}
			h.raw(`</h3><ul>`)
			for _, name := range teams.Members(team) {
				h.raw(`<li>`)
				h.text(name)
				h.raw(`</li>`)
			}
			h.raw(`</ul></div>`)
		}
		h.raw(`</section>`)
	})
}

// Toss renders the side-decision panel for the current phase
func Toss(t model.TossState) templ.Component {
	return render(func(h *htmlWriter) {
		h.printf(`<section class="toss" data-phase="%s">`, t.Phase)
		switch t.Phase {
		case model.TossPhaseIdle:
			h.raw(`<form hx-post="/toss" hx-target="#board">` +
				`<button type="submit" name="side_mode" value="coin">Coin toss</button>` +
				`<button type="submit" name="side_mode" value="auto">Auto</button>` +
				`</form>`)
		case model.TossPhaseChoose:
			h.raw(`<p>Team 1, call it</p><form hx-post="/toss/call" hx-target="#board">` +
				`<button type="submit" name="call" value="heads">Heads</button>` +
				`<button type="submit" name="call" value="tails">Tails</button>` +
				`</form>`)
		case model.TossPhaseFlipping:
			h.raw(`<p class="flipping">Flipping`)
			if t.Call != "" {
				h.printf(` (Team 1 called %s)`, t.Call)
			}
			h.raw(`</p>`)
		case model.TossPhaseResult:
			h.printf(`<p class="outcome">%s. `, t.Outcome)
			h.text(t.Winner.String())
			h.raw(` wins the toss</p><form hx-post="/toss/side" hx-target="#board">` +
				`<button type="submit" name="side" value="attack">Attack</button>` +
				`<button type="submit" name="side" value="defense">Defense</button>` +
				`</form>`)
		case model.TossPhaseComplete:
			h.raw(`<p class="sides">`)
			h.text(t.AttackingTeam.String())
			h.raw(` attacks first</p>`)
		}
		if t.Phase != model.TossPhaseIdle {
			h.raw(`<form hx-post="/toss/reset" hx-target="#board"><button type="submit">Reset toss</button></form>`)
		}
		h.raw(`</section>`)
	})
}

// Settings renders the map-count selector
func Settings(s model.Settings) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="settings"><form hx-post="/settings/map-count" hx-target="#board" hx-trigger="change">` +
			`<label>Maps <select name="map_count">`)
		for _, count := range []model.MapCount{1, 3, 5} {
			selected := ""
			if count == s.MapCount {
				selected = " selected"
			}
			h.printf(`<option value="%d"%s>Best of %d</option>`, count, selected, count)
		}
		h.raw(`</select></label></form></section>`)
	})
}

func sideLabel(s model.Side) string {
	if s == model.SideAttack {
		return "Attack"
	}
	return "Defense"
}

// ErrorPage renders a standalone error document
func ErrorPage(title, message, requestID string) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		h.text(title)
		h.raw("</title>\n<link rel=\"stylesheet\" href=\"/static/app.css\">\n</head>\n<body>\n<main class=\"error\">\n<h1>")
		h.text(title)
		h.raw("</h1>\n<p>")
		h.text(message)
		h.raw("</p>\n")
		if requestID != "" {
			h.raw(`<p class="request-id">Request `)
			h.text(requestID)
			h.raw("</p>\n")
		}
		h.raw("<p><a href=\"/\">Back to the draft</a></p>\n</main>\n</body>\n</html>\n")
	})
}
