package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/session"
	"github.com/mcoot/teamdraft/internal/web/middleware"
	"github.com/mcoot/teamdraft/internal/web/sse"
	"github.com/mcoot/teamdraft/internal/web/view"
)

// BoardHandler serves the board page and its form actions
type BoardHandler struct {
	controller  *session.Controller
	events      *sse.Hub
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(controller *session.Controller, events *sse.Hub, broadcaster *sse.Broadcaster, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		controller:  controller,
		events:      events,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "web-board")),
	}
}

// Home renders the full page
func (h *BoardHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Page(h.controller.Snapshot(), middleware.GetFlash(r.Context())).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Fragment renders the board content for hx-get refreshes
func (h *BoardHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	h.renderBoard(w, r)
}

// Events streams session events over SSE, starting with the current board
func (h *BoardHandler) Events(w http.ResponseWriter, r *http.Request) {
	initial := h.broadcaster.InitialBoard(r.Context(), h.controller.Snapshot())
	sse.ServeSSE(w, r, h.events, initial)
}

// AddPlayers handles the add form; the textarea may hold one name per line
func (h *BoardHandler) AddPlayers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	text := r.FormValue("names")
	if text == "" {
		text = r.FormValue("name")
	}
	if added := h.controller.AddPlayers(r.Context(), text); len(added) == 0 {
		h.respond(w, r, errNothingAdded)
		return
	}
	h.respond(w, r, nil)
}

// RemovePlayer handles the per-player remove button
func (h *BoardHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	h.respond(w, r, h.controller.RemovePlayer(r.Context(), r.FormValue("name")))
}

// ClearRoster empties the roster
func (h *BoardHandler) ClearRoster(w http.ResponseWriter, r *http.Request) {
	h.controller.ClearRoster(r.Context())
	h.respond(w, r, nil)
}

// Draw starts a draw in the submitted mode
func (h *BoardHandler) Draw(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	mode, err := model.ParseDrawMode(r.FormValue("mode"))
	if err != nil {
		h.respond(w, r, err)
		return
	}
	_, err = h.controller.Draw(r.Context(), mode)
	h.respond(w, r, err)
}

// Pause pauses the running draft
func (h *BoardHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.controller.Pause(r.Context()))
}

// Resume resumes a paused draft
func (h *BoardHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.controller.Resume(r.Context()))
}

// Reset clears everything
func (h *BoardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.Reset(r.Context())
	h.respond(w, r, nil)
}

// StartToss begins the side decision
func (h *BoardHandler) StartToss(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	mode, err := model.ParseSideMode(r.FormValue("side_mode"))
	if err != nil {
		h.respond(w, r, err)
		return
	}
	var preferred model.Side
	if v := r.FormValue("preferred_side"); v != "" {
		if preferred, err = model.ParseSide(v); err != nil {
			h.respond(w, r, err)
			return
		}
	}
	_, err = h.controller.StartToss(r.Context(), mode, preferred)
	h.respond(w, r, err)
}

// CallToss submits Team 1's call
func (h *BoardHandler) CallToss(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	face, err := model.ParseCoinFace(r.FormValue("call"))
	if err != nil {
		h.respond(w, r, err)
		return
	}
	_, err = h.controller.CallToss(r.Context(), face)
	h.respond(w, r, err)
}

// ChooseSide submits the winner's side
func (h *BoardHandler) ChooseSide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	side, err := model.ParseSide(r.FormValue("side"))
	if err != nil {
		h.respond(w, r, err)
		return
	}
	_, err = h.controller.ChooseSide(r.Context(), side)
	h.respond(w, r, err)
}

// ResetToss returns the toss to idle
func (h *BoardHandler) ResetToss(w http.ResponseWriter, r *http.Request) {
	h.controller.ResetToss(r.Context())
	h.respond(w, r, nil)
}

// SetMapCount stores the map-count preference
func (h *BoardHandler) SetMapCount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, errInvalidForm)
		return
	}
	count, err := strconv.Atoi(r.FormValue("map_count"))
	if err != nil {
		h.respond(w, r, model.ErrInvalidMapCount)
		return
	}
	h.respond(w, r, h.controller.SetMapCount(r.Context(), model.MapCount(count)))
}

var (
	errInvalidForm  = errors.New("invalid form data")
	errNothingAdded = errors.New("no players added")
)

// respond renders the board for htmx requests, otherwise redirects home with a flash on error
func (h *BoardHandler) respond(w http.ResponseWriter, r *http.Request, err error) {
	if isHTMX(r) {
		if err != nil {
			middleware.TriggerFlash(w, err.Error())
		}
		h.renderBoard(w, r)
		return
	}
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, err.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BoardHandler) renderBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Board(h.controller.Snapshot()).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render board", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
