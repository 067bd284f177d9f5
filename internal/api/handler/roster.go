package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamdraft/internal/api/request"
	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/services/session"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	controller *session.Controller
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(controller *session.Controller) *RosterHandler {
	return &RosterHandler{controller: controller}
}

// List handles GET /api/v1/roster
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RosterFromNames(h.controller.Roster()))
}

// Add handles POST /api/v1/roster. Duplicate, empty or over-capacity names are not an error.
func (h *RosterHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	added := h.controller.AddPlayer(r.Context(), req.Name)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.AddPlayer{
		Added:  added,
		Roster: response.RosterFromNames(h.controller.Roster()),
	})
}

// Bulk handles POST /api/v1/roster/bulk
func (h *RosterHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req request.BulkAddRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	added := h.controller.AddPlayers(r.Context(), req.Text)
	if added == nil {
		added = []string{}
	}
	response.JSON(w, http.StatusOK, response.BulkAdd{
		Added:  added,
		Roster: response.RosterFromNames(h.controller.Roster()),
	})
}

// Remove handles DELETE /api/v1/roster/{name}. The name is path-escaped by the client.
func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid player name"))
		return
	}
	if err := h.controller.RemovePlayer(r.Context(), name); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromNames(h.controller.Roster()))
}

// Clear handles DELETE /api/v1/roster
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.controller.ClearRoster(r.Context())
	response.NoContent(w)
}
