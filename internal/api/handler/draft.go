package handler

import (
	"net/http"

	"github.com/mcoot/teamdraft/internal/api/request"
	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/session"
)

// DraftHandler handles draw, pause, resume and reset
type DraftHandler struct {
	controller *session.Controller
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(controller *session.Controller) *DraftHandler {
	return &DraftHandler{controller: controller}
}

// Draw handles POST /api/v1/draw. Mode defaults to instant.
func (h *DraftHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req request.DrawRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Mode == "" {
		req.Mode = string(model.DrawModeInstant)
	}

	mode, err := model.ParseDrawMode(req.Mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.controller.Draw(r.Context(), mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if state.InProgress() {
		status = http.StatusAccepted
	}
	response.JSON(w, status, state)
}

// Pause handles POST /api/v1/draft/pause
func (h *DraftHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Pause(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.controller.Snapshot().Draft)
}

// Resume handles POST /api/v1/draft/resume
func (h *DraftHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Resume(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.controller.Snapshot().Draft)
}

// Get handles GET /api/v1/draft
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.controller.Snapshot().Draft)
}

// Reset handles POST /api/v1/reset: roster, draft and toss are all cleared
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.Reset(r.Context())
	response.JSON(w, http.StatusOK, h.controller.Snapshot())
}
