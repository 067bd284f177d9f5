package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamdraft/internal/api/request"
	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/session"
	"github.com/mcoot/teamdraft/internal/services/sound"
)

// SessionHandler handles whole-session reads, settings, export and sound assets
type SessionHandler struct {
	controller *session.Controller
	sound      *sound.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller, sound *sound.Service) *SessionHandler {
	return &SessionHandler{controller: controller, sound: sound}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.controller.Snapshot())
}

// GetMapCount handles GET /api/v1/settings/map-count
func (h *SessionHandler) GetMapCount(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SettingsFromModel(h.controller.Settings()))
}

// SetMapCount handles PUT /api/v1/settings/map-count
func (h *SessionHandler) SetMapCount(w http.ResponseWriter, r *http.Request) {
	var req request.MapCountRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.controller.SetMapCount(r.Context(), model.MapCount(req.MapCount)); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SettingsFromModel(h.controller.Settings()))
}

// Export handles GET /api/v1/export
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.controller.ExportText()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Text(w, http.StatusOK, text)
}

// Sound handles GET /api/v1/sounds/{cue}
func (h *SessionHandler) Sound(w http.ResponseWriter, r *http.Request) {
	cue, err := sound.ParseCue(mux.Vars(r)["cue"])
	if err != nil {
		WriteError(w, err)
		return
	}

	data, err := h.sound.WAV(cue)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Bytes(w, "audio/wav", data)
}
