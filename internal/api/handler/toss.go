package handler

import (
	"net/http"

	"github.com/mcoot/teamdraft/internal/api/request"
	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/session"
)

// TossHandler handles the side-decision endpoints
type TossHandler struct {
	controller *session.Controller
}

// NewTossHandler creates a new toss handler
func NewTossHandler(controller *session.Controller) *TossHandler {
	return &TossHandler{controller: controller}
}

// Get handles GET /api/v1/toss
func (h *TossHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.controller.Snapshot().Toss)
}

// Start handles POST /api/v1/toss
func (h *TossHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartTossRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	mode, err := model.ParseSideMode(req.SideMode)
	if err != nil {
		WriteError(w, err)
		return
	}
	var preferred model.Side
	if req.PreferredSide != "" {
		if preferred, err = model.ParseSide(req.PreferredSide); err != nil {
			WriteError(w, err)
			return
		}
	}

	state, err := h.controller.StartToss(r.Context(), mode, preferred)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, state)
}

// Call handles POST /api/v1/toss/call
func (h *TossHandler) Call(w http.ResponseWriter, r *http.Request) {
	var req request.CallRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	face, err := model.ParseCoinFace(req.Call)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.controller.CallToss(r.Context(), face)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, state)
}

// ChooseSide handles POST /api/v1/toss/side
func (h *TossHandler) ChooseSide(w http.ResponseWriter, r *http.Request) {
	var req request.ChooseSideRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	side, err := model.ParseSide(req.Side)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.controller.ChooseSide(r.Context(), side)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, state)
}

// Reset handles DELETE /api/v1/toss
func (h *TossHandler) Reset(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.controller.ResetToss(r.Context()))
}
