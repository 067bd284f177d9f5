package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamdraft/internal/api/handler"
	"github.com/mcoot/teamdraft/internal/api/middleware"
	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/services/session"
	"github.com/mcoot/teamdraft/internal/services/sound"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *session.Controller
	Sound      *sound.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Match on the escaped path so a player named "AC/DC" stays one {name} segment
	r.UseEncodedPath()

	// Create handlers
	rosterHandler := handler.NewRosterHandler(cfg.Controller)
	draftHandler := handler.NewDraftHandler(cfg.Controller)
	tossHandler := handler.NewTossHandler(cfg.Controller)
	sessionHandler := handler.NewSessionHandler(cfg.Controller, cfg.Sound)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Roster routes
	api.HandleFunc("/roster", rosterHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/roster", rosterHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/roster", rosterHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/roster/bulk", rosterHandler.Bulk).Methods(http.MethodPost)
	api.HandleFunc("/roster/{name}", rosterHandler.Remove).Methods(http.MethodDelete)

	// Draft routes
	api.HandleFunc("/draw", draftHandler.Draw).Methods(http.MethodPost)
	api.HandleFunc("/draft", draftHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/draft/pause", draftHandler.Pause).Methods(http.MethodPost)
	api.HandleFunc("/draft/resume", draftHandler.Resume).Methods(http.MethodPost)
	api.HandleFunc("/reset", draftHandler.Reset).Methods(http.MethodPost)

	// Toss routes
	api.HandleFunc("/toss", tossHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/toss", tossHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/toss", tossHandler.Reset).Methods(http.MethodDelete)
	api.HandleFunc("/toss/call", tossHandler.Call).Methods(http.MethodPost)
	api.HandleFunc("/toss/side", tossHandler.ChooseSide).Methods(http.MethodPost)

	// Session, settings and assets
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings/map-count", sessionHandler.GetMapCount).Methods(http.MethodGet)
	api.HandleFunc("/settings/map-count", sessionHandler.SetMapCount).Methods(http.MethodPut)
	api.HandleFunc("/export", sessionHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/sounds/{cue}", sessionHandler.Sound).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
