package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamdraft/internal/services/session"
	"github.com/mcoot/teamdraft/internal/web/handler"
	"github.com/mcoot/teamdraft/internal/web/middleware"
	"github.com/mcoot/teamdraft/internal/web/sse"
	"github.com/mcoot/teamdraft/internal/web/ws"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Controller  *session.Controller
	Events      *sse.Hub
	Sockets     *sse.Hub
	Broadcaster *sse.Broadcaster
	StaticDir   string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	boardHandler := handler.NewBoardHandler(cfg.Controller, cfg.Events, cfg.Broadcaster, cfg.Logger)
	socketHandler := ws.NewHandler(cfg.Controller, cfg.Sockets, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Streams
	r.HandleFunc("/events", boardHandler.Events).Methods(http.MethodGet)
	r.Handle("/ws", socketHandler).Methods(http.MethodGet)

	// Pages and form actions
	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", boardHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/fragments/board", boardHandler.Fragment).Methods(http.MethodGet)

	pages.HandleFunc("/roster", boardHandler.AddPlayers).Methods(http.MethodPost)
	pages.HandleFunc("/roster/remove", boardHandler.RemovePlayer).Methods(http.MethodPost)
	pages.HandleFunc("/roster/clear", boardHandler.ClearRoster).Methods(http.MethodPost)

	pages.HandleFunc("/draw", boardHandler.Draw).Methods(http.MethodPost)
	pages.HandleFunc("/pause", boardHandler.Pause).Methods(http.MethodPost)
	pages.HandleFunc("/resume", boardHandler.Resume).Methods(http.MethodPost)
	pages.HandleFunc("/reset", boardHandler.Reset).Methods(http.MethodPost)

	pages.HandleFunc("/toss", boardHandler.StartToss).Methods(http.MethodPost)
	pages.HandleFunc("/toss/call", boardHandler.CallToss).Methods(http.MethodPost)
	pages.HandleFunc("/toss/side", boardHandler.ChooseSide).Methods(http.MethodPost)
	pages.HandleFunc("/toss/reset", boardHandler.ResetToss).Methods(http.MethodPost)

	pages.HandleFunc("/settings/map-count", boardHandler.SetMapCount).Methods(http.MethodPost)

	return r
}
