package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/teamdraft/internal/middleware"
	"github.com/mcoot/teamdraft/internal/web/view"
)

const panicMessage = "Something went wrong. The draft state is unchanged."

// Recovery creates panic recovery middleware for the web interface.
// htmx requests get a flash trigger and keep the current board; others get an error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "web")), webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, p middleware.Panic) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Reswap", "none")
		TriggerFlash(w, panicMessage)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = view.ErrorPage("Internal Server Error", panicMessage, p.RequestID).Render(r.Context(), w)
}
