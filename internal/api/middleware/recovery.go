package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/teamdraft/internal/api/apierr"
	"github.com/mcoot/teamdraft/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// The JSON error body carries the request ID that was logged with the panic.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), func(w http.ResponseWriter, _ *http.Request, p middleware.Panic) {
		apierr.WriteError(w, apierr.WithRequestID(apierr.NewInternalError(), p.RequestID))
	})
}
