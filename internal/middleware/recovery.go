package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Panic describes a recovered handler panic
type Panic struct {
	Value     any
	RequestID string
}

// PanicHandler writes the error response for a recovered panic.
// It is only called while the response is still unwritten.
type PanicHandler func(w http.ResponseWriter, r *http.Request, p Panic)

// Recovery turns handler panics into an error response from handler.
// A panic after the response has started (an SSE stream, a hijacked socket)
// is logged and the connection is left to close.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	if handler == nil {
		handler = DefaultPanicHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracked := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				p := Panic{Value: v, RequestID: w.Header().Get(RequestIDHeader)}
				logger.Error("panic recovered",
					slog.String("error", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", p.RequestID),
					slog.Bool("response_started", tracked.Started()),
				)

				if tracked.Started() {
					return
				}
				handler(w, r, p)
			}()

			next.ServeHTTP(tracked, r)
		})
	}
}

// DefaultPanicHandler returns a plain 500
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ Panic) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
