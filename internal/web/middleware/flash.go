package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/mcoot/teamdraft/internal/web/view"
)

// Flash levels rendered as flash-<level>
const (
	FlashError = "error"
	FlashInfo  = "info"
)

const flashCookie = "teamdraft_flash"

type flashKey struct{}

// GetFlash returns the message carried over from the previous redirect, if any
func GetFlash(ctx context.Context) *view.Flash {
	f, _ := ctx.Value(flashKey{}).(*view.Flash)
	return f
}

// SetFlash stores a message for the page the client is redirected to
func SetFlash(w http.ResponseWriter, level, message string) {
	raw, _ := json.Marshal(view.Flash{Type: level, Message: message})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TriggerFlash asks htmx to raise a "flash" event carrying message.
// The page script shows it without a reload.
func TriggerFlash(w http.ResponseWriter, message string) {
	raw, _ := json.Marshal(map[string]string{"flash": message})
	w.Header().Set("HX-Trigger", string(raw))
}

// Flash moves a pending flash cookie into the request context and expires it
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(flashCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     flashCookie,
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			if f := decodeFlash(c.Value); f != nil {
				r = r.WithContext(context.WithValue(r.Context(), flashKey{}, f))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// decodeFlash returns nil for a tampered or stale-format cookie
func decodeFlash(value string) *view.Flash {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	if f.Type == "" {
		f.Type = FlashInfo
	}
	return &f
}
