package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// MessageServiceUnavailable is the body of every 503 the guard sends.
const MessageServiceUnavailable = "Service unavailable"

// pingTimeout bounds the per-request store check.
const pingTimeout = 2 * time.Second

// Pinger reports whether the backing store can serve requests.
// Both store implementations satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireStore answers 503 {"error":"Service unavailable"} when the store
// does not respond to a ping, so no API handler runs against a dead store.
func RequireStore(store Pinger, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			err := store.Ping(ctx)
			cancel()

			if err != nil {
				logger.Error("store unavailable",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": MessageServiceUnavailable})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
