package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/rogerio-castellano/record-services/internal/http/ban"
	rl "github.com/rogerio-castellano/record-services/internal/http/rate_limiter"
)

// RateLimit rejects clients over their token bucket with 429 and, when a
// tracker is given, bans repeat offenders with 403. Tracker failures are
// logged and the request is let through.
func RateLimit(limiter *rl.Limiter, tracker *ban.Tracker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			if tracker != nil {
				banned, err := tracker.IsBanned(r.Context(), key)
				if err != nil {
					logger.Warn("ban lookup failed", slog.String("client", key), slog.String("error", err.Error()))
				} else if banned {
					WriteError(w, r, logger, http.StatusForbidden, "client temporarily banned")
					return
				}
			}

			if !limiter.Allow(key) {
				if tracker != nil {
					nowBanned, err := tracker.Strike(r.Context(), key)
					if err != nil {
						logger.Warn("strike failed", slog.String("client", key), slog.String("error", err.Error()))
					} else if nowBanned {
						logger.Warn("client banned", slog.String("client", key), slog.String("route", r.URL.Path))
					}
				}
				WriteError(w, r, logger, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WriteError answers with {"error": msg}. Write failures are logged.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logger.WarnContext(r.Context(), "failed to write response", slog.String("error", err.Error()))
	}
}
