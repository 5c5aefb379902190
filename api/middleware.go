package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

type claimsKey struct{}

// ClaimsFrom returns the verified token claims, or nil outside an
// authenticated route.
func ClaimsFrom(ctx context.Context) *ports.TokenClaims {
	claims, _ := ctx.Value(claimsKey{}).(*ports.TokenClaims)
	return claims
}

// RequestLogger logs one line per request with zerolog.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Instrument records request metrics keyed by the chi route pattern, so
// /quotes/{id} stays one series no matter how many quotes exist.
func Instrument(m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			status := strconv.Itoa(ww.Status())
			m.RequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
			m.RequestDuration.WithLabelValues(r.Method, pattern, status).
				Observe(time.Since(start).Seconds())
		})
	}
}

// Authenticate verifies the bearer token and stores its claims in the
// request context. Requests without a valid token never reach a handler.
func Authenticate(tokens ports.TokenService, rp responder, m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				m.AuthFailures.WithLabelValues("missing_token").Inc()
				rp.err(w, r, apperr.Unauthorized("missing bearer token"))
				return
			}
			claims, err := tokens.Verify(token)
			if err != nil {
				m.AuthFailures.WithLabelValues("bad_token").Inc()
				rp.err(w, r, apperr.Unauthorized("invalid token"))
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRights gates a route behind exactly one permission string.
func RequireRights(permission string, rp responder, m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r.Context())
			if claims == nil || !hasPermission(claims.Permissions, permission) {
				m.AuthFailures.WithLabelValues("denied").Inc()
				rp.err(w, r, apperr.Forbidden("missing permission: "+permission))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasPermission(granted []string, want string) bool {
	for _, p := range granted {
		if p == want || p == "*" {
			return true
		}
	}
	return false
}
