// Package api is the HTTP layer: chi router, validation and auth
// middleware, per-resource handlers and the JSON envelope.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

// envelope is the uniform response shape.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Message string             `json:"message"`
	Details []apperr.Violation `json:"details,omitempty"`
}

// responder writes envelopes and owns the error→status mapping. Upstream
// errors are logged in full and redacted from the response body.
type responder struct {
	logger  zerolog.Logger
	metrics *metrics.Collector
}

func (rp responder) data(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func (rp responder) err(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.Status(kind)

	body := errorBody{Message: err.Error()}
	var e *apperr.Error
	if errors.As(err, &e) {
		body.Message = e.Message
		body.Details = e.Violations
	}
	if kind == apperr.KindUpstream {
		rp.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).
			Msg("request failed upstream")
		rp.metrics.StoreErrors.WithLabelValues(r.URL.Path).Inc()
		body.Message = "internal error"
		body.Details = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: &body})
}
