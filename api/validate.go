package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

const maxBodyBytes = 1 << 20

type partsKey struct{}

// PartsFrom returns the sanitized request parts stored by Validated.
func PartsFrom(ctx context.Context) schema.Parts {
	parts, _ := ctx.Value(partsKey{}).(schema.Parts)
	return parts
}

// Validated is the schema gate: it assembles the three request parts,
// validates them against the route's declared schema and stores the
// sanitized result in the context. Handlers behind this middleware only
// ever see sanitized input.
func Validated(req schema.Request, rp responder, m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			in := schema.Parts{
				Query:  queryMap(r.URL.Query()),
				Params: routeParams(r),
			}
			if req.Body != nil {
				body, err := bodyMap(r)
				if err != nil {
					m.ValidationFailures.WithLabelValues(r.URL.Path).Inc()
					rp.err(w, r, err)
					return
				}
				in.Body = body
			}

			sanitized, err := req.Validate(in)
			if err != nil {
				m.ValidationFailures.WithLabelValues(r.URL.Path).Inc()
				rp.err(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), partsKey{}, sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// queryMap flattens url.Values into the schema input shape, folding the
// bracket syntax price[gte]=100 into operator maps {"gte": "100"}.
func queryMap(values url.Values) map[string]any {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		open := strings.IndexByte(key, '[')
		if open > 0 && strings.HasSuffix(key, "]") {
			name := key[:open]
			op := key[open+1 : len(key)-1]
			m, ok := out[name].(map[string]any)
			if !ok {
				m = make(map[string]any)
				out[name] = m
			}
			m[op] = vals[0]
			continue
		}
		out[key] = vals[0]
	}
	return out
}

func routeParams(r *http.Request) map[string]any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	out := make(map[string]any, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		out[key] = rctx.URLParams.Values[i]
	}
	return out
}

func bodyMap(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Validation([]apperr.Violation{{Field: "body", Reason: "unreadable body"}})
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apperr.Validation([]apperr.Violation{{Field: "body", Reason: "malformed json"}})
	}
	return body, nil
}
