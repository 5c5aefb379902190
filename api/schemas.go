package api

import (
	"time"

	"github.com/quoteflow/quoteflow/core/schema"
)

// Shared schema shapes. Every route's schema is composed at startup from
// these helpers plus per-resource field rules; schemas are immutable and
// shared across requests.

func idParams() *schema.ObjectSchema {
	return schema.Object(map[string]schema.FieldRule{
		"id": schema.UUID(),
	})
}

func pairParams() *schema.ObjectSchema {
	return schema.Object(map[string]schema.FieldRule{
		"id":      schema.UUID(),
		"childID": schema.UUID(),
	})
}

func forceQuery() *schema.ObjectSchema {
	return schema.Object(map[string]schema.FieldRule{
		"force": schema.Bool(schema.Optional()),
	})
}

// listRequest declares a listing endpoint: pagination, sort and attribute
// projection plus the resource's own filterable fields.
func listRequest(filters map[string]schema.FieldRule, sortable, attrs []string) schema.Request {
	fields := map[string]schema.FieldRule{
		"limit":      schema.Limit(),
		"offset":     schema.Offset(),
		"sort":       schema.SortBy(sortable, schema.Optional()),
		"attributes": schema.Attributes(attrs, schema.Optional()),
	}
	for name, rule := range filters {
		fields[name] = rule
	}
	return schema.Request{Query: schema.Object(fields)}
}

func getRequest() schema.Request {
	return schema.Request{Params: idParams()}
}

func deleteRequest() schema.Request {
	return schema.Request{Params: idParams(), Query: forceQuery()}
}

// Sanitized-value accessors. The schema gate guarantees types, so the
// assertions here cannot fail on validated input.

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strOr(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return fallback
}

func intVal(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func int64Val(m map[string]any, key string) int64 {
	f, _ := m[key].(float64)
	return int64(f)
}

func boolVal(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func strSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

// intPtr and int64Ptr lift optional numeric body fields into patch fields.
func intPtr(m map[string]any, key string) *int {
	if f, ok := m[key].(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}

func int64Ptr(m map[string]any, key string) *int64 {
	if f, ok := m[key].(float64); ok {
		n := int64(f)
		return &n
	}
	return nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stampPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return stamp(*t)
}
