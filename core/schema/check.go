package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Violation names one invalid field and a human-readable reason.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// filter operators accepted by the _FILTER rule kinds.
var rangeOps = []string{"eq", "gt", "gte", "lt", "lte"}
var textOps = []string{"eq", "like"}

// checkField validates a single present value against its rule and returns
// the sanitized (coerced) value. This is a PURE function.
func checkField(name string, r FieldRule, v any) (any, []Violation) {
	if v == nil {
		if r.Nullable {
			return nil, nil
		}
		return nil, bad(name, "must not be null")
	}

	switch r.Kind {
	case KindText, KindCode:
		return checkText(name, r, v)
	case KindUUID:
		return checkUUID(name, v)
	case KindEnum:
		return checkEnum(name, r, v)
	case KindNumber, KindLimit, KindOffset:
		return checkNumber(name, r, v)
	case KindBool:
		return checkBool(name, v)
	case KindDate:
		return checkDate(name, v)
	case KindDateFilter:
		return checkDateFilter(name, v)
	case KindNumberFilter:
		return checkNumberFilter(name, r, v)
	case KindTextFilter:
		return checkTextFilter(name, r, v)
	case KindUUIDArray:
		return checkUUIDArray(name, r, v)
	case KindTextArray:
		return checkTextArray(name, r, v)
	case KindAllowList:
		return checkAllowList(name, r, v)
	case KindSort:
		return checkSort(name, r, v)
	case KindExtra:
		return checkExtra(name, r, v)
	default:
		return nil, bad(name, fmt.Sprintf("unsupported kind %q", r.Kind))
	}
}

func bad(field, reason string) []Violation {
	return []Violation{{Field: field, Reason: reason}}
}

func checkText(name string, r FieldRule, v any) (any, []Violation) {
	s, ok := v.(string)
	if !ok {
		return nil, bad(name, "must be a string")
	}
	if r.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if len(s) < r.MinLen {
		return nil, bad(name, fmt.Sprintf("must be at least %d characters", r.MinLen))
	}
	if r.MaxLen > 0 && len(s) > r.MaxLen {
		return nil, bad(name, fmt.Sprintf("must be at most %d characters", r.MaxLen))
	}
	return s, nil
}

func checkUUID(name string, v any) (any, []Violation) {
	s, ok := v.(string)
	if !ok {
		return nil, bad(name, "must be a UUID string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, bad(name, "must be a valid UUID")
	}
	return id.String(), nil
}

func checkEnum(name string, r FieldRule, v any) (any, []Violation) {
	s, ok := v.(string)
	if !ok {
		return nil, bad(name, "must be a string")
	}
	for _, allowed := range r.Values {
		if s == allowed {
			return s, nil
		}
	}
	return nil, bad(name, "must be one of: "+strings.Join(r.Values, ", "))
}

func checkNumber(name string, r FieldRule, v any) (any, []Violation) {
	n, err := toFloat(v)
	if err != nil {
		return nil, bad(name, "must be a number")
	}
	if r.HasMin && n < r.Min {
		return nil, bad(name, fmt.Sprintf("must be at least %v", r.Min))
	}
	if r.HasMax && n > r.Max {
		return nil, bad(name, fmt.Sprintf("must be at most %v", r.Max))
	}
	if r.IntOnly && n != math.Trunc(n) {
		return nil, bad(name, "must be an integer")
	}
	return n, nil
}

func checkBool(name string, v any) (any, []Violation) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if b == "true" {
			return true, nil
		}
		if b == "false" {
			return false, nil
		}
	}
	return nil, bad(name, "must be a boolean")
}

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func checkDate(name string, v any) (any, []Violation) {
	s, ok := v.(string)
	if !ok {
		return nil, bad(name, "must be an ISO-8601 date string")
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s, nil
		}
	}
	return nil, bad(name, "must be a valid ISO-8601 date")
}

func checkDateFilter(name string, v any) (any, []Violation) {
	if _, isMap := v.(map[string]any); !isMap {
		return checkDate(name, v)
	}
	return checkFilterMap(name, v.(map[string]any), rangeOps, func(op string, val any) (any, []Violation) {
		return checkDate(name+"."+op, val)
	})
}

func checkNumberFilter(name string, r FieldRule, v any) (any, []Violation) {
	if _, isMap := v.(map[string]any); !isMap {
		return checkNumber(name, r, v)
	}
	return checkFilterMap(name, v.(map[string]any), rangeOps, func(op string, val any) (any, []Violation) {
		return checkNumber(name+"."+op, r, val)
	})
}

func checkTextFilter(name string, r FieldRule, v any) (any, []Violation) {
	if _, isMap := v.(map[string]any); !isMap {
		return checkText(name, r, v)
	}
	return checkFilterMap(name, v.(map[string]any), textOps, func(op string, val any) (any, []Violation) {
		return checkText(name+"."+op, r, val)
	})
}

// checkFilterMap validates a structured filter object: every key must be a
// known operator and every operand must satisfy the element check.
func checkFilterMap(name string, m map[string]any, ops []string, elem func(op string, v any) (any, []Violation)) (any, []Violation) {
	if len(m) == 0 {
		return nil, bad(name, "filter object must not be empty")
	}
	out := make(map[string]any, len(m))
	var violations []Violation
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, op := range keys {
		if !contains(ops, op) {
			violations = append(violations, Violation{
				Field:  name,
				Reason: fmt.Sprintf("unknown filter operator %q, allowed: %s", op, strings.Join(ops, ", ")),
			})
			continue
		}
		val, vs := elem(op, m[op])
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		out[op] = val
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

func checkUUIDArray(name string, r FieldRule, v any) (any, []Violation) {
	items, ok := toSlice(v)
	if !ok {
		return nil, bad(name, "must be an array of UUIDs")
	}
	if len(items) < r.MinLen {
		return nil, bad(name, "must not be empty")
	}
	if r.MaxLen > 0 && len(items) > r.MaxLen {
		return nil, bad(name, fmt.Sprintf("must contain at most %d items", r.MaxLen))
	}
	out := make([]string, 0, len(items))
	var violations []Violation
	for i, item := range items {
		id, vs := checkUUID(fmt.Sprintf("%s[%d]", name, i), item)
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		out = append(out, id.(string))
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

func checkTextArray(name string, r FieldRule, v any) (any, []Violation) {
	items, ok := toSlice(v)
	if !ok {
		return nil, bad(name, "must be an array of strings")
	}
	if len(items) < r.MinLen {
		return nil, bad(name, fmt.Sprintf("must contain at least %d items", r.MinLen))
	}
	if r.MaxLen > 0 && len(items) > r.MaxLen {
		return nil, bad(name, fmt.Sprintf("must contain at most %d items", r.MaxLen))
	}
	out := make([]string, 0, len(items))
	var violations []Violation
	for i, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			violations = append(violations, Violation{
				Field:  fmt.Sprintf("%s[%d]", name, i),
				Reason: "must be a non-empty string",
			})
			continue
		}
		out = append(out, s)
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

// checkAllowList accepts a comma-separated string or an array of strings and
// rejects any entry outside the rule's allow-list.
func checkAllowList(name string, r FieldRule, v any) (any, []Violation) {
	var entries []string
	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				entries = append(entries, part)
			}
		}
	default:
		items, ok := toSlice(v)
		if !ok {
			return nil, bad(name, "must be a list of names")
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, bad(name, "must be a list of names")
			}
			entries = append(entries, s)
		}
	}
	if len(entries) == 0 {
		return nil, bad(name, "must not be empty")
	}
	var violations []Violation
	for _, e := range entries {
		if !contains(r.Values, e) {
			violations = append(violations, Violation{
				Field:  name,
				Reason: fmt.Sprintf("%q is not an allowed value", e),
			})
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return entries, nil
}

// checkSort validates sort directives of the form "field" or "-field".
func checkSort(name string, r FieldRule, v any) (any, []Violation) {
	s, ok := v.(string)
	if !ok {
		return nil, bad(name, "must be a string")
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field := strings.TrimPrefix(part, "-")
		if !contains(r.Values, field) {
			return nil, bad(name, fmt.Sprintf("%q is not sortable", field))
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil, bad(name, "must name at least one field")
	}
	return out, nil
}

func checkExtra(name string, r FieldRule, v any) (any, []Violation) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, bad(name, "must be an object")
	}
	if r.MaxLen > 0 && len(m) > r.MaxLen {
		return nil, bad(name, fmt.Sprintf("must contain at most %d keys", r.MaxLen))
	}
	return m, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
