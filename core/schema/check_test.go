package schema_test

import (
	"reflect"
	"testing"

	"github.com/quoteflow/quoteflow/core/schema"
)

// single wraps one rule in a schema so primitives can be exercised directly.
func single(rule schema.FieldRule) *schema.ObjectSchema {
	return schema.Object(map[string]schema.FieldRule{"f": rule})
}

func TestUUIDRule(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"valid", "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f", true},
		{"uppercase", "7F9C24E5-2F8A-4B3D-9C6E-1A2B3C4D5E6F", true},
		{"not a uuid", "not-a-uuid", false},
		{"wrong type", 42, false},
		{"empty", "", false},
	}
	s := single(schema.UUID())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violations := s.Validate(map[string]any{"f": tt.value})
			if got := len(violations) == 0; got != tt.ok {
				t.Errorf("value %v: got ok=%v, want %v (%v)", tt.value, got, tt.ok, violations)
			}
		})
	}
}

func TestUUIDRule_NormalizesCase(t *testing.T) {
	s := single(schema.UUID())
	out, violations := s.Validate(map[string]any{"f": "7F9C24E5-2F8A-4B3D-9C6E-1A2B3C4D5E6F"})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if out["f"] != "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f" {
		t.Errorf("uuid should be normalized to lowercase, got %v", out["f"])
	}
}

func TestTextRule_Bounds(t *testing.T) {
	s := single(schema.Text(schema.MinLen(2), schema.MaxLen(5)))

	tests := []struct {
		value string
		ok    bool
	}{
		{"ab", true},
		{"abcde", true},
		{"a", false},
		{"abcdef", false},
	}
	for _, tt := range tests {
		_, violations := s.Validate(map[string]any{"f": tt.value})
		if got := len(violations) == 0; got != tt.ok {
			t.Errorf("%q: got ok=%v, want %v", tt.value, got, tt.ok)
		}
	}
}

func TestDateRule(t *testing.T) {
	s := single(schema.Date())

	tests := []struct {
		value any
		ok    bool
	}{
		{"2026-03-15", true},
		{"2026-03-15T10:30:00Z", true},
		{"15/03/2026", false},
		{"not a date", false},
		{20260315, false},
	}
	for _, tt := range tests {
		_, violations := s.Validate(map[string]any{"f": tt.value})
		if got := len(violations) == 0; got != tt.ok {
			t.Errorf("%v: got ok=%v, want %v (%v)", tt.value, got, tt.ok, violations)
		}
	}
}

func TestDateFilterRule(t *testing.T) {
	s := single(schema.DateFilter())

	// Literal equality still works.
	if _, violations := s.Validate(map[string]any{"f": "2026-03-15"}); len(violations) != 0 {
		t.Errorf("literal date: %v", violations)
	}

	// Range object with valid operators.
	out, violations := s.Validate(map[string]any{"f": map[string]any{
		"gte": "2026-01-01",
		"lte": "2026-12-31",
	}})
	if len(violations) != 0 {
		t.Fatalf("range filter: %v", violations)
	}
	got := out["f"].(map[string]any)
	if got["gte"] != "2026-01-01" || got["lte"] != "2026-12-31" {
		t.Errorf("unexpected sanitized filter: %v", got)
	}

	// Unknown operator fails.
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"between": "x"}}); len(violations) == 0 {
		t.Error("unknown operator should fail")
	}

	// Operand must itself be a valid date.
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"gte": "soon"}}); len(violations) == 0 {
		t.Error("invalid operand should fail")
	}
}

func TestNumberFilterRule(t *testing.T) {
	s := single(schema.PriceFilter())

	if _, violations := s.Validate(map[string]any{"f": "19.99"}); len(violations) != 0 {
		t.Errorf("literal number: %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"gte": "10", "lte": "100"}}); len(violations) != 0 {
		t.Errorf("range filter: %v", violations)
	}
	// PriceFilter is bounded below at zero, including inside operators.
	if _, violations := s.Validate(map[string]any{"f": "-5"}); len(violations) == 0 {
		t.Error("negative price should fail")
	}
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"gte": "-5"}}); len(violations) == 0 {
		t.Error("negative operand should fail")
	}
}

func TestTextFilterRule(t *testing.T) {
	s := single(schema.TextFilter())

	if _, violations := s.Validate(map[string]any{"f": "acme"}); len(violations) != 0 {
		t.Errorf("literal: %v", violations)
	}
	out, violations := s.Validate(map[string]any{"f": map[string]any{"like": "acme%"}})
	if len(violations) != 0 {
		t.Fatalf("like filter: %v", violations)
	}
	if out["f"].(map[string]any)["like"] != "acme%" {
		t.Errorf("unexpected sanitized filter: %v", out["f"])
	}
	// Range operators are not valid for text.
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"gte": "a"}}); len(violations) == 0 {
		t.Error("gte is not a text operator")
	}
}

func TestUUIDArrayRule(t *testing.T) {
	s := single(schema.UUIDArray())
	valid := "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f"

	out, violations := s.Validate(map[string]any{"f": []any{valid}})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if !reflect.DeepEqual(out["f"], []string{valid}) {
		t.Errorf("unexpected sanitized array: %v", out["f"])
	}

	if _, violations := s.Validate(map[string]any{"f": []any{}}); len(violations) == 0 {
		t.Error("empty array should fail")
	}
	// Each element is validated independently; the violation names the index.
	_, violations = s.Validate(map[string]any{"f": []any{valid, "nope"}})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
	if violations[0].Field != "f[1]" {
		t.Errorf("violation should name the element, got %+v", violations[0])
	}
}

func TestSortRule(t *testing.T) {
	s := single(schema.SortBy([]string{"name", "created_at"}))

	out, violations := s.Validate(map[string]any{"f": "-created_at,name"})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if !reflect.DeepEqual(out["f"], []string{"-created_at", "name"}) {
		t.Errorf("unexpected sanitized sort: %v", out["f"])
	}

	if _, violations := s.Validate(map[string]any{"f": "password"}); len(violations) == 0 {
		t.Error("unsortable field should fail")
	}
}

func TestCodeRule_Trims(t *testing.T) {
	s := single(schema.Code())
	out, violations := s.Validate(map[string]any{"f": "  Q-2026-001  "})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if out["f"] != "Q-2026-001" {
		t.Errorf("code should be trimmed, got %q", out["f"])
	}
}

func TestEnumRule(t *testing.T) {
	s := single(schema.Enum([]string{"awaiting", "approved", "rejected"}))

	if _, violations := s.Validate(map[string]any{"f": "approved"}); len(violations) != 0 {
		t.Errorf("member value: %v", violations)
	}
	_, violations := s.Validate(map[string]any{"f": "done-ish"})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
}

func TestNumberRule_Integer(t *testing.T) {
	s := single(schema.Number(schema.Integer(), schema.Min(1)))

	if _, violations := s.Validate(map[string]any{"f": float64(3)}); len(violations) != 0 {
		t.Errorf("whole number: %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"f": "42"}); len(violations) != 0 {
		t.Errorf("whole numeric string: %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"f": 2.7}); len(violations) != 1 {
		t.Errorf("fractional value must be rejected, got %v", violations)
	}
}

func TestAllowListRule(t *testing.T) {
	s := single(schema.Include([]string{"service", "material"}))

	out, violations := s.Validate(map[string]any{"f": "service,material"})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if !reflect.DeepEqual(out["f"], []string{"service", "material"}) {
		t.Errorf("comma-separated input should split, got %v", out["f"])
	}

	if _, violations := s.Validate(map[string]any{"f": "password_hash"}); len(violations) != 1 {
		t.Errorf("value outside the allow-list must be rejected, got %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"f": ""}); len(violations) != 1 {
		t.Errorf("empty selection must be rejected, got %v", violations)
	}
}

func TestExtraRule(t *testing.T) {
	s := single(schema.Extra(schema.MaxLen(2)))

	out, violations := s.Validate(map[string]any{"f": map[string]any{"a": 1, "b": "x"}})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if len(out["f"].(map[string]any)) != 2 {
		t.Errorf("object should pass through, got %v", out["f"])
	}

	if _, violations := s.Validate(map[string]any{"f": "not-an-object"}); len(violations) != 1 {
		t.Errorf("non-object must be rejected, got %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"f": map[string]any{"a": 1, "b": 2, "c": 3}}); len(violations) != 1 {
		t.Errorf("over the key bound must be rejected, got %v", violations)
	}
}
