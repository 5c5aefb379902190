package schema_test

import (
	"reflect"
	"testing"

	"github.com/quoteflow/quoteflow/core/schema"
)

func TestValidate_RejectsUnknownKeys(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"name": schema.Text(),
	})

	_, violations := s.Validate(map[string]any{
		"name":     "ok",
		"surprise": "x",
	})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(violations), violations)
	}
	if violations[0].Field != "surprise" || violations[0].Reason != "unknown field" {
		t.Errorf("unexpected violation: %+v", violations[0])
	}
}

func TestValidate_AllowUnknownStripsKeys(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"name": schema.Text(),
	}, schema.AllowUnknown())

	out, violations := s.Validate(map[string]any{
		"name":     "ok",
		"surprise": "x",
	})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if _, ok := out["surprise"]; ok {
		t.Error("unknown key should be stripped from sanitized output")
	}
}

func TestValidate_RequiredFieldCompleteness(t *testing.T) {
	fields := map[string]schema.FieldRule{
		"customer_id": schema.UUID(),
		"salesman_id": schema.UUID(),
		"notes":       schema.Text(),
	}
	valid := map[string]any{
		"customer_id": "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f",
		"salesman_id": "11111111-2222-4333-8444-555555555555",
		"notes":       "roof inspection",
	}

	s := schema.Object(fields)

	if _, violations := s.Validate(valid); len(violations) != 0 {
		t.Fatalf("all fields valid, got violations: %v", violations)
	}

	for omit := range fields {
		input := map[string]any{}
		for k, v := range valid {
			if k != omit {
				input[k] = v
			}
		}
		_, violations := s.Validate(input)
		if len(violations) != 1 {
			t.Errorf("omitting %s: expected 1 violation, got %v", omit, violations)
			continue
		}
		if violations[0].Field != omit || violations[0].Reason != "field is required" {
			t.Errorf("omitting %s: unexpected violation %+v", omit, violations[0])
		}
	}
}

func TestValidate_DefaultApplicationIdempotence(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"status": schema.Enum([]string{"awaiting", "approved"}, schema.Default("awaiting")),
	})

	first, violations := s.Validate(map[string]any{})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	second, violations := s.Validate(map[string]any{})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if first["status"] != "awaiting" || second["status"] != "awaiting" {
		t.Errorf("default drifted: first=%v second=%v", first["status"], second["status"])
	}
}

func TestValidate_DenyFieldRejection(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"name": schema.Text(),
		"id":   schema.UUID(schema.Deny()),
	})

	// A value that would satisfy the UUID rule must still be rejected.
	_, violations := s.Validate(map[string]any{
		"name": "ok",
		"id":   "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f",
	})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
	if violations[0].Field != "id" || violations[0].Reason != "field is not allowed" {
		t.Errorf("unexpected violation: %+v", violations[0])
	}

	// Absent denied field passes.
	if _, violations := s.Validate(map[string]any{"name": "ok"}); len(violations) != 0 {
		t.Errorf("absent denied field should pass, got %v", violations)
	}
}

func TestObject_PanicsOnDeniedRequiredField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for denied+required field")
		}
	}()
	rule := schema.UUID(schema.Deny())
	rule.Required = true
	schema.Object(map[string]schema.FieldRule{"id": rule})
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"customer_id": schema.UUID(),
		"status":      schema.Enum([]string{"awaiting", "approved"}),
		"limit":       schema.Limit(),
	})

	_, violations := s.Validate(map[string]any{
		"status":  "bogus",
		"limit":   "10000",
		"unknown": 1,
	})
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations (missing, enum, bound, unknown), got %d: %v",
			len(violations), violations)
	}
}

func TestValidate_MaxKeys(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"a": schema.Text(schema.Optional()),
		"b": schema.Text(schema.Optional()),
		"c": schema.Text(schema.Optional()),
	}, schema.MaxKeys(2))

	if _, violations := s.Validate(map[string]any{"a": "1", "b": "2"}); len(violations) != 0 {
		t.Errorf("two keys should pass, got %v", violations)
	}
	_, violations := s.Validate(map[string]any{"a": "1", "b": "2", "c": "3"})
	if len(violations) != 1 {
		t.Errorf("three keys should fail, got %v", violations)
	}
}

func TestValidate_RequireNonEmpty(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"name": schema.Text(schema.Optional()),
	}, schema.RequireNonEmpty())

	if _, violations := s.Validate(nil); len(violations) != 1 {
		t.Errorf("empty input should fail, got %v", violations)
	}
	if _, violations := s.Validate(map[string]any{"name": "x"}); len(violations) != 0 {
		t.Errorf("non-empty input should pass, got %v", violations)
	}
}

func TestValidate_CoercesQueryScalars(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"active": schema.Bool(),
		"limit":  schema.Limit(),
	})

	out, violations := s.Validate(map[string]any{
		"active": "true",
		"limit":  "50",
	})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if out["active"] != true {
		t.Errorf(`"true" should coerce to bool true, got %v (%T)`, out["active"], out["active"])
	}
	if out["limit"] != float64(50) {
		t.Errorf(`"50" should coerce to number 50, got %v (%T)`, out["limit"], out["limit"])
	}
}

func TestValidate_LimitUpperBound(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"limit": schema.Limit(),
	})

	_, violations := s.Validate(map[string]any{"limit": "10000"})
	if len(violations) != 1 {
		t.Fatalf("limit=10000 must be rejected, got %v", violations)
	}
	if violations[0].Field != "limit" {
		t.Errorf("unexpected violation: %+v", violations[0])
	}

	out, violations := s.Validate(map[string]any{})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if out["limit"] != float64(25) {
		t.Errorf("absent limit should default to 25, got %v", out["limit"])
	}
}

func TestValidate_AttributesAllowList(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"attributes": schema.Attributes([]string{"id", "username", "name"}, schema.Optional()),
	})

	out, violations := s.Validate(map[string]any{"attributes": "id,username"})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if !reflect.DeepEqual(out["attributes"], []string{"id", "username"}) {
		t.Errorf("unexpected sanitized attributes: %v", out["attributes"])
	}

	// The password column is outside the allow-list and can never be requested.
	_, violations = s.Validate(map[string]any{"attributes": "id,password"})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
}

func TestValidate_NullableField(t *testing.T) {
	s := schema.Object(map[string]schema.FieldRule{
		"notes": schema.Text(schema.Optional(), schema.Nullable()),
	})

	out, violations := s.Validate(map[string]any{"notes": nil})
	if len(violations) != 0 {
		t.Fatalf("nullable field should accept null, got %v", violations)
	}
	if v, ok := out["notes"]; !ok || v != nil {
		t.Errorf("null should be preserved in sanitized output, got %v ok=%v", v, ok)
	}

	strict := schema.Object(map[string]schema.FieldRule{
		"notes": schema.Text(schema.Optional()),
	})
	if _, violations := strict.Validate(map[string]any{"notes": nil}); len(violations) != 1 {
		t.Errorf("non-nullable field should reject null, got %v", violations)
	}
}
