package schema_test

import (
	"errors"
	"testing"

	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

func TestRequest_ValidatesPartsIndependently(t *testing.T) {
	req := schema.Request{
		Params: schema.Object(map[string]schema.FieldRule{
			"id": schema.UUID(),
		}),
		Body: schema.Object(map[string]schema.FieldRule{
			"name": schema.Text(),
		}),
	}

	out, err := req.Validate(schema.Parts{
		Params: map[string]any{"id": "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f"},
		Body:   map[string]any{"name": "Acme"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Params["id"] != "7f9c24e5-2f8a-4b3d-9c6e-1a2b3c4d5e6f" || out.Body["name"] != "Acme" {
		t.Errorf("unexpected sanitized parts: %+v", out)
	}
}

func TestRequest_FailureInAnyPartFailsRequest(t *testing.T) {
	req := schema.Request{
		Params: schema.Object(map[string]schema.FieldRule{
			"id": schema.UUID(),
		}),
		Body: schema.Object(map[string]schema.FieldRule{
			"name": schema.Text(),
		}),
	}

	_, err := req.Validate(schema.Parts{
		Params: map[string]any{"id": "nope"},
		Body:   map[string]any{"name": "Acme"},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if appErr.Kind != apperr.KindValidation {
		t.Errorf("expected validation kind, got %s", appErr.Kind)
	}
	if len(appErr.Violations) != 1 || appErr.Violations[0].Field != "params.id" {
		t.Errorf("violation should carry the part-prefixed path, got %+v", appErr.Violations)
	}
}

func TestRequest_NilPartIsIgnored(t *testing.T) {
	req := schema.Request{
		Body: schema.Object(map[string]schema.FieldRule{
			"name": schema.Text(),
		}),
	}

	// Query input present but no query schema declared: nothing validated,
	// nothing passed through.
	out, err := req.Validate(schema.Parts{
		Query: map[string]any{"anything": "goes"},
		Body:  map[string]any{"name": "Acme"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Query != nil {
		t.Errorf("undeclared part should be dropped, got %v", out.Query)
	}
}

func TestRequest_CollectsViolationsAcrossParts(t *testing.T) {
	req := schema.Request{
		Query: schema.Object(map[string]schema.FieldRule{
			"limit": schema.Limit(),
		}),
		Body: schema.Object(map[string]schema.FieldRule{
			"name": schema.Text(),
		}),
	}

	_, err := req.Validate(schema.Parts{
		Query: map[string]any{"limit": "9999"},
		Body:  map[string]any{},
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if len(appErr.Violations) != 2 {
		t.Fatalf("expected violations from both parts, got %+v", appErr.Violations)
	}
}
