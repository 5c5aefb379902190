package schema

import (
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

// Request groups up to three object schemas keyed by request part. A nil
// part means that part carries no validated input and is ignored.
type Request struct {
	Query  *ObjectSchema
	Params *ObjectSchema
	Body   *ObjectSchema
}

// Parts holds the raw (or sanitized) values of the three request parts.
type Parts struct {
	Query  map[string]any
	Params map[string]any
	Body   map[string]any
}

// Validate runs each part's schema independently and fails the whole request
// if any part fails. Violations are prefixed with the part name so a field
// path reads "query.limit" or "body.customer_id".
func (r Request) Validate(in Parts) (Parts, error) {
	var all []apperr.Violation
	out := Parts{}

	out.Query = validatePart("query", r.Query, in.Query, &all)
	out.Params = validatePart("params", r.Params, in.Params, &all)
	out.Body = validatePart("body", r.Body, in.Body, &all)

	if len(all) > 0 {
		return Parts{}, apperr.Validation(all)
	}
	return out, nil
}

func validatePart(part string, s *ObjectSchema, input map[string]any, all *[]apperr.Violation) map[string]any {
	if s == nil {
		return nil
	}
	sanitized, violations := s.Validate(input)
	for _, v := range violations {
		*all = append(*all, apperr.Violation{Field: part + "." + v.Field, Reason: v.Reason})
	}
	return sanitized
}
