package schema

import (
	"fmt"
	"sort"
)

// ObjectSchema is an ordered mapping of field name to rule plus object-level
// constraints, validated as one request part. Immutable after construction.
type ObjectSchema struct {
	fields       map[string]FieldRule
	names        []string
	maxKeys      int
	allowUnknown bool
	allowEmpty   bool
}

// ObjectOption mutates an ObjectSchema during construction.
type ObjectOption func(*ObjectSchema)

// MaxKeys bounds the total number of keys after defaults are applied.
func MaxKeys(n int) ObjectOption {
	return func(s *ObjectSchema) { s.maxKeys = n }
}

// AllowUnknown permits keys outside the field mapping; they are stripped
// from the sanitized output rather than rejected.
func AllowUnknown() ObjectOption {
	return func(s *ObjectSchema) { s.allowUnknown = true }
}

// RequireNonEmpty rejects input with zero keys.
func RequireNonEmpty() ObjectOption {
	return func(s *ObjectSchema) { s.allowEmpty = false }
}

// Object composes field rules into an ObjectSchema. Field order in the
// violation list is deterministic (sorted by name).
func Object(fields map[string]FieldRule, opts ...ObjectOption) *ObjectSchema {
	s := &ObjectSchema{
		fields:     fields,
		allowEmpty: true,
	}
	for name, r := range fields {
		if r.Deny && r.Required {
			panic(fmt.Sprintf("schema: field %q cannot be both denied and required", name))
		}
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks input against the schema and returns the sanitized object:
// defaults filled in, scalars coerced, unknown keys stripped when permitted.
// ALL violations are accumulated so a caller sees every problem in one pass.
func (s *ObjectSchema) Validate(input map[string]any) (map[string]any, []Violation) {
	if input == nil {
		input = map[string]any{}
	}

	var violations []Violation

	if len(input) == 0 && !s.allowEmpty {
		violations = append(violations, Violation{Field: ".", Reason: "at least one field is required"})
	}

	// Unknown keys fail loud unless the schema explicitly allows pass-through.
	if !s.allowUnknown {
		unknown := make([]string, 0)
		for key := range input {
			if _, ok := s.fields[key]; !ok {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			violations = append(violations, Violation{Field: key, Reason: "unknown field"})
		}
	}

	out := make(map[string]any, len(s.fields))
	for _, name := range s.names {
		rule := s.fields[name]
		value, present := input[name]

		if rule.Deny {
			if present {
				violations = append(violations, Violation{Field: name, Reason: "field is not allowed"})
			}
			continue
		}

		if !present {
			if rule.HasDefault {
				out[name] = rule.Default
			} else if rule.Required {
				violations = append(violations, Violation{Field: name, Reason: "field is required"})
			}
			continue
		}

		sanitized, vs := checkField(name, rule, value)
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		out[name] = sanitized
	}

	if s.maxKeys > 0 && len(out) > s.maxKeys {
		violations = append(violations, Violation{
			Field:  ".",
			Reason: fmt.Sprintf("at most %d fields are allowed", s.maxKeys),
		})
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}
