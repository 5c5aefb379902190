// Package schema provides the declarative request-validation engine.
// Field rules are composed into object schemas per request part (query,
// params, body) at startup; schemas are immutable and shared across requests.
package schema

// Kind identifies the shape a field value must have.
type Kind string

const (
	KindText         Kind = "text"
	KindUUID         Kind = "uuid"
	KindEnum         Kind = "enum"
	KindNumber       Kind = "number"
	KindBool         Kind = "bool"
	KindDate         Kind = "date"
	KindDateFilter   Kind = "date_filter"
	KindNumberFilter Kind = "number_filter"
	KindTextFilter   Kind = "text_filter"
	KindUUIDArray    Kind = "uuid_array"
	KindTextArray    Kind = "text_array"
	KindAllowList    Kind = "allow_list"
	KindLimit        Kind = "limit"
	KindOffset       Kind = "offset"
	KindSort         Kind = "sort"
	KindCode         Kind = "code"
	KindExtra        Kind = "extra"
)

// FieldRule is the validation contract for one named input field.
// Rules are value types; builders below are the only intended constructors.
type FieldRule struct {
	Kind     Kind
	Required bool
	Deny     bool
	Nullable bool

	Default    any
	HasDefault bool

	// MinLen/MaxLen bound string length or array size. MaxLen 0 = unbounded.
	MinLen int
	MaxLen int

	// Min/Max bound numeric values when the corresponding Has flag is set.
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool

	// IntOnly rejects numbers carrying a fractional part.
	IntOnly bool

	// Values is the allowed-value set for enum, allow-list and sort kinds.
	Values []string

	TrimSpace bool
}

// Option mutates a FieldRule during construction.
type Option func(*FieldRule)

// Optional marks the field as allowed to be absent.
func Optional() Option {
	return func(r *FieldRule) { r.Required = false }
}

// Deny marks the field as forbidden: any presence fails validation.
// A denied field is never required; the two flags cannot coexist.
func Deny() Option {
	return func(r *FieldRule) {
		r.Deny = true
		r.Required = false
	}
}

// Nullable allows an explicit null value.
func Nullable() Option {
	return func(r *FieldRule) { r.Nullable = true }
}

// Default supplies a value applied when the field is absent.
// A defaulted field is implicitly optional.
func Default(v any) Option {
	return func(r *FieldRule) {
		r.Default = v
		r.HasDefault = true
		r.Required = false
	}
}

// MinLen sets the minimum string length or array size.
func MinLen(n int) Option {
	return func(r *FieldRule) { r.MinLen = n }
}

// MaxLen sets the maximum string length or array size.
func MaxLen(n int) Option {
	return func(r *FieldRule) { r.MaxLen = n }
}

// Min sets the lower numeric bound (inclusive).
func Min(v float64) Option {
	return func(r *FieldRule) {
		r.Min = v
		r.HasMin = true
	}
}

// Max sets the upper numeric bound (inclusive).
func Max(v float64) Option {
	return func(r *FieldRule) {
		r.Max = v
		r.HasMax = true
	}
}

// Trim strips surrounding whitespace before length checks.
func Trim() Option {
	return func(r *FieldRule) { r.TrimSpace = true }
}

// Integer rejects numbers with a fractional part. Counts and cent amounts
// would otherwise truncate silently on their way into int fields.
func Integer() Option {
	return func(r *FieldRule) { r.IntOnly = true }
}

func build(r FieldRule, opts []Option) FieldRule {
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// UUID validates an RFC-4122 string.
func UUID(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindUUID, Required: true}, opts)
}

// Enum validates membership in a fixed allowed-value set.
func Enum(values []string, opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindEnum, Required: true, Values: values}, opts)
}

// Text validates a bounded string. Default upper bound is 255 characters.
func Text(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindText, Required: true, MaxLen: 255}, opts)
}

// TextFilter accepts either a literal string or a structured filter
// object ({eq: v} or {like: pattern}) for search query parameters.
func TextFilter(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindTextFilter, Required: true, MaxLen: 255}, opts)
}

// Date validates an ISO-8601 date or datetime string.
func Date(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindDate, Required: true}, opts)
}

// DateFilter accepts a literal date or a range object with
// eq/gt/gte/lt/lte operators, each a valid date.
func DateFilter(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindDateFilter, Required: true}, opts)
}

// Number validates a numeric value, coercing numeric strings.
func Number(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindNumber, Required: true}, opts)
}

// NumberFilter accepts a literal number or a range object with
// eq/gt/gte/lt/lte operators, each within the rule's bounds.
func NumberFilter(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindNumberFilter, Required: true}, opts)
}

// PriceFilter is a NumberFilter bounded to non-negative values.
func PriceFilter(opts ...Option) FieldRule {
	r := FieldRule{Kind: KindNumberFilter, Required: true, Min: 0, HasMin: true}
	return build(r, opts)
}

// Bool validates a boolean, coercing the strings "true" and "false"
// since query string values always arrive as text.
func Bool(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindBool, Required: true}, opts)
}

// Limit is the pagination page-size parameter: optional, defaults to 25,
// capped at 100 to block resource exhaustion via oversized pages.
func Limit(opts ...Option) FieldRule {
	r := FieldRule{
		Kind:       KindLimit,
		Default:    float64(25),
		HasDefault: true,
		Min:        1,
		HasMin:     true,
		Max:        100,
		HasMax:     true,
		IntOnly:    true,
	}
	return build(r, opts)
}

// Offset is the pagination offset parameter: optional, defaults to 0,
// never negative.
func Offset(opts ...Option) FieldRule {
	r := FieldRule{
		Kind:       KindOffset,
		Default:    float64(0),
		HasDefault: true,
		Min:        0,
		HasMin:     true,
		IntOnly:    true,
	}
	return build(r, opts)
}

// Attributes validates a requested projection list against an allow-list.
// This is an access-control boundary: columns outside the allow-list
// (password hashes, internal flags) can never be requested.
func Attributes(allow []string, opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindAllowList, Required: true, Values: allow}, opts)
}

// Include validates a relation-inclusion list against an allow-list.
func Include(allow []string, opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindAllowList, Required: true, Values: allow}, opts)
}

// SortBy validates sort directives ("field" or "-field") against an
// allow-list of sortable fields.
func SortBy(allow []string, opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindSort, Required: true, Values: allow}, opts)
}

// Code validates a short bounded identifier string.
func Code(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindCode, Required: true, MaxLen: 64, TrimSpace: true}, opts)
}

// Extra validates a free-form but bounded JSON object blob.
func Extra(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindExtra, Required: true, MaxLen: 32}, opts)
}

// UUIDArray validates a non-empty array of UUIDs, each checked
// independently, with a bound on the whole array's length.
func UUIDArray(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindUUIDArray, Required: true, MinLen: 1, MaxLen: 100}, opts)
}

// TextArray validates an array of non-empty strings, bounding the array
// size with MinLen/MaxLen.
func TextArray(opts ...Option) FieldRule {
	return build(FieldRule{Kind: KindTextArray, Required: true, MaxLen: 100}, opts)
}
