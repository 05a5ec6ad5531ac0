package config

import "fmt"

// ErrorKind classifies a configuration error.
type ErrorKind string

const (
	// ErrMissingField means a required key is absent from the document.
	ErrMissingField ErrorKind = "missing_field"
	// ErrTypeMismatch means a value is present but not coercible to the
	// expected semantic type.
	ErrTypeMismatch ErrorKind = "type_mismatch"
	// ErrDomainViolation means a well-typed value violates a numeric or
	// ordering constraint.
	ErrDomainViolation ErrorKind = "domain_violation"
	// ErrParse means the document is not well-formed YAML.
	ErrParse ErrorKind = "parse_error"
)

// Error is a fatal configuration error. All loader errors are fatal: a
// malformed configuration cannot be safely defaulted for a training run.
type Error struct {
	Kind       ErrorKind
	Field      string // dotted path, e.g. "optim.lr_initial"
	Expected   string // for type mismatches
	Actual     string // for type mismatches
	Constraint string // for domain violations
	Err        error  // for parse errors
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case ErrTypeMismatch:
		return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
	case ErrDomainViolation:
		return fmt.Sprintf("field %q: %s", e.Field, e.Constraint)
	case ErrParse:
		return fmt.Sprintf("malformed config document: %v", e.Err)
	default:
		return fmt.Sprintf("config error at %q", e.Field)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func missingField(path string) *Error {
	return &Error{Kind: ErrMissingField, Field: path}
}

func typeMismatch(path, expected, actual string) *Error {
	return &Error{Kind: ErrTypeMismatch, Field: path, Expected: expected, Actual: actual}
}

func domainViolation(path, constraint string) *Error {
	return &Error{Kind: ErrDomainViolation, Field: path, Constraint: constraint}
}

func parseError(err error) *Error {
	return &Error{Kind: ErrParse, Err: err}
}
