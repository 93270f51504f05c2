// Package errors provides standardized error handling for the hpcgen core.
// It implements structured error types with proper wrapping and classification
// following Go 1.20+ error handling best practices.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Field-level errors
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrUnknownField     = errors.New("unknown field")

	// Cross-field errors
	ErrInconsistentConfig = errors.New("inconsistent configuration")

	// Rendering errors
	ErrUnresolvedToken = errors.New("unresolved template token")
	ErrBadTemplate     = errors.New("malformed template")

	// Serialization errors
	ErrInvalidDocument = errors.New("invalid configuration document")
)

// FieldTypeError reports a value of the wrong primitive kind supplied
// to a configuration field.
type FieldTypeError struct {
	Field    string
	Received string // Go type name of the offending value
	Err      error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %s: received %s: %v", e.Field, e.Received, e.Err)
}

func (e *FieldTypeError) Unwrap() error {
	return e.Err
}

// FieldRangeError reports a numeric value outside its declared domain.
type FieldRangeError struct {
	Field      string
	Constraint string // "> 0" or ">= 0"
	Value      interface{}
	Err        error
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("field %s: must be %s, got %v: %v", e.Field, e.Constraint, e.Value, e.Err)
}

func (e *FieldRangeError) Unwrap() error {
	return e.Err
}

// ConsistencyError reports a cross-field invariant violation detected by
// an explicit consistency check.
type ConsistencyError struct {
	Detail string
	Err    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency check: %s: %v", e.Detail, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// TemplateError reports a defect in the descriptor template or its
// field mapping. These are programmer errors, not user input problems.
type TemplateError struct {
	Token string
	Err   error
}

func (e *TemplateError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("template token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("template: %v", e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// DocumentError reports a problem with a serialized configuration
// document (mapping or JSON file).
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("document: %v", e.Err)
}

// Unwrap exposes both the underlying cause and the document sentinel, so
// callers can match either the specific failure (a field error, an I/O
// error) or the general ErrInvalidDocument class.
func (e *DocumentError) Unwrap() []error {
	return []error{e.Err, ErrInvalidDocument}
}

// Error wrapping constructors

func NewFieldTypeError(field, received string) error {
	return &FieldTypeError{Field: field, Received: received, Err: ErrInvalidFieldType}
}

func NewFieldRangeError(field, constraint string, value interface{}) error {
	return &FieldRangeError{Field: field, Constraint: constraint, Value: value, Err: ErrValueOutOfRange}
}

func NewConsistencyError(format string, args ...interface{}) error {
	return &ConsistencyError{Detail: fmt.Sprintf(format, args...), Err: ErrInconsistentConfig}
}

func NewUnresolvedTokenError(token string) error {
	return &TemplateError{Token: token, Err: ErrUnresolvedToken}
}

func WrapTemplateError(err error) error {
	if err == nil {
		return nil
	}
	return &TemplateError{Err: err}
}

func WrapDocumentError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &DocumentError{Path: path, Err: err}
}

// Error classification functions

func IsFieldTypeError(err error) bool {
	var te *FieldTypeError
	return errors.As(err, &te)
}

func IsFieldRangeError(err error) bool {
	var re *FieldRangeError
	return errors.As(err, &re)
}

func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}

func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// IsFieldError reports whether err is any per-field validation failure,
// as opposed to a cross-field or rendering failure.
func IsFieldError(err error) bool {
	return errors.Is(err, ErrInvalidFieldType) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrUnknownField)
}

// Error extraction helpers

// GetField returns the field name carried by a field-level error.
func GetField(err error) (string, bool) {
	var te *FieldTypeError
	if errors.As(err, &te) {
		return te.Field, true
	}
	var re *FieldRangeError
	if errors.As(err, &re) {
		return re.Field, true
	}
	return "", false
}
