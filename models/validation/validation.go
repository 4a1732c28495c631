// Package validation provides the error type returned when input to one of
// the weather models is rejected, plus helpers for checking loosely typed
// values, e.g. decoded JSON.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

// Validation failure kinds.
const (
	// TypeKind means the value is missing or of the wrong type.
	TypeKind Kind = iota
	// RangeKind means the value has the right type but is out of range.
	RangeKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case RangeKind:
		return "range"
	default:
		return "unknown"
	}
}

// Error constants, to be matched using errors.Is.
var (
	ErrType  = errors.New("invalid type")
	ErrRange = errors.New("value out of range")
)

// Error describes why a field was rejected.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

// Typef returns a TypeKind Error for field.
func Typef(field string, format string, args ...interface{}) *Error {
	return &Error{Kind: TypeKind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Rangef returns a RangeKind Error for field.
func Rangef(field string, format string, args ...interface{}) *Error {
	return &Error{Kind: RangeKind, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel matching e's Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case TypeKind:
		return target == ErrType
	case RangeKind:
		return target == ErrRange
	}
	return false
}

// Number returns v as float64 if it is any Go number type or a json.Number.
func Number(field string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, Typef(field, "%s must be numeric - %v", field, v)
		}
		return f, nil
	}
	return 0, Typef(field, "%s must be numeric - %v", field, v)
}

// String returns v as string.
func String(field string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", Typef(field, "%s must be a string - %v", field, v)
	}
	return s, nil
}

// Required returns the value stored under field, or a TypeKind Error if there
// is none.
func Required(record map[string]interface{}, field string) (interface{}, error) {
	v, ok := record[field]
	if !ok || v == nil {
		return nil, Typef(field, "%s is required", field)
	}
	return v, nil
}
