package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeInsight    = "INSIGHT_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeState      = "STATE_ERROR"
)

// Kind classifies why an insight call could not produce a live result.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindAuth            Kind = "auth"
	KindEmptyPayload    Kind = "empty_payload"
	KindMalformedJSON   Kind = "malformed_json"
	KindSchemaViolation Kind = "schema_violation"
	KindCircuitOpen     Kind = "circuit_open"
)

func (k Kind) String() string {
	return string(k)
}

type InsightError struct {
	Kind       Kind
	Message    string
	Code       string
	Provider   string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *InsightError) Error() string {
	prefix := e.Message
	if e.Provider != "" {
		prefix = fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

func (e *InsightError) Unwrap() error {
	return e.Cause
}

func NewInsightError(kind Kind, message string, context map[string]any) *InsightError {
	return &InsightError{
		Kind:    kind,
		Message: message,
		Code:    CodeInsight,
		Context: context,
	}
}

func (e *InsightError) WithCause(cause error) *InsightError {
	e.Cause = cause
	return e
}

func NewTransportError(provider string, statusCode int, cause error) *InsightError {
	return &InsightError{
		Kind:       KindTransport,
		Message:    "model request failed",
		Code:       CodeInsight,
		Provider:   provider,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func NewAuthError(provider string, statusCode int, cause error) *InsightError {
	return &InsightError{
		Kind:       KindAuth,
		Message:    "model credentials rejected",
		Code:       CodeInsight,
		Provider:   provider,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func NewEmptyPayloadError(provider string) *InsightError {
	return &InsightError{
		Kind:     KindEmptyPayload,
		Message:  "empty response from model",
		Code:     CodeInsight,
		Provider: provider,
	}
}

// KindOf reports the Kind of the first InsightError in err's chain, or
// KindTransport for any other non-nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var insightErr *InsightError
	if stderrors.As(err, &insightErr) {
		return insightErr.Kind
	}
	return KindTransport
}

type ValidationError struct {
	Message string
	Code    string
	Field   string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		Message: message,
		Code:    CodeValidation,
		Field:   field,
		Value:   value,
	}
}

type StateError struct {
	Message   string
	Code      string
	Operation string
	Key       string
	Cause     error
}

func (e *StateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s %s): %v", e.Message, e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s (%s %s)", e.Message, e.Operation, e.Key)
}

func (e *StateError) Unwrap() error {
	return e.Cause
}

func NewStateError(message, operation, key string, cause error) *StateError {
	return &StateError{
		Message:   message,
		Code:      CodeState,
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
