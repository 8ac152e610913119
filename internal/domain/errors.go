// Package domain defines the core entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
//
// Every failure that leaves the pipeline wraps exactly one of these sentinels,
// so callers can tell an input problem from an upstream outage, an upstream
// that answered with nothing, or an exhausted quota.
var (
	// ErrValidation is returned when user input fails validation.
	// This is usually wrapped in a ValidationError with field details.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidVideoURL is returned when no video identifier can be found in a link.
	ErrInvalidVideoURL = fmt.Errorf("%w: no valid video identifier found", ErrValidation)

	// ErrEmptyKeywords is returned when generation is requested without keywords.
	ErrEmptyKeywords = fmt.Errorf("%w: keywords are required", ErrValidation)

	// ErrUpstreamUnavailable is returned when an external service could not be
	// reached or failed while serving the request.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrUpstreamEmpty is returned when an external service answered but had
	// nothing usable (no captions, empty translation, zero cards).
	ErrUpstreamEmpty = errors.New("upstream service returned no usable result")

	// ErrQuotaExceeded is returned when an external service rejected the call
	// because a rate limit or quota was hit.
	ErrQuotaExceeded = errors.New("upstream quota exceeded")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil, ErrValidation is used so errors.Is still matches.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Upstream service names used in UpstreamError.
const (
	ServiceTranscript = "transcript"
	ServiceTranslate  = "translate"
	ServiceGenerate   = "generate"
)

// UpstreamError records which external service failed and at which step.
// Err must wrap one of ErrUpstreamUnavailable, ErrUpstreamEmpty or ErrQuotaExceeded.
type UpstreamError struct {
	Service string
	Step    string
	Err     error
}

// NewUpstreamError wraps err for the given service and step.
func NewUpstreamError(service, step string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Step: step, Err: err}
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Kind is the coarse error category exposed to callers.
type Kind string

// Error kinds, one per sentinel family.
const (
	KindValidation          Kind = "input_validation"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUpstreamEmpty       Kind = "upstream_empty"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindInternal            Kind = "internal"
)

// Classify maps an error to its Kind. A nil error is reported as KindInternal
// because callers only classify failures.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrUpstreamEmpty):
		return KindUpstreamEmpty
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	default:
		return KindInternal
	}
}
