package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error kind. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch domain.Classify(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUpstreamEmpty:
		return http.StatusUnprocessableEntity
	case domain.KindQuotaExceeded:
		return http.StatusTooManyRequests
	case domain.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error kind and the upstream service that failed.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	service := ""
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		service = upErr.Service
	}

	switch domain.Classify(err) {
	case domain.KindValidation:
		switch {
		case errors.Is(err, domain.ErrEmptyKeywords):
			return "Please enter keywords."
		case errors.Is(err, domain.ErrInvalidVideoURL):
			return "Invalid YouTube URL."
		default:
			return SanitizeValidationError(err)
		}

	case domain.KindUpstreamEmpty:
		switch service {
		case domain.ServiceTranscript:
			return "No transcript is available for this video."
		case domain.ServiceTranslate:
			return "The translation service returned no text."
		default:
			return "No note cards could be generated from this video."
		}

	case domain.KindQuotaExceeded:
		if service != "" {
			return fmt.Sprintf("The %s service is busy right now. Please try again later.", service)
		}
		return "Too many requests. Please try again later."

	case domain.KindUpstreamUnavailable:
		switch service {
		case domain.ServiceTranscript:
			return "Error extracting transcript."
		case domain.ServiceTranslate:
			return "Error translating transcript."
		default:
			return "Error generating note card content."
		}

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) && valErr.Field != "" {
		return fmt.Sprintf("Invalid %s", valErr.Field)
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "url", "http_url":
		return "invalid URL"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
