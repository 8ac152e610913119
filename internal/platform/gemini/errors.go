package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
	"google.golang.org/genai"
)

// statusResourceExhausted is the gRPC-style status Gemini reports for quota errors.
const statusResourceExhausted = "RESOURCE_EXHAUSTED"

// apiError extracts a genai.APIError from err, by value or by pointer.
func apiError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// mapError attaches the domain sentinel matching a failed Gemini call.
func mapError(err error) error {
	if errors.Is(err, domain.ErrUpstreamEmpty) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrUpstreamUnavailable) {
		return err
	}
	if apiErr, ok := apiError(err); ok {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == statusResourceExhausted {
			return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

// isRetryable reports whether another attempt could succeed.
// Empty or blocked responses and client errors other than 429 are permanent.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrUpstreamEmpty) || errors.Is(err, generation.ErrContentBlocked) {
		return false
	}
	if apiErr, ok := apiError(err); ok {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return true
		}
		if apiErr.Code >= 400 {
			return false
		}
	}
	// Transport failures without an API status are assumed transient.
	return true
}
