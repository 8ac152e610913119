package generation

import "errors"

// Sentinel errors. They are wrapped together with a domain kind
// (domain.ErrUpstreamEmpty, domain.ErrUpstreamUnavailable) so callers can
// match either.
var (
	ErrGenerationFailed = errors.New("note card generation failed")

	// ErrInvalidResponse means the completion was missing, blank or held no cards.
	ErrInvalidResponse = errors.New("model returned an unusable completion")

	// ErrContentBlocked means the model refused the prompt on safety grounds.
	ErrContentBlocked = errors.New("model blocked the prompt")

	ErrInvalidConfig   = errors.New("invalid generation configuration")
	ErrEmptyTranscript = errors.New("transcript is empty")
)
