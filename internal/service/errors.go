package service

import "fmt"

// Pipeline step names, used in StepError and in logs.
const (
	StepValidateInput      = "validate_input"
	StepParseURL           = "parse_url"
	StepRetrieveTranscript = "retrieve_transcript"
	StepTranslate          = "translate"
	StepGenerateCards      = "generate_cards"
)

// StepError records which pipeline step ended an interaction.
//
// Error handling principles:
//  1. The first failing step ends the interaction; nothing after it runs
//  2. The underlying error keeps its domain sentinel, so callers use errors.Is
//     or domain.Classify to tell causes apart
//  3. The API layer maps the cause to a status code and a safe message
type StepError struct {
	// Step is the pipeline step that failed (e.g., "retrieve_transcript")
	Step string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for StepError.
func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s step failed: %s: %v", e.Step, e.Message, e.Err)
	}
	return fmt.Sprintf("%s step failed: %s", e.Step, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError returns a new StepError.
func NewStepError(step, message string, err error) *StepError {
	return &StepError{
		Step:    step,
		Message: message,
		Err:     err,
	}
}
