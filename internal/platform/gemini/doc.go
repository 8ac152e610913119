// Package gemini provides an implementation of the generation.Model interface
// that uses Google's Gemini API to complete note-card prompts.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's generation logic to Google's external Gemini AI service.
//
// Key components:
//
// 1. GeminiModel:
//   - Implements the generation.Model interface
//   - Requests JSON output constrained by a response schema
//
// 2. Error Handling:
//   - Retries transient errors with exponential backoff and jitter
//   - Translates API errors into the domain upstream error kinds
//   - Treats safety blocks and empty candidates as permanent
//
// The package depends on the google.golang.org/genai client library.
package gemini
