// Package generation turns a transcript and a keyword list into note cards.
// It builds the instruction prompt, sends it to a Model (the Gemini adapter in
// production) and parses the completion into domain.Card values, preferring a
// structured JSON contract and falling back to splitting on "Note Card " markers.
package generation
