// Package service contains the note-card pipeline. It orchestrates the
// transcript, translation and generation components to turn a video link and
// a keyword list into cards.
//
// The pipeline is strictly sequential:
//
//  1. Validate input: the keyword list must not be blank. This runs before any
//     upstream call.
//  2. Parse the link into a video identifier.
//  3. Retrieve the transcript, preferring the target language track.
//  4. Translate the transcript when its language differs from the target.
//  5. Generate cards from the transcript and keywords.
//
// The first failure ends the interaction and is returned as a *StepError
// naming the step. A transcript that was fetched but could not be translated
// is discarded rather than used untranslated.
//
// The service depends on the interfaces below, never on the concrete upstream
// clients, so each step can be replaced in tests.
package service
