// Package domain holds the note-card entities (video IDs, caption tracks,
// transcripts and cards) and the error kinds every layer classifies failures by.
// It has no dependencies on transport or upstream clients.
package domain
