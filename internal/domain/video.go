package domain

import (
	"regexp"
	"strings"
)

// videoIDPattern matches an 11-character identifier after "v=" or a path separator.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// VideoID is the fixed-length identifier naming a video to the upstream services.
type VideoID string

// ExtractVideoID pulls the video identifier out of a user-supplied link.
// Only the single pattern above is recognised; alternate link forms are not normalised.
func ExtractVideoID(raw string) (VideoID, error) {
	m := videoIDPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if len(m) < 2 {
		return "", NewValidationError("url", "does not contain a valid video identifier", ErrInvalidVideoURL)
	}
	return VideoID(m[1]), nil
}

// String returns the identifier as a plain string.
func (id VideoID) String() string {
	return string(id)
}

// WatchURL returns the canonical watch page link.
func (id VideoID) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

// EmbedURL returns the player embed link.
func (id VideoID) EmbedURL() string {
	return "https://www.youtube.com/embed/" + string(id)
}
