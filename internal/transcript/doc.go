// Package transcript retrieves the caption text of a video. It lists the caption
// tracks the video offers, picks one for the preferred language, fetches its
// timed segments and flattens them into a single string.
package transcript
