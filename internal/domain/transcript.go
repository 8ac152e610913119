package domain

import "strings"

// KindAutoGenerated marks a caption track produced by speech recognition.
const KindAutoGenerated = "asr"

// Track is one language variant of a video's captions, as listed upstream.
type Track struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name,omitempty"`
	Kind         string `json:"kind,omitempty"`
	BaseURL      string `json:"base_url"`
}

// IsAutoGenerated reports whether the track came from speech recognition.
func (t Track) IsAutoGenerated() bool {
	return t.Kind == KindAutoGenerated
}

// Segment is one timed piece of caption text.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the flattened caption text of one video.
type Transcript struct {
	VideoID VideoID `json:"video_id"`

	// Language is the language the Text is currently in.
	Language string `json:"language"`
	Text     string `json:"text"`

	// Translated is set when Text was machine-translated from SourceLanguage.
	Translated     bool   `json:"translated"`
	SourceLanguage string `json:"source_language,omitempty"`

	// AvailableLanguages lists every track language offered upstream, in upstream order.
	AvailableLanguages []string `json:"available_languages,omitempty"`
}

// JoinSegments concatenates segment text with single spaces and drops timing.
// Blank segments are skipped.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
