package api

import (
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/service"
)

// GenerateNoteCardsRequest is the body of POST /api/notecards.
// Blank keywords are rejected by the service so the message matches the form.
type GenerateNoteCardsRequest struct {
	URL      string `json:"url" validate:"required,max=2048"`
	Keywords string `json:"keywords" validate:"max=2000"`
}

// NoteCardsResponse is the body of a successful POST /api/notecards.
type NoteCardsResponse struct {
	VideoID            string            `json:"video_id"`
	Language           string            `json:"language"`
	Translated         bool              `json:"translated"`
	SourceLanguage     string            `json:"source_language,omitempty"`
	AvailableLanguages []string          `json:"available_languages,omitempty"`
	Mode               string            `json:"mode"`
	Cards              []render.CardView `json:"cards"`
}

// NewNoteCardsResponse converts a pipeline result, colouring cards with picker.
func NewNoteCardsResponse(result *service.GenerateResult, picker render.ColorPicker) NoteCardsResponse {
	return NoteCardsResponse{
		VideoID:            result.VideoID.String(),
		Language:           result.Transcript.Language,
		Translated:         result.Transcript.Translated,
		SourceLanguage:     result.Transcript.SourceLanguage,
		AvailableLanguages: result.Transcript.AvailableLanguages,
		Mode:               string(result.Mode),
		Cards:              render.FormatCards(result.Cards, picker),
	}
}

// VideoResponse is the body of GET /api/video.
type VideoResponse = render.VideoView

// NewVideoResponse builds the embed and watch links for id.
func NewVideoResponse(id domain.VideoID) VideoResponse {
	return *render.NewVideoView(id)
}
