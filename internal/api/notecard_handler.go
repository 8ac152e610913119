package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api/shared"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/service"
)

// NoteCardGenerator is the service the handlers drive.
type NoteCardGenerator interface {
	Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateResult, error)
	Preview(rawURL string) (domain.VideoID, error)
	TargetLanguage() string
}

// NoteCardHandler serves the page and the JSON endpoints.
type NoteCardHandler struct {
	service NoteCardGenerator
	page    *render.Page
	picker  render.ColorPicker
	logger  *slog.Logger
}

// NewNoteCardHandler creates a new NoteCardHandler. A nil picker cycles the palette.
func NewNoteCardHandler(
	svc NoteCardGenerator,
	page *render.Page,
	picker render.ColorPicker,
	logger *slog.Logger,
) *NoteCardHandler {
	if picker == nil {
		picker = render.CyclePicker{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteCardHandler{
		service: svc,
		page:    page,
		picker:  picker,
		logger:  logger.With("component", "notecard_handler"),
	}
}

// HomePage handles GET /. When ?url= holds a valid link the player is shown.
func (h *NoteCardHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	data := render.PageData{
		URL:            strings.TrimSpace(r.URL.Query().Get("url")),
		TargetLanguage: h.service.TargetLanguage(),
	}

	status := http.StatusOK
	if data.URL != "" {
		id, err := h.service.Preview(data.URL)
		if err != nil {
			status = MapErrorToStatusCode(err)
			data.Error = GetSafeErrorMessage(err)
			shared.LogErrorResponse(r, status, data.Error, err)
		} else {
			data.Video = render.NewVideoView(id)
		}
	}

	h.renderPage(w, r, status, data)
}

// SubmitForm handles POST / with the url and keywords form fields.
func (h *NoteCardHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, render.PageData{
			TargetLanguage: h.service.TargetLanguage(),
			Error:          "Invalid form submission.",
		})
		return
	}

	data := render.PageData{
		URL:            strings.TrimSpace(r.PostFormValue("url")),
		Keywords:       r.PostFormValue("keywords"),
		TargetLanguage: h.service.TargetLanguage(),
	}
	if id, err := h.service.Preview(data.URL); err == nil {
		data.Video = render.NewVideoView(id)
	}

	result, err := h.service.Generate(r.Context(), service.GenerateInput{URL: data.URL, Keywords: data.Keywords})
	if err != nil {
		status := MapErrorToStatusCode(err)
		data.Error = GetSafeErrorMessage(err)
		shared.LogErrorResponse(r, status, data.Error, err)
		h.renderPage(w, r, status, data)
		return
	}

	data.Cards = render.FormatCards(result.Cards, h.picker)
	data.Translated = result.Transcript.Translated
	data.SourceLanguage = result.Transcript.SourceLanguage
	h.renderPage(w, r, http.StatusOK, data)
}

// GenerateNoteCards handles POST /api/notecards.
func (h *NoteCardHandler) GenerateNoteCards(w http.ResponseWriter, r *http.Request) {
	var req GenerateNoteCardsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.service.Generate(r.Context(), service.GenerateInput{URL: req.URL, Keywords: req.Keywords})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewNoteCardsResponse(result, h.picker))
}

// Video handles GET /api/video?url=. It parses the link only.
func (h *NoteCardHandler) Video(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Preview(r.URL.Query().Get("url"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewVideoResponse(id))
}

// renderPage renders into a buffer first so a template failure still yields a clean 500.
func (h *NoteCardHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data render.PageData) {
	var buf bytes.Buffer
	if err := h.page.Render(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.Any("error", err))
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.DebugContext(r.Context(), "failed to write page", slog.Any("error", err))
	}
}
