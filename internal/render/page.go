package render

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// AppTitle is the heading shown on the page.
const AppTitle = "Next-Gen Youtube Prompt Sheets Creator"

//go:embed templates/page.html.tmpl
var pageTemplate string

//go:embed assets/background.svg
var defaultBackground []byte

// VideoView holds the links for an accepted video.
type VideoView struct {
	ID       string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
	WatchURL string `json:"watch_url"`
}

// NewVideoView builds the links for id.
func NewVideoView(id domain.VideoID) *VideoView {
	return &VideoView{ID: id.String(), EmbedURL: id.EmbedURL(), WatchURL: id.WatchURL()}
}

// PageData is everything the page template can show. Zero values hide the
// corresponding section.
type PageData struct {
	URL            string
	Keywords       string
	TargetLanguage string
	Video          *VideoView
	Error          string
	Translated     bool
	SourceLanguage string
	Cards          []CardView
}

// Page renders the single application page.
type Page struct {
	tmpl       *template.Template
	background template.URL
}

// NewPage parses the page template and inlines the background image at
// backgroundPath. An empty path selects the built-in background.
func NewPage(backgroundPath string) (*Page, error) {
	bg, err := LoadBackground(backgroundPath)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("page").
		Funcs(template.FuncMap{"languageName": LanguageName}).
		Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Page{tmpl: tmpl, background: bg}, nil
}

// Render writes the page for data to w.
func (p *Page) Render(w io.Writer, data PageData) error {
	if data.TargetLanguage == "" {
		data.TargetLanguage = "en"
	}
	view := struct {
		PageData
		Title      string
		Background template.URL
	}{
		PageData:   data,
		Title:      AppTitle,
		Background: p.background,
	}
	if err := p.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// LoadBackground reads an image file and returns it as a data URI. The MIME
// type is detected from the content, not the file name.
func LoadBackground(path string) (template.URL, error) {
	data := defaultBackground
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read background image: %w", err)
		}
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("background image %q has unsupported type %s", path, mtype.String())
	}

	// Parameters such as charset would break the data URI.
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return template.URL("data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// LanguageName returns the English display name for a language code, or the
// code itself when it is not recognised.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
