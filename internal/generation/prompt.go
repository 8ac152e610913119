package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// Bounds the prompt asks the model to respect. They are requests, not guarantees.
const (
	MinPointsPerCard = 5
	MaxPointsPerCard = 8
	MinCards         = 10
	MaxCards         = 20
)

//go:embed templates/notecards.tmpl
var defaultTemplate string

// Request is the input to a single card generation.
type Request struct {
	// Transcript is the full transcript text, already in Language.
	Transcript string

	// Keywords is the raw, comma-separated keyword string as entered by the user.
	Keywords string

	// Language is the language code the cards should be written in.
	Language string
}

// Validate checks that the request can be turned into a prompt.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Transcript) == "" {
		return ErrEmptyTranscript
	}
	if strings.TrimSpace(r.Keywords) == "" {
		return domain.NewValidationError("keywords", "cannot be empty", domain.ErrEmptyKeywords)
	}
	return nil
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Transcript string
	Keywords   string
	Language   string
	MinPoints  int
	MaxPoints  int
	MinCards   int
	MaxCards   int
}

// PromptBuilder renders generation requests into model prompts.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the prompt template. An empty path selects the built-in template.
func NewPromptBuilder(templatePath string) (*PromptBuilder, error) {
	content := defaultTemplate
	name := "notecards"
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, templatePath, err)
		}
		content = string(data)
		name = templatePath
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for req. The transcript and keyword string are embedded verbatim.
func (b *PromptBuilder) Build(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, promptData{
		Transcript: req.Transcript,
		Keywords:   req.Keywords,
		Language:   language,
		MinPoints:  MinPointsPerCard,
		MaxPoints:  MaxPointsPerCard,
		MinCards:   MinCards,
		MaxCards:   MaxCards,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

var defaultBuilder = func() *PromptBuilder {
	b, err := NewPromptBuilder("")
	if err != nil {
		panic(err)
	}
	return b
}()

// BuildPrompt renders req with the built-in template.
func BuildPrompt(req Request) (string, error) {
	return defaultBuilder.Build(req)
}
