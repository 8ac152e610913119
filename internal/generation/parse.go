package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// CardMarker is the literal heading that separates cards in a free-text completion.
const CardMarker = "Note Card "

// Mode records how a completion was parsed.
type Mode string

const (
	// ModeStructured means the completion honoured the JSON contract.
	ModeStructured Mode = "structured"

	// ModeMarker means the completion was split on CardMarker.
	ModeMarker Mode = "marker"
)

// ParseResult is the outcome of ParseResponse.
type ParseResult struct {
	Mode  Mode
	Cards []domain.Card

	// Dropped counts structured cards rejected by validation.
	Dropped int
}

// ResponseSchema is the structured contract requested from the model.
type ResponseSchema struct {
	Cards []CardSchema `json:"cards"`
}

// CardSchema is a single card in the structured contract.
type CardSchema struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
	Code   string   `json:"code,omitempty"`
}

var (
	codeFenceRegex    = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?```$")
	bulletRegex       = regexp.MustCompile(`^(?:[-*•·]|\d+[.)])\s+`)
	markerHeaderRegex = regexp.MustCompile(`^\d*\s*[:.)\-–]?\s*`)
)

// ParseResponse turns a raw completion into cards.
//
// The JSON contract is tried first. If the completion is not JSON, or the JSON
// yields no usable card, the text is split on CardMarker instead. Zero cards
// from both is reported as domain.ErrUpstreamEmpty.
func ParseResponse(raw string) (*ParseResult, error) {
	if result, ok := parseStructured(raw); ok && len(result.Cards) > 0 {
		return result, nil
	}

	cards := parseMarked(raw)
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %w: response contains no note cards", domain.ErrUpstreamEmpty, ErrInvalidResponse)
	}
	return &ParseResult{Mode: ModeMarker, Cards: cards}, nil
}

// SplitMarked splits raw on CardMarker, discards the preamble before the first
// marker, trims each fragment and skips empty ones.
func SplitMarked(raw string) []string {
	parts := strings.Split(raw, CardMarker)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRegex.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

func parseStructured(raw string) (*ParseResult, bool) {
	body := stripCodeFence(raw)
	if !strings.HasPrefix(body, "{") {
		return nil, false
	}

	var schema ResponseSchema
	if err := json.Unmarshal([]byte(body), &schema); err != nil {
		return nil, false
	}

	result := &ParseResult{Mode: ModeStructured}
	for _, cs := range schema.Cards {
		if strings.TrimSpace(cs.Title) == "" && len(cs.Points) == 0 {
			continue
		}
		card, err := domain.NewCard(len(result.Cards)+1, cleanTitle(cs.Title), cleanPoints(cs.Points), cs.Code)
		if err != nil {
			result.Dropped++
			continue
		}
		result.Cards = append(result.Cards, *card)
	}
	return result, true
}

// parseMarked builds one card per marked fragment. The first line is the title,
// fenced blocks become the code example and every other line is a point.
// Decoration lines such as the "###" left over from a "### Note Card" heading
// are dropped. A fragment with no usable point or code becomes an untitled card
// holding its text, so every non-empty fragment yields exactly one card.
func parseMarked(raw string) []domain.Card {
	fragments := SplitMarked(raw)
	cards := make([]domain.Card, 0, len(fragments))

	for _, fragment := range fragments {
		index := len(cards) + 1
		card, err := markedCard(index, fragment)
		if err != nil {
			card, err = domain.NewCard(index, fmt.Sprintf("Note Card %d", index), []string{fragment}, "")
			if err != nil {
				continue
			}
		}
		cards = append(cards, *card)
	}
	return cards
}

func markedCard(index int, fragment string) (*domain.Card, error) {
	lines := strings.Split(fragment, "\n")
	title := cleanTitle(markerHeaderRegex.ReplaceAllString(strings.TrimSpace(lines[0]), ""))

	var points []string
	var code strings.Builder
	inCode := false
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			code.WriteString(line)
			code.WriteByte('\n')
			continue
		}
		if !isDecoration(trimmed) {
			points = append(points, trimmed)
		}
	}

	points = cleanPoints(points)
	example := strings.TrimSpace(code.String())

	if title == "" {
		title = fmt.Sprintf("Note Card %d", index)
	}
	if len(points) == 0 && example == "" {
		points = []string{title}
		title = fmt.Sprintf("Note Card %d", index)
	}
	return domain.NewCard(index, title, points, example)
}

// isDecoration reports whether line holds only Markdown heading, emphasis or
// rule characters (or nothing at all).
func isDecoration(line string) bool {
	return strings.Trim(line, "#*-_=~ \t") == ""
}

func cleanTitle(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.Trim(strings.TrimSpace(s), "#")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}

func cleanPoints(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		p = bulletRegex.ReplaceAllString(strings.TrimSpace(p), "")
		p = strings.ReplaceAll(p, "**", "")
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
