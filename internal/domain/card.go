package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardTitleEmpty is returned when a card has no title.
	ErrCardTitleEmpty = errors.New("card title cannot be empty")

	// ErrCardPointsEmpty is returned when a card has no content points.
	ErrCardPointsEmpty = errors.New("card must have at least one point")
)

// Card is one unit of generated study content.
type Card struct {
	ID     uuid.UUID `json:"id"`
	Index  int       `json:"index"`
	Title  string    `json:"title"`
	Points []string  `json:"points"`
	Code   string    `json:"code,omitempty"`
}

// NewCard creates a Card with a fresh ID. Title and points are trimmed and
// blank points dropped before validation.
func NewCard(index int, title string, points []string, code string) (*Card, error) {
	cleaned := make([]string, 0, len(points))
	for _, p := range points {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	card := &Card{
		ID:     uuid.New(),
		Index:  index,
		Title:  strings.TrimSpace(title),
		Points: cleaned,
		Code:   strings.TrimSpace(code),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.Title == "" {
		return ErrCardTitleEmpty
	}

	if len(c.Points) == 0 && c.Code == "" {
		return ErrCardPointsEmpty
	}

	return nil
}
