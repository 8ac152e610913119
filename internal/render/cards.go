package render

import (
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// CardView is a card ready for display.
type CardView struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Points []string `json:"points"`
	Code   string   `json:"code,omitempty"`
	Color  string   `json:"color"`
}

// FormatCards builds one view per card, numbered from 1 in order. Point text is
// passed through untouched; each point is its own list item.
func FormatCards(cards []domain.Card, picker ColorPicker) []CardView {
	if picker == nil {
		picker = CyclePicker{}
	}
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		points := make([]string, len(c.Points))
		copy(points, c.Points)
		views = append(views, CardView{
			Number: i + 1,
			Title:  c.Title,
			Points: points,
			Code:   c.Code,
			Color:  picker.Pick(i),
		})
	}
	return views
}
