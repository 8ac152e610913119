package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#34495E")).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3498db"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C62828"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

// cardStyle frames a card with its palette colour as the border.
func cardStyle(color string, width int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		MarginBottom(1)
	if width > 0 {
		s = s.Width(width)
	}
	return s
}

// TerminalCard renders one card as a bordered block.
func TerminalCard(view CardView, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Note Card %d: %s", view.Number, view.Title)))
	for _, p := range view.Points {
		b.WriteString("\n• ")
		b.WriteString(p)
	}
	if view.Code != "" {
		b.WriteString("\n\n")
		b.WriteString(codeStyle.Render(view.Code))
	}
	return cardStyle(view.Color, width).Render(b.String())
}

// TerminalCards renders the header line and every card.
func TerminalCards(videoID string, views []CardView, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(AppTitle))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Video %s, %d note cards", videoID, len(views))))
	b.WriteString("\n\n")
	for _, v := range views {
		b.WriteString(TerminalCard(v, width))
		b.WriteString("\n")
	}
	return b.String()
}

// TerminalProgress renders a progress line.
func TerminalProgress(msg string) string {
	return infoStyle.Render(msg)
}

// TerminalError renders an error line.
func TerminalError(msg string) string {
	return errorStyle.Render("Error: " + msg)
}
