package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalCards(t *testing.T) {
	views := []CardView{
		{Number: 1, Title: "Intro", Points: []string{"first point"}, Color: Palette[0]},
		{Number: 2, Title: "Code", Code: "x := 1", Color: Palette[1]},
	}

	out := TerminalCards("abc12345678", views, 60)

	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, "abc12345678")
	assert.Contains(t, out, "Note Card 1: Intro")
	assert.Contains(t, out, "first point")
	assert.Contains(t, out, "Note Card 2: Code")
	assert.Contains(t, out, "x := 1")
}

func TestTerminalError(t *testing.T) {
	assert.Contains(t, TerminalError("boom"), "Error: boom")
}

func TestTerminalProgress(t *testing.T) {
	assert.Contains(t, TerminalProgress("Extracting transcript..."), "Extracting transcript...")
}
