package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestLoadBackground(t *testing.T) {
	t.Run("built-in background", func(t *testing.T) {
		uri, err := LoadBackground("")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(uri), "data:image/svg+xml;base64,"), string(uri)[:40])
	})

	t.Run("type detected from content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "image.jpg")
		require.NoError(t, os.WriteFile(path, tinyPNG, 0o600))

		uri, err := LoadBackground(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(uri), "data:image/png;base64,"))
	})

	t.Run("non-image rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

		_, err := LoadBackground(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBackground(filepath.Join(t.TempDir(), "missing.png"))
		assert.Error(t, err)
	})
}

func TestPageRender(t *testing.T) {
	page, err := NewPage("")
	require.NoError(t, err)

	t.Run("empty form", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf, PageData{}))

		html := buf.String()
		assert.Contains(t, html, AppTitle)
		assert.Contains(t, html, "Target language - English")
		assert.Contains(t, html, `name="url"`)
		assert.Contains(t, html, `name="keywords"`)
		assert.Contains(t, html, "Generate Note Cards")
		assert.NotContains(t, html, "<iframe")
		assert.NotContains(t, html, `class="note-card"`)
		assert.NotContains(t, html, `role="alert"`)
	})

	t.Run("video and cards", func(t *testing.T) {
		var buf bytes.Buffer
		err := page.Render(&buf, PageData{
			URL:      "https://www.youtube.com/watch?v=abc12345678",
			Keywords: "greeting",
			Video:    NewVideoView("abc12345678"),
			Cards: []CardView{
				{Number: 1, Title: "Hi", Points: []string{"a"}, Color: Palette[0]},
				{Number: 2, Title: "Bye", Points: []string{"b"}, Code: "fmt.Println(1 < 2)", Color: Palette[1]},
			},
		})
		require.NoError(t, err)

		html := buf.String()
		assert.Contains(t, html, `src="https://www.youtube.com/embed/abc12345678"`)
		assert.Equal(t, 2, strings.Count(html, `class="note-card"`))
		assert.Contains(t, html, "Note Card 2")
		assert.Contains(t, html, Palette[0])
		assert.Contains(t, html, "fmt.Println(1 &lt; 2)")
		assert.Contains(t, html, `value="greeting"`)
	})

	t.Run("error is escaped", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf, PageData{Error: "<script>alert(1)</script>"}))

		html := buf.String()
		assert.Contains(t, html, `role="alert"`)
		assert.NotContains(t, html, "<script>alert(1)</script>")
	})

	t.Run("translation notice", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf, PageData{Translated: true, SourceLanguage: "de"}))
		assert.Contains(t, buf.String(), "Transcript translated from German.")
	})
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "Hindi", LanguageName("hi"))
	assert.Equal(t, "not a tag!", LanguageName("not a tag!"))
}
