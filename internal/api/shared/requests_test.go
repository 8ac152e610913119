package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	URL      string `json:"url" validate:"required"`
	Keywords string `json:"keywords"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"url":"x","keywords":"y"}`},
		{name: "trailing comma", body: `{"url":"x",}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "unknown field", body: `{"url":"x","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"url":"x"}{"url":"y"}`, wantErr: true},
		{name: "too large", body: `{"url":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var got sampleRequest
			err := DecodeJSON(w, req, &got)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, sampleRequest{URL: "x", Keywords: "y"}, got)
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{URL: "x"}))
	assert.Error(t, ValidateRequest(&sampleRequest{}))
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}
