package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// GoogleTranslator translates through the Cloud Translation v2 API.
type GoogleTranslator struct {
	svc *translatev2.Service
}

// NewGoogleTranslator creates a translator authenticated with an API key.
// An empty endpoint uses the public API.
func NewGoogleTranslator(ctx context.Context, apiKey, endpoint string, opts ...option.ClientOption) (*GoogleTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("translation API key cannot be empty")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := translatev2.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return &GoogleTranslator{svc: svc}, nil
}

// Translate implements Translator. The source language is detected upstream.
// The text travels in a POST body; transcripts are far longer than a query string allows.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := g.svc.Translations.Translate(&translatev2.TranslateTextRequest{
		Q:      []string{text},
		Target: targetLang,
		Format: "text",
	}).Context(ctx).Do()
	if err != nil {
		return "", mapGoogleError(err)
	}
	if resp == nil || len(resp.Translations) == 0 {
		return "", fmt.Errorf("%w: no translations returned", domain.ErrUpstreamEmpty)
	}

	translated := strings.TrimSpace(resp.Translations[0].TranslatedText)
	if translated == "" {
		return "", fmt.Errorf("%w: translation is empty", domain.ErrUpstreamEmpty)
	}
	return translated, nil
}

var quotaReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
	"quotaExceeded":         true,
}

func mapGoogleError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
		}
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
			}
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}
