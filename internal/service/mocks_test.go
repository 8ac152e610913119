package service

import (
	"context"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
	"github.com/stretchr/testify/mock"
)

// MockTranscriptRetriever mocks the TranscriptRetriever interface
type MockTranscriptRetriever struct {
	mock.Mock
}

func (m *MockTranscriptRetriever) Retrieve(
	ctx context.Context,
	id domain.VideoID,
	defaultLang string,
) (domain.Transcript, error) {
	args := m.Called(ctx, id, defaultLang)
	return args.Get(0).(domain.Transcript), args.Error(1)
}

// MockTranslationGate mocks the TranslationGate interface
type MockTranslationGate struct {
	mock.Mock
}

func (m *MockTranslationGate) Apply(
	ctx context.Context,
	t domain.Transcript,
	targetLang string,
) (domain.Transcript, error) {
	args := m.Called(ctx, t, targetLang)
	return args.Get(0).(domain.Transcript), args.Error(1)
}

// MockCardGenerator mocks the CardGenerator interface
type MockCardGenerator struct {
	mock.Mock
}

func (m *MockCardGenerator) Generate(
	ctx context.Context,
	req generation.Request,
) (*generation.ParseResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.ParseResult), args.Error(1)
}
