package clients

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
)

// MockTranslator is a mock implementation of Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (*TranslationResult, error) {
	args := m.Called(ctx, text, targetLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TranslationResult), args.Error(1)
}

func (m *MockTranslator) Name() string {
	args := m.Called()
	return args.String(0)
}

// MockLanguageDetector is a mock implementation of LanguageDetector
type MockLanguageDetector struct {
	mock.Mock
}

func (m *MockLanguageDetector) DetectLanguage(ctx context.Context, text string) (mo.Option[string], error) {
	args := m.Called(ctx, text)
	return args.Get(0).(mo.Option[string]), args.Error(1)
}
