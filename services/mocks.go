package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/mythicavalon/EchoLang/models"
)

// MockSessionsService is a mock implementation of SessionsService
type MockSessionsService struct {
	mock.Mock
}

func (m *MockSessionsService) EnsureThread(
	ctx context.Context,
	message models.DiscordMessage,
	requester models.Identity,
) (models.ThreadHandle, bool, error) {
	args := m.Called(ctx, message, requester)
	return args.Get(0).(models.ThreadHandle), args.Bool(1), args.Error(2)
}

func (m *MockSessionsService) ResetDeletionTimer(messageID string) error {
	args := m.Called(messageID)
	return args.Error(0)
}

func (m *MockSessionsService) MarkTranslated(messageID, languageCode string) error {
	args := m.Called(messageID, languageCode)
	return args.Error(0)
}

func (m *MockSessionsService) HasTranslated(messageID, languageCode string) bool {
	args := m.Called(messageID, languageCode)
	return args.Bool(0)
}

func (m *MockSessionsService) ClaimLanguage(messageID, languageCode string) (models.ClaimResult, error) {
	args := m.Called(messageID, languageCode)
	return args.Get(0).(models.ClaimResult), args.Error(1)
}

func (m *MockSessionsService) ReleaseLanguage(messageID, languageCode string) {
	m.Called(messageID, languageCode)
}

func (m *MockSessionsService) Invalidate(messageID string) {
	m.Called(messageID)
}

func (m *MockSessionsService) Get(messageID string) mo.Option[models.TranslationSession] {
	args := m.Called(messageID)
	return args.Get(0).(mo.Option[models.TranslationSession])
}

func (m *MockSessionsService) ActiveCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockSessionsService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTranslationsService is a mock implementation of TranslationsService
type MockTranslationsService struct {
	mock.Mock
}

func (m *MockTranslationsService) RequestTranslation(
	ctx context.Context,
	request models.TranslationRequest,
) (models.TranslationOutcome, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(models.TranslationOutcome), args.Error(1)
}

func (m *MockTranslationsService) Status() models.TranslatorStatus {
	args := m.Called()
	return args.Get(0).(models.TranslatorStatus)
}

// MockTranslationLogService is a mock implementation of TranslationLogService
type MockTranslationLogService struct {
	mock.Mock
}

func (m *MockTranslationLogService) RecordTranslation(ctx context.Context, record *models.TranslationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTranslationLogService) GetTranslationsByMessageID(
	ctx context.Context,
	messageID string,
) ([]*models.TranslationRecord, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TranslationRecord), args.Error(1)
}
