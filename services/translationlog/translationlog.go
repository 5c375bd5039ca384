package translationlog

import (
	"context"
	"fmt"

	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
)

var _ services.TranslationLogService = (*TranslationLogService)(nil)

// TranslationRecordsRepository is satisfied by db.PostgresTranslationRecordsRepository
type TranslationRecordsRepository interface {
	CreateTranslationRecord(ctx context.Context, record *models.TranslationRecord) error
	GetTranslationRecordsByMessageID(ctx context.Context, messageID string) ([]*models.TranslationRecord, error)
}

type TranslationLogService struct {
	recordsRepo TranslationRecordsRepository
}

func NewTranslationLogService(repo TranslationRecordsRepository) *TranslationLogService {
	return &TranslationLogService{recordsRepo: repo}
}

func (s *TranslationLogService) RecordTranslation(ctx context.Context, record *models.TranslationRecord) error {
	log.Info("📋 Starting to record translation", "message_id", record.MessageID, "language", record.LanguageCode)
	if record.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if record.LanguageCode == "" {
		return fmt.Errorf("language code cannot be empty")
	}
	if record.Attempts < 1 {
		record.Attempts = 1
	}
	if record.ID == "" {
		record.ID = core.NewID("tr")
	}

	if err := s.recordsRepo.CreateTranslationRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to create translation record: %w", err)
	}

	log.Info("📋 Completed successfully - recorded translation", "record_id", record.ID)
	return nil
}

func (s *TranslationLogService) GetTranslationsByMessageID(
	ctx context.Context,
	messageID string,
) ([]*models.TranslationRecord, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message ID cannot be empty")
	}

	records, err := s.recordsRepo.GetTranslationRecordsByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get translation records: %w", err)
	}
	return records, nil
}
