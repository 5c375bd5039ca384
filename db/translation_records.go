package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/models"
)

type PostgresTranslationRecordsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for translation_records table
var translationRecordColumns = []string{
	"id",
	"message_id",
	"channel_id",
	"guild_id",
	"thread_id",
	"language_code",
	"source_language",
	"requester_id",
	"attempts",
	"created_at",
}

func NewPostgresTranslationRecordsRepository(db *sqlx.DB, schema string) *PostgresTranslationRecordsRepository {
	return &PostgresTranslationRecordsRepository{db: db, schema: schema}
}

// EnsureTable creates the translation_records table when it does not exist yet
func (r *PostgresTranslationRecordsRepository) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE SCHEMA IF NOT EXISTS %[1]s;
		CREATE TABLE IF NOT EXISTS %[1]s.translation_records (
			id TEXT PRIMARY KEY,
			message_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			guild_id TEXT NOT NULL DEFAULT '',
			thread_id TEXT NOT NULL,
			language_code TEXT NOT NULL,
			source_language TEXT NOT NULL DEFAULT '',
			requester_id TEXT NOT NULL DEFAULT '',
			attempts INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS translation_records_message_id_idx
			ON %[1]s.translation_records (message_id);`,
		r.schema)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure translation_records table: %w", err)
	}
	return nil
}

func (r *PostgresTranslationRecordsRepository) CreateTranslationRecord(
	ctx context.Context,
	record *models.TranslationRecord,
) error {
	if record.ID == "" {
		record.ID = core.NewID("tr")
	}

	insertColumns := translationRecordColumns[:len(translationRecordColumns)-1]
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(translationRecordColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.translation_records (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := r.db.QueryRowxContext(ctx, query,
		record.ID, record.MessageID, record.ChannelID, record.GuildID, record.ThreadID,
		record.LanguageCode, record.SourceLanguage, record.RequesterID, record.Attempts).StructScan(record)
	if err != nil {
		return fmt.Errorf("failed to create translation record: %w", err)
	}

	return nil
}

func (r *PostgresTranslationRecordsRepository) GetTranslationRecordsByMessageID(
	ctx context.Context,
	messageID string,
) ([]*models.TranslationRecord, error) {
	columnsStr := strings.Join(translationRecordColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.translation_records
		WHERE message_id = $1
		ORDER BY created_at ASC, id ASC`, columnsStr, r.schema)

	var records []*models.TranslationRecord
	if err := r.db.SelectContext(ctx, &records, query, messageID); err != nil {
		return nil, fmt.Errorf("failed to get translation records by message ID: %w", err)
	}

	return records, nil
}
