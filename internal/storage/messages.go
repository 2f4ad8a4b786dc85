package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// LogMessage appends one entry to the ingestion audit trail. Entries are
// write-once; there is no update path.
func (s *SQLiteStorage) LogMessage(ctx context.Context, entry *model.MessageLogEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMessageLog(entry); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sms_logs (id, user_id, sender, message, received_at, parsed, confidence_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Sender, entry.Body, entry.ReceivedAt,
		entry.Parsed, entry.Confidence, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log message: %w", err)
	}

	slog.Debug("logged inbound message",
		"id", entry.ID,
		"sender", entry.Sender,
		"parsed", entry.Parsed)
	return nil
}

// GetMessageLog retrieves one audit entry by id.
func (s *SQLiteStorage) GetMessageLog(ctx context.Context, userID, id string) (*model.MessageLogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var entry model.MessageLogEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, sender, message, received_at, parsed, confidence_score, created_at
		FROM sms_logs
		WHERE user_id = ? AND id = ?`,
		userID, id).Scan(
		&entry.ID, &entry.UserID, &entry.Sender, &entry.Body,
		&entry.ReceivedAt, &entry.Parsed, &entry.Confidence, &entry.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message log: %w", err)
	}

	return &entry, nil
}

// HasRecentMessage reports whether an identical message from the same
// sender was already logged at or after the given cutoff. This backs the
// message-level duplicate check.
func (s *SQLiteStorage) HasRecentMessage(ctx context.Context, userID, sender, body string, since time.Time) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM sms_logs
			WHERE user_id = ? AND sender = ? AND message = ? AND received_at >= ?
		)`,
		userID, sender, body, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recent messages: %w", err)
	}

	return exists, nil
}

// CountMessageLogs returns the number of audit entries for a user.
func (s *SQLiteStorage) CountMessageLogs(ctx context.Context, userID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sms_logs WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count message logs: %w", err)
	}
	return count, nil
}
