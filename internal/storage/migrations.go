package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL COLLATE NOCASE,
					icon TEXT,
					color TEXT,
					is_default BOOLEAN NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, name)
				)`,
				`CREATE INDEX idx_categories_user ON categories(user_id)`,

				`CREATE TABLE IF NOT EXISTS sms_logs (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					sender TEXT NOT NULL,
					message TEXT NOT NULL,
					received_at DATETIME NOT NULL,
					parsed BOOLEAN NOT NULL DEFAULT 0,
					confidence_score REAL NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_sms_logs_dedup ON sms_logs(user_id, sender, received_at)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					account_id TEXT,
					category_id TEXT REFERENCES categories(id),
					amount TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('DEBIT', 'CREDIT')),
					merchant_name TEXT,
					description TEXT,
					transaction_date TEXT NOT NULL,
					source TEXT NOT NULL CHECK (source IN ('SMS', 'MANUAL', 'API')),
					sms_id TEXT REFERENCES sms_logs(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_user_date ON transactions(user_id, transaction_date)`,
				`CREATE INDEX idx_transactions_user_category ON transactions(user_id, category_id)`,
				`CREATE INDEX idx_transactions_dedup ON transactions(user_id, amount, merchant_name, transaction_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Merchant keyword map and category limits",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS merchant_category_map (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					merchant_keyword TEXT NOT NULL,
					category_id TEXT NOT NULL REFERENCES categories(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, merchant_keyword)
				)`,
				`CREATE INDEX idx_merchant_map_user ON merchant_category_map(user_id)`,

				`CREATE TABLE IF NOT EXISTS category_limits (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					category_id TEXT NOT NULL REFERENCES categories(id),
					limit_amount TEXT NOT NULL,
					period_type TEXT NOT NULL CHECK (period_type IN ('DAILY', 'WEEKLY', 'MONTHLY')),
					start_date TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, category_id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Accounts and budget alert audit trail",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					bank_name TEXT NOT NULL,
					account_name TEXT NOT NULL,
					last4_digits TEXT,
					balance TEXT NOT NULL DEFAULT '0.00',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_accounts_user ON accounts(user_id)`,

				`CREATE TABLE IF NOT EXISTS budget_alerts (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					category_id TEXT NOT NULL REFERENCES categories(id),
					alert_type TEXT NOT NULL CHECK (alert_type IN ('WARNING', 'CRITICAL')),
					message TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_budget_alerts_lookup ON budget_alerts(user_id, category_id, alert_type, created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
