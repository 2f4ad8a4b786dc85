package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ImAdityaa12/expensio-app/internal/budget"
	"github.com/ImAdityaa12/expensio-app/internal/config"
	"github.com/ImAdityaa12/expensio-app/internal/engine"
	"github.com/ImAdityaa12/expensio-app/internal/llm"
	"github.com/ImAdityaa12/expensio-app/internal/notify"
	"github.com/ImAdityaa12/expensio-app/internal/resolver"
	"github.com/ImAdityaa12/expensio-app/internal/service"
	"github.com/ImAdityaa12/expensio-app/internal/sms"
	"github.com/ImAdityaa12/expensio-app/internal/storage"
)

// defaultUserID scopes all data when no user is configured. The storage
// layer is multi-tenant; the CLI runs single-user by default.
const defaultUserID = "local"

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "expensio", "expensio.db")
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func currentUserID() string {
	if id := viper.GetString("user.id"); id != "" {
		return id
	}
	return defaultUserID
}

// initEngine assembles the full ingestion pipeline. The semantic
// extraction layer is attached only when an LLM API key is configured;
// without one the rule-based layer runs alone.
func initEngine(ctx context.Context, store service.Storage) (*engine.IngestionEngine, func(), error) {
	logger := slog.Default()

	rules := sms.NewRuleExtractor(logger)

	var semantic engine.Extractor
	cleanup := func() {}

	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey != "" {
		cfg := llm.Config{
			Provider:    viper.GetString("llm.provider"),
			APIKey:      apiKey,
			Model:       viper.GetString("llm.model"),
			MaxRetries:  viper.GetInt("llm.max_retries"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			CacheTTL:    viper.GetDuration("llm.cache_ttl"),
			RateLimit:   viper.GetInt("llm.rate_limit"),
		}
		if cfg.Provider == "" {
			cfg.Provider = "gemini"
		}

		extractor, err := llm.NewSemanticExtractor(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM extractor: %w", err)
		}
		semantic = extractor
		cleanup = extractor.Close
	} else {
		logger.Debug("no LLM API key configured, using rule-based extraction only")
	}

	window := viper.GetDuration("ingest.dedup_window")
	if window == 0 {
		window = engine.DefaultDedupWindow
	}

	eng := engine.New(
		store,
		engine.NewLayeredExtractor(semantic, rules, logger),
		resolver.New(store, logger),
		budget.NewEvaluator(store, notify.NewLogNotifier(logger), logger),
		engine.Config{UserID: currentUserID(), DedupWindow: window},
		logger,
	)

	return eng, cleanup, nil
}

// parseCLIDate accepts the date formats users actually type.
func parseCLIDate(value string) (time.Time, error) {
	layouts := []string{"2006-01-02", "02/01/2006", "2-Jan-2006"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", value)
}
