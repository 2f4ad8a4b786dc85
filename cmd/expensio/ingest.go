package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/engine"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest bank SMS messages",
		Long: `Run one or more SMS messages through the ingestion pipeline:
extraction, categorization, duplicate detection, and budget checks.

A single message is passed with --sender and --body. A batch is read
from a JSONL file where each line is {"sender": ..., "body": ...,
"received_at": "2026-02-18T10:00:00Z"} (received_at optional).`,
		RunE: runIngest,
	}

	cmd.Flags().String("sender", "", "SMS sender id, e.g. HDFCBK")
	cmd.Flags().String("body", "", "SMS message body")
	cmd.Flags().String("received-at", "", "receive timestamp (RFC 3339, default: now)")
	cmd.Flags().String("file", "", "JSONL file of messages to ingest")

	return cmd
}

// ingestLine is one message in a JSONL batch.
type ingestLine struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	file, _ := cmd.Flags().GetString("file")
	body, _ := cmd.Flags().GetString("body")
	if file == "" && body == "" {
		return fmt.Errorf("either --body or --file is required")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, cleanup, err := initEngine(ctx, store)
	if err != nil {
		return err
	}
	defer cleanup()

	if file != "" {
		return ingestFile(cmd, eng, file)
	}

	sender, _ := cmd.Flags().GetString("sender")
	receivedAt := time.Now()
	if raw, _ := cmd.Flags().GetString("received-at"); raw != "" {
		receivedAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("invalid --received-at: %w", err)
		}
	}

	outcome := eng.ProcessInboundMessage(ctx, sender, body, receivedAt)
	fmt.Println(renderOutcome(outcome))
	return nil
}

func ingestFile(cmd *cobra.Command, eng *engine.IngestionEngine, path string) error {
	f, err := os.Open(path) // #nosec G304 -- user-supplied batch file
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	counts := make(map[engine.Outcome]int)
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line ingestLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}

		outcome := eng.ProcessInboundMessage(cmd.Context(), line.Sender, line.Body, line.ReceivedAt)
		counts[outcome]++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Processed %d messages", lineNo)))
	for _, outcome := range []engine.Outcome{
		engine.OutcomeRecorded,
		engine.OutcomeDuplicateMessage,
		engine.OutcomeDuplicateTransaction,
		engine.OutcomeNotATransaction,
		engine.OutcomeRejected,
		engine.OutcomeFailed,
	} {
		if n := counts[outcome]; n > 0 {
			fmt.Printf("  %s: %d\n", outcome, n)
		}
	}
	return nil
}

func renderOutcome(outcome engine.Outcome) string {
	switch outcome {
	case engine.OutcomeRecorded:
		return cli.SuccessStyle.Render("Transaction recorded.")
	case engine.OutcomeDuplicateMessage:
		return cli.InfoStyle.Render("Duplicate message, skipped.")
	case engine.OutcomeDuplicateTransaction:
		return cli.InfoStyle.Render("Transaction already recorded, skipped.")
	case engine.OutcomeNotATransaction:
		return cli.SubtleStyle.Render("Not a transaction message.")
	case engine.OutcomeRejected:
		return cli.WarningStyle.Render("Message rejected: nothing to process.")
	default:
		return cli.ErrorStyle.Render("Processing failed, see logs.")
	}
}
