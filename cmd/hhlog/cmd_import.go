package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/spf13/cobra"
	"github.com/user/hhlog/internal/state"
	"github.com/user/hhlog/pkg/telemetry"
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("session", "", "session id for events without one (default: current session)")
	importCmd.Flags().Int("max-concurrent", 0, "max concurrent requests (default: from config)")
}

// importEvent is one line of an import file.
type importEvent struct {
	SessionID  string         `json:"session_id,omitempty"`
	EventName  string         `json:"event_name"`
	EventType  string         `json:"event_type"`
	Config     map[string]any `json:"config,omitempty"`
	Inputs     map[string]any `json:"inputs,omitempty"`
	Outputs    map[string]any `json:"outputs,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	DurationMS float64        `json:"duration_ms,omitempty"`
}

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Log every event in a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		ctx := context.Background()
		store := state.NewStore(cfg.DataDir)

		defaultSession, _ := cmd.Flags().GetString("session")
		if defaultSession == "" {
			if rec, err := store.Current(ctx, cfg.API.Project); err == nil {
				defaultSession = rec.SessionID
			}
		}

		maxConcurrent, _ := cmd.Flags().GetInt("max-concurrent")
		if maxConcurrent <= 0 {
			maxConcurrent = cfg.Import.MaxConcurrent
		}

		events, err := readImportFile(args[0], defaultSession)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("Nothing to import.")
			return nil
		}

		client := newClient(cfg)
		journal := state.NewJournal(cfg.DataDir)

		// Bounded fan-out: the semaphore caps in-flight requests.
		sem := semaphore.NewWeighted(int64(maxConcurrent))
		var wg sync.WaitGroup
		var sent, failed atomic.Int64

		for i, ev := range events {
			if err := sem.Acquire(ctx, 1); err != nil {
				return fmt.Errorf("acquire slot: %w", err)
			}
			wg.Add(1)
			go func(line int, ev importEvent) {
				defer sem.Release(1)
				defer wg.Done()

				id, err := client.LogEvent(ctx, telemetry.EventParams{
					SessionID:  telemetry.SessionID(ev.SessionID),
					EventName:  ev.EventName,
					EventType:  telemetry.EventType(ev.EventType),
					Config:     ev.Config,
					Inputs:     ev.Inputs,
					Outputs:    ev.Outputs,
					Metadata:   ev.Metadata,
					DurationMS: ev.DurationMS,
				})
				if err != nil {
					failed.Add(1)
					slog.Error("import event failed", "line", line, "event_name", ev.EventName, "error", err)
					return
				}
				sent.Add(1)

				if err := journal.Append(ctx, ev.SessionID, &state.Entry{
					EventID:    string(id),
					EventName:  ev.EventName,
					EventType:  ev.EventType,
					DurationMS: ev.DurationMS,
				}); err != nil {
					slog.Warn("journal import entry failed", "line", line, "error", err)
				}
			}(i+1, ev)
		}
		wg.Wait()

		fmt.Printf("Imported %d events, %d failed.\n", sent.Load(), failed.Load())
		if failed.Load() > 0 {
			return fmt.Errorf("%d events failed to import", failed.Load())
		}
		return nil
	},
}

// readImportFile parses a JSONL file of events, filling in the default
// session id for lines that omit one. Blank lines are skipped.
func readImportFile(path, defaultSession string) ([]importEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	var events []importEvent
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev importEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ev.SessionID == "" {
			ev.SessionID = defaultSession
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return events, nil
}
