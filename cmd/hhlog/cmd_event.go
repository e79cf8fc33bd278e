package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/hhlog/internal/state"
	"github.com/user/hhlog/pkg/telemetry"
)

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventLogCmd, eventUpdateCmd)

	eventLogCmd.Flags().String("session", "", "session id (default: current session)")
	eventLogCmd.Flags().String("name", "", "event name (required)")
	eventLogCmd.Flags().String("type", "model", "event type (model, chain, tool, ...)")
	eventLogCmd.Flags().StringArray("input", nil, "input key=value (repeatable)")
	eventLogCmd.Flags().StringArray("output", nil, "output key=value (repeatable)")
	eventLogCmd.Flags().StringArray("meta", nil, "metadata key=value (repeatable)")
	eventLogCmd.Flags().StringArray("event-config", nil, "event config key=value (repeatable)")
	eventLogCmd.Flags().Float64("duration-ms", 0, "duration in milliseconds")
	eventLogCmd.Flags().Bool("estimate-tokens", false, "follow up with estimated token metrics")
	eventLogCmd.Flags().String("model", "", "model name for token estimation")
	eventLogCmd.MarkFlagRequired("name")

	eventUpdateCmd.Flags().StringArray("metric", nil, "metric key=value (repeatable, numeric)")
	eventUpdateCmd.Flags().StringArray("feedback", nil, "feedback key=value (repeatable)")
}

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Log and update events",
}

var eventLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an event and print its id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		ctx := context.Background()
		store := state.NewStore(cfg.DataDir)

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			rec, err := store.Current(ctx, cfg.API.Project)
			if err != nil {
				return fmt.Errorf("no --session given and %w", err)
			}
			sessionID = rec.SessionID
		}

		name, _ := cmd.Flags().GetString("name")
		eventType, _ := cmd.Flags().GetString("type")
		durationMS, _ := cmd.Flags().GetFloat64("duration-ms")

		inputs, err := flagKeyValues(cmd, "input")
		if err != nil {
			return err
		}
		outputs, err := flagKeyValues(cmd, "output")
		if err != nil {
			return err
		}
		metadata, err := flagKeyValues(cmd, "meta")
		if err != nil {
			return err
		}
		eventConfig, err := flagKeyValues(cmd, "event-config")
		if err != nil {
			return err
		}

		client := newClient(cfg)
		id, err := client.LogEvent(ctx, telemetry.EventParams{
			SessionID:  telemetry.SessionID(sessionID),
			EventName:  name,
			EventType:  telemetry.EventType(eventType),
			Config:     eventConfig,
			Inputs:     inputs,
			Outputs:    outputs,
			Metadata:   metadata,
			DurationMS: durationMS,
		})
		if err != nil {
			return fmt.Errorf("log event: %w", err)
		}

		journal := state.NewJournal(cfg.DataDir)
		if err := journal.Append(ctx, sessionID, &state.Entry{
			EventID:    string(id),
			EventName:  name,
			EventType:  eventType,
			DurationMS: durationMS,
		}); err != nil {
			return fmt.Errorf("journal event: %w", err)
		}

		if estimate, _ := cmd.Flags().GetBool("estimate-tokens"); estimate {
			model, _ := cmd.Flags().GetString("model")
			metrics, err := telemetry.EstimateTokenMetrics(model, joinValues(inputs), joinValues(outputs))
			if err != nil {
				return fmt.Errorf("estimate tokens: %w", err)
			}
			if err := client.UpdateEvent(ctx, telemetry.UpdateParams{
				EventID: id,
				Metrics: metrics,
			}); err != nil {
				return fmt.Errorf("update token metrics: %w", err)
			}
		}

		fmt.Println(id)
		return nil
	},
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update <event-id>",
	Short: "Amend a logged event with metrics or feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		metricPairs, _ := cmd.Flags().GetStringArray("metric")
		feedbackPairs, _ := cmd.Flags().GetStringArray("feedback")

		metrics, err := parseMetrics(metricPairs)
		if err != nil {
			return err
		}
		feedback, err := parseKeyValues(feedbackPairs)
		if err != nil {
			return err
		}

		client := newClient(cfg)
		if err := client.UpdateEvent(context.Background(), telemetry.UpdateParams{
			EventID:  telemetry.EventID(args[0]),
			Metrics:  metrics,
			Feedback: feedback,
		}); err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		fmt.Printf("Event %s updated.\n", args[0])
		return nil
	},
}

// flagKeyValues reads a repeatable key=value flag into a map.
func flagKeyValues(cmd *cobra.Command, name string) (map[string]any, error) {
	pairs, _ := cmd.Flags().GetStringArray(name)
	return parseKeyValues(pairs)
}

// joinValues flattens a map's values into one string, sorted by key so
// token estimates are stable.
func joinValues(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%v", m[k])
	}
	return sb.String()
}
