package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/hhlog/internal/state"
	"github.com/user/hhlog/pkg/telemetry"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd, sessionListCmd, sessionCurrentCmd, sessionClearCmd)

	sessionStartCmd.Flags().String("source", "cli", "source tag for the session")
	sessionStartCmd.Flags().String("name", "", "session name")
	sessionStartCmd.Flags().StringArray("meta", nil, "metadata key=value (repeatable)")

	sessionCurrentCmd.Flags().String("project", "", "project to look up (default: configured project)")
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new session and print its id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		source, _ := cmd.Flags().GetString("source")
		name, _ := cmd.Flags().GetString("name")
		metaPairs, _ := cmd.Flags().GetStringArray("meta")

		metadata, err := parseKeyValues(metaPairs)
		if err != nil {
			return err
		}

		client := newClient(cfg)
		id, err := client.StartSession(context.Background(), telemetry.StartParams{
			Source:      source,
			SessionName: name,
			Metadata:    metadata,
		})
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		store := state.NewStore(cfg.DataDir)
		if err := store.Add(context.Background(), &state.Record{
			SessionID:   string(id),
			Project:     cfg.API.Project,
			SessionName: name,
			Source:      source,
		}); err != nil {
			return fmt.Errorf("record session: %w", err)
		}

		fmt.Println(id)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions started through the CLI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := state.NewStore(cfg.DataDir)
		journal := state.NewJournal(cfg.DataDir)

		ctx := context.Background()
		list, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tNAME\tEVENTS\tCREATED")
		for _, rec := range list {
			count, err := journal.Count(ctx, rec.SessionID)
			if err != nil {
				count = 0
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				rec.SessionID,
				rec.Project,
				rec.SessionName,
				count,
				rec.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var sessionCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the most recently started session id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		project, _ := cmd.Flags().GetString("project")
		if project == "" {
			project = cfg.API.Project
		}

		store := state.NewStore(cfg.DataDir)
		rec, err := store.Current(context.Background(), project)
		if err != nil {
			return err
		}
		fmt.Println(rec.SessionID)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <id|all>",
	Short: "Forget a recorded session or all of them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := state.NewStore(cfg.DataDir)

		ctx := context.Background()
		if args[0] == "all" {
			if err := store.RemoveAll(ctx); err != nil {
				return err
			}
			fmt.Println("All sessions cleared.")
			return nil
		}

		if err := store.Remove(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Session %s cleared.\n", args[0])
		return nil
	},
}
