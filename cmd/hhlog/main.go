package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/hhlog/internal/config"
	"github.com/user/hhlog/pkg/telemetry"
)

var (
	flagConfigPath string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "hhlog",
	Short:        "Log sessions and events to the telemetry service",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config",
		filepath.Join(os.Getenv("HOME"), ".hhlog", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics")
}

// loadConfig loads the config file, exiting on failure. The --verbose
// flag wins over the file setting.
func loadConfig() *config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newClient builds a telemetry client from the CLI config.
func newClient(cfg *config.Config) *telemetry.Client {
	return telemetry.New(telemetry.Config{
		APIKey:    cfg.API.Key,
		Project:   cfg.API.Project,
		ServerURL: cfg.API.ServerURL,
		Timeout:   time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Verbose:   cfg.Verbose,
	})
}

// parseKeyValues converts repeated key=value flags into a map. Values
// that parse as JSON (numbers, booleans) keep their type; everything
// else is a string.
func parseKeyValues(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid key=value pair: %q", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			out[key] = n
		} else if b, err := strconv.ParseBool(value); err == nil {
			out[key] = b
		} else {
			out[key] = value
		}
	}
	return out, nil
}

// parseMetrics converts repeated key=value flags into a numeric map.
func parseMetrics(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metric pair: %q", pair)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("metric %s must be numeric: %w", key, err)
		}
		out[key] = n
	}
	return out, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
