package telemetry

import (
	"os"
	"time"
)

// Environment variables consulted by FromEnv.
const (
	EnvAPIKey    = "HH_API_KEY"
	EnvProject   = "HH_PROJECT"
	EnvServerURL = "HH_API_URL"
)

const (
	DefaultServerURL = "https://api.honeyhive.ai"
	DefaultTimeout   = 30 * time.Second
)

// Config carries the credentials and connection settings for a Client.
// A zero ServerURL means DefaultServerURL; a zero Timeout means
// DefaultTimeout.
type Config struct {
	APIKey    string
	Project   string
	ServerURL string
	Timeout   time.Duration

	// Verbose enables diagnostic logging for every call made through
	// the client. Individual calls can also opt in via their params.
	Verbose bool
}

// FromEnv builds a Config from the process environment. The
// environment is read once, here; a Client built from the result does
// not observe later environment changes.
func FromEnv() Config {
	return Config{
		APIKey:    os.Getenv(EnvAPIKey),
		Project:   os.Getenv(EnvProject),
		ServerURL: os.Getenv(EnvServerURL),
	}
}

// resolved applies per-call overrides on top of the client config.
// Explicit call values win over whatever the client was built with.
func (c Config) resolved(apiKey, project, serverURL string) Config {
	out := c
	if apiKey != "" {
		out.APIKey = apiKey
	}
	if project != "" {
		out.Project = project
	}
	if serverURL != "" {
		out.ServerURL = serverURL
	}
	if out.ServerURL == "" {
		out.ServerURL = DefaultServerURL
	}
	return out
}

// validate checks that the credentials a call needs are present.
// Update calls carry no project, so project is only required when
// needProject is set.
func (c Config) validate(needProject bool) error {
	if c.APIKey == "" {
		return &ConfigError{Missing: "API key", Env: EnvAPIKey}
	}
	if needProject && c.Project == "" {
		return &ConfigError{Missing: "project", Env: EnvProject}
	}
	return nil
}
