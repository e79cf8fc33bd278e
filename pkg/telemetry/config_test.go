package telemetry

import (
	"errors"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvProject, "env-project")
	t.Setenv(EnvServerURL, "https://example.test")

	cfg := FromEnv()
	if cfg.APIKey != "env-key" {
		t.Errorf("expected APIKey 'env-key', got %q", cfg.APIKey)
	}
	if cfg.Project != "env-project" {
		t.Errorf("expected Project 'env-project', got %q", cfg.Project)
	}
	if cfg.ServerURL != "https://example.test" {
		t.Errorf("expected ServerURL from env, got %q", cfg.ServerURL)
	}
}

func TestResolvedPrecedence(t *testing.T) {
	base := Config{APIKey: "base-key", Project: "base-project", ServerURL: "https://base.test"}

	// Explicit overrides win.
	cfg := base.resolved("call-key", "call-project", "https://call.test")
	if cfg.APIKey != "call-key" || cfg.Project != "call-project" || cfg.ServerURL != "https://call.test" {
		t.Errorf("explicit overrides not applied: %+v", cfg)
	}

	// Empty overrides keep the base values.
	cfg = base.resolved("", "", "")
	if cfg.APIKey != "base-key" || cfg.Project != "base-project" || cfg.ServerURL != "https://base.test" {
		t.Errorf("base values not preserved: %+v", cfg)
	}
}

func TestResolvedDefaultServerURL(t *testing.T) {
	cfg := Config{APIKey: "k"}.resolved("", "", "")
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
}

func TestValidate(t *testing.T) {
	var cfgErr *ConfigError

	err := Config{}.validate(true)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for missing api key, got %v", err)
	}
	if cfgErr.Env != EnvAPIKey {
		t.Errorf("expected env hint %s, got %s", EnvAPIKey, cfgErr.Env)
	}

	err = Config{APIKey: "k"}.validate(true)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for missing project, got %v", err)
	}
	if cfgErr.Env != EnvProject {
		t.Errorf("expected env hint %s, got %s", EnvProject, cfgErr.Env)
	}

	// Update calls do not need a project.
	if err := (Config{APIKey: "k"}).validate(false); err != nil {
		t.Errorf("expected no error without project requirement, got %v", err)
	}

	if err := (Config{APIKey: "k", Project: "p"}).validate(true); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
