package telemetry

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Missing: "API key", Env: EnvAPIKey}
	msg := err.Error()
	if !strings.Contains(msg, "API key") || !strings.Contains(msg, EnvAPIKey) {
		t.Errorf("expected message naming the setting and env var, got %q", msg)
	}
}

func TestArgumentErrorMessage(t *testing.T) {
	err := &ArgumentError{Field: "source"}
	if !strings.Contains(err.Error(), "source is required") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	err = &ArgumentError{Field: "metrics/feedback", Reason: "at least one of metrics or feedback must be provided"}
	if !strings.Contains(err.Error(), "at least one") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{StatusCode: 500, Body: []byte("server broke")}
	msg := err.Error()
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "server broke") {
		t.Errorf("expected status and body in message, got %q", msg)
	}

	cause := errors.New("dial tcp: refused")
	err = &TransportError{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the network cause")
	}
}

func TestResponseErrorMessage(t *testing.T) {
	err := &ResponseError{Field: "session_id"}
	if !strings.Contains(err.Error(), "session_id") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
