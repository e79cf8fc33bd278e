package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Client talks to the telemetry service. It is safe for concurrent
// use: the config is immutable and calls share no state.
type Client struct {
	config    Config
	transport Transport
	logger    *slog.Logger
}

// New creates a Client with the given configuration and the default
// HTTP transport.
func New(cfg Config) *Client {
	return NewWithTransport(cfg, newHTTPTransport(cfg.Timeout))
}

// NewWithTransport creates a Client that sends requests through the
// given Transport. Tests use this to substitute a fake transport.
func NewWithTransport(cfg Config, t Transport) *Client {
	return &Client{
		config:    cfg,
		transport: t,
		logger:    slog.Default(),
	}
}

// StartParams are the inputs to StartSession. APIKey, Project and
// ServerURL, when set, override the client configuration for this
// call only.
type StartParams struct {
	APIKey    string
	Project   string
	ServerURL string

	Source      string
	SessionName string
	Metadata    map[string]any

	Verbose bool
}

// EventParams are the inputs to LogEvent. SessionID is forwarded to
// the server unvalidated; a bad session id surfaces as the server's
// rejection, not a client-side check.
type EventParams struct {
	APIKey    string
	Project   string
	ServerURL string

	SessionID  SessionID
	EventName  string
	EventType  EventType
	Config     map[string]any
	Inputs     map[string]any
	Outputs    map[string]any
	Metadata   map[string]any
	DurationMS float64

	Verbose bool
}

// UpdateParams are the inputs to UpdateEvent. At least one of Metrics
// or Feedback must be set. Update calls need no project.
type UpdateParams struct {
	APIKey    string
	ServerURL string

	EventID  EventID
	Metrics  map[string]float64
	Feedback map[string]any

	Verbose bool
}

// StartSession creates a new session and returns the server-issued
// session id.
func (c *Client) StartSession(ctx context.Context, p StartParams) (SessionID, error) {
	cfg := c.config.resolved(p.APIKey, p.Project, p.ServerURL)
	if err := cfg.validate(true); err != nil {
		return "", err
	}
	if p.Source == "" {
		return "", &ArgumentError{Field: "source"}
	}

	body := startRequest{
		Project:     cfg.Project,
		Source:      p.Source,
		SessionName: p.SessionName,
		Metadata:    p.Metadata,
	}
	var resp startResponse
	if err := c.send(ctx, cfg, http.MethodPost, "/session/start", body, &resp, p.Verbose); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &ResponseError{Field: "session_id"}
	}
	return SessionID(resp.SessionID), nil
}

// LogEvent records an event in a session and returns the server-issued
// event id.
func (c *Client) LogEvent(ctx context.Context, p EventParams) (EventID, error) {
	cfg := c.config.resolved(p.APIKey, p.Project, p.ServerURL)
	if err := cfg.validate(true); err != nil {
		return "", err
	}
	if p.SessionID == "" {
		return "", &ArgumentError{Field: "session_id"}
	}
	if p.EventName == "" {
		return "", &ArgumentError{Field: "event_name"}
	}
	if p.EventType == "" {
		return "", &ArgumentError{Field: "event_type"}
	}

	body := eventRequest{
		SessionID:  string(p.SessionID),
		EventName:  p.EventName,
		EventType:  string(p.EventType),
		Config:     p.Config,
		Inputs:     p.Inputs,
		Outputs:    p.Outputs,
		Metadata:   p.Metadata,
		DurationMS: p.DurationMS,
	}
	var resp eventResponse
	if err := c.send(ctx, cfg, http.MethodPost, "/events", body, &resp, p.Verbose); err != nil {
		return "", err
	}
	if resp.EventID == "" {
		return "", &ResponseError{Field: "event_id"}
	}
	return EventID(resp.EventID), nil
}

// UpdateEvent amends a logged event with metrics and/or feedback. Any
// 2xx response is success. Sending the same update twice is harmless;
// the server state ends up the same.
func (c *Client) UpdateEvent(ctx context.Context, p UpdateParams) error {
	cfg := c.config.resolved(p.APIKey, "", p.ServerURL)
	if err := cfg.validate(false); err != nil {
		return err
	}
	if p.EventID == "" {
		return &ArgumentError{Field: "event_id"}
	}
	if len(p.Metrics) == 0 && len(p.Feedback) == 0 {
		return &ArgumentError{Field: "metrics/feedback", Reason: "at least one of metrics or feedback must be provided"}
	}

	body := updateRequest{
		EventID:  string(p.EventID),
		Metrics:  p.Metrics,
		Feedback: p.Feedback,
	}
	return c.send(ctx, cfg, http.MethodPut, "/events", body, nil, p.Verbose)
}

// send issues one JSON round trip. out may be nil when only the status
// code matters.
func (c *Client) send(ctx context.Context, cfg Config, method, path string, in, out any, verbose bool) error {
	verbose = verbose || cfg.Verbose

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.ServerURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	reqID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("X-Request-ID", reqID)

	if verbose {
		c.logger.Info("telemetry request",
			"method", method,
			"url", req.URL.String(),
			"request_id", reqID,
		)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		if verbose {
			c.logger.Error("telemetry request failed", "request_id", reqID, "error", err)
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if verbose {
			c.logger.Error("telemetry API error",
				"request_id", reqID,
				"status", resp.StatusCode,
				"body", string(respBody),
			)
		}
		return &TransportError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if verbose {
		c.logger.Info("telemetry response", "request_id", reqID, "status", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &ResponseError{Err: err}
	}
	return nil
}
