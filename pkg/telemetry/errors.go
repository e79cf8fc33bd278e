package telemetry

import "fmt"

// ConfigError reports a credential or setting that could not be
// resolved from call parameters, client configuration, or the
// environment. It is raised before any request is attempted.
type ConfigError struct {
	Missing string // human name of the missing setting
	Env     string // environment variable that can supply it
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("telemetry: missing %s (set %s or pass it explicitly)", e.Missing, e.Env)
}

// ArgumentError reports a required call parameter that was not
// supplied.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("telemetry: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("telemetry: %s is required", e.Field)
}

// TransportError reports a failed HTTP round trip: either a network
// error (Err set) or a non-2xx status (StatusCode and Body set). The
// client never retries; the error surfaces to the caller as-is.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telemetry: request failed: %v", e.Err)
	}
	return fmt.Sprintf("telemetry: API error (status %d): %s", e.StatusCode, string(e.Body))
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a 2xx response whose body could not be used:
// invalid JSON, or a missing identifier field.
type ResponseError struct {
	Field string // identifier field that was absent or empty
	Err   error  // decode error, when the body was not valid JSON
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telemetry: parse response: %v", e.Err)
	}
	return fmt.Sprintf("telemetry: response missing %s", e.Field)
}

func (e *ResponseError) Unwrap() error { return e.Err }
