package telemetry

// SessionID identifies a server-side session. It is opaque to the
// client and always exactly the value the server returned.
type SessionID string

// EventID identifies a server-side event.
type EventID string

// EventType tags the kind of work an event records. The set is open;
// any non-empty value is sent to the server as-is.
type EventType string

const (
	EventTypeModel EventType = "model"
	EventTypeChain EventType = "chain"
	EventTypeTool  EventType = "tool"
)

// startRequest is the session/start request body.
type startRequest struct {
	Project     string         `json:"project"`
	Source      string         `json:"source"`
	SessionName string         `json:"session_name,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type startResponse struct {
	SessionID string `json:"session_id"`
}

// eventRequest is the events POST request body.
type eventRequest struct {
	SessionID  string         `json:"session_id"`
	EventName  string         `json:"event_name"`
	EventType  string         `json:"event_type"`
	Config     map[string]any `json:"config,omitempty"`
	Inputs     map[string]any `json:"inputs,omitempty"`
	Outputs    map[string]any `json:"outputs,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	DurationMS float64        `json:"duration_ms,omitempty"`
}

type eventResponse struct {
	EventID string `json:"event_id"`
}

// updateRequest is the events PUT request body.
type updateRequest struct {
	EventID  string             `json:"event_id"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Feedback map[string]any     `json:"feedback,omitempty"`
}
