package telemetry

import "context"

// The package-level functions mirror the functional surface of the
// original SDK: each builds a throwaway client from the current
// process environment, so environment changes between calls take
// immediate effect. Long-lived callers should construct a Client once
// instead.

// Start starts a session using credentials resolved from the
// environment (overridable via the params).
func Start(ctx context.Context, p StartParams) (SessionID, error) {
	return New(FromEnv()).StartSession(ctx, p)
}

// Log records an event using credentials resolved from the
// environment.
func Log(ctx context.Context, p EventParams) (EventID, error) {
	return New(FromEnv()).LogEvent(ctx, p)
}

// Update amends an event using credentials resolved from the
// environment.
func Update(ctx context.Context, p UpdateParams) error {
	return New(FromEnv()).UpdateEvent(ctx, p)
}
