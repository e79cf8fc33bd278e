// Package telemetry is a client for the HoneyHive-style telemetry
// service. It exposes three operations, each a single synchronous HTTP
// round trip: StartSession creates a session, LogEvent records an
// event into it, and UpdateEvent amends a logged event with metrics or
// feedback.
//
// The client holds no session state. Every identifier it returns is
// exactly the value the server issued; the client never fabricates
// session or event IDs.
//
// Files in this package:
//   - client.go: Client, the three operations, request/response flow
//   - transport.go: the Transport seam (swappable for tests)
//   - config.go: Config, environment resolution, precedence
//   - errors.go: the error taxonomy
//   - types.go: identifiers and wire structs
//   - global.go: package-level convenience functions
//   - tokens.go: token-count metric estimation
package telemetry
