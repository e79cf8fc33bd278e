// Package state keeps local filesystem records of what the CLI sent:
// sessions started through it and the events logged into them. It is a
// convenience layer for the CLI only; the telemetry client itself is
// stateless.
package state
