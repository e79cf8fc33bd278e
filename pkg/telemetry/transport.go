package telemetry

import (
	"net/http"
	"time"
)

// Transport performs one HTTP round trip. *http.Client satisfies it.
// Production clients use the default transport; tests substitute a
// stub returning canned responses.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPTransport(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
