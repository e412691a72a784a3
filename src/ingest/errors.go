package ingest

import "errors"

// Setup-phase failures. Either aborts the whole sync.
var (
	// ErrUpstreamAuth means the aggregator rejected a token or credential.
	ErrUpstreamAuth = errors.New("aggregator rejected credentials")

	// ErrUpstreamUnavailable covers network failures, timeouts and 5xx
	// responses from the aggregator.
	ErrUpstreamUnavailable = errors.New("aggregator unavailable")
)
