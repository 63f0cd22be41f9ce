package adminapi

import "time"

// Metrics observes executed calls. Implementations must be safe for
// concurrent use; a transport failure is reported with status code 0.
type Metrics interface {
	ObserveRequest(method string, statusCode int, elapsed time.Duration)
}

// nopMetrics is the default sink when the caller wires none.
type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, int, time.Duration) {}
