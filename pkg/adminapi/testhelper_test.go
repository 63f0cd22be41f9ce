package adminapi

import (
	"testing"
	"time"
)

// Shared fixture: a production tenant with a fixed signing clock so
// signatures are reproducible against the precomputed vectors.
const (
	testAdminKey   = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	testServiceURL = "https://exampletn.api.tresorit.io"
	testAdminUser  = "admin@exampletn.tresorit.io"
	testDate       = "2024-05-14T09:30:00Z"

	// SHA-256 of the empty body.
	emptyBodySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	hmacHeadersList = "UserId,TresoritDate,Content-SHA256,Content-Type,HMACHeaders"
)

func testClock() time.Time {
	return time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
}

// newTestClient builds a client against the fixture tenant. Extra options
// may override the service URL via the variadic list.
func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(testServiceURL, testAdminKey, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.now = testClock
	return c
}

// newTestClientURL builds a fixed-clock client for an arbitrary URL, used
// by the httptest-backed tests.
func newTestClientURL(t *testing.T, serviceURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithTenantID("exampletn")}, opts...)
	c, err := NewClient(serviceURL, testAdminKey, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.now = testClock
	return c
}
