package adminapi

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ServiceDomain is the DNS domain of the ZeroKit service. Admin user ids
// are derived under it.
const ServiceDomain = "tresorit.io"

const (
	// adminKeyBytes is the exact length of the decoded tenant admin key.
	adminKeyBytes = 32

	// defaultTimeout bounds a single call on the default HTTP client.
	// Callers that need different limits pass their own via WithHTTPClient
	// or cancel through the request context.
	defaultTimeout = 30 * time.Second

	defaultUserAgent = "zerokit-admin-go/1.0"
)

var (
	tenantIDPattern = regexp.MustCompile(`^[a-z][a-z0-9]{7,9}$`)
	adminKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

	// productionURLPattern matches tenant-specific production endpoints,
	// e.g. https://exampletn.api.tresorit.io/.
	productionURLPattern = regexp.MustCompile(`^https?://([a-z][a-z0-9]{7,9})\.api\.tresorit\.io/?$`)

	// hostedURLPattern matches self-hosted endpoints that carry the tenant
	// id in the path, e.g. https://zerokit.example.com/tenant-exampletn/.
	hostedURLPattern = regexp.MustCompile(`^https?://[^/]+/tenant-([a-z][a-z0-9]{7,9})/?$`)
)

// Client calls the ZeroKit tenant administration API on behalf of one
// tenant. It holds the validated service URL, the decoded admin key and the
// derived admin user identity, and signs every outgoing request.
//
// A Client is immutable after NewClient and safe for concurrent use.
type Client struct {
	tenantID    string
	serviceURL  string
	adminUserID string
	adminKey    []byte

	httpClient *http.Client
	logger     *slog.Logger
	metrics    Metrics
	userAgent  string

	// now is the signing clock; tests pin it for deterministic signatures.
	now func() time.Time
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithTenantID sets the tenant id explicitly instead of inferring it from
// the service URL.
func WithTenantID(tenantID string) Option {
	return func(c *Client) { c.tenantID = tenantID }
}

// WithHTTPClient replaces the transport used for all calls. Passing nil
// keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger for per-call debug records. Without it the
// client stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics attaches a metrics sink observing every executed call.
func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient validates the tenant credentials and returns a ready Client.
//
// serviceURL must be an absolute http or https URL; a missing trailing
// slash is added. adminKey is the 64-character hex form of the 32-byte
// tenant admin key. The tenant id is taken from WithTenantID or inferred
// from production (tenantid.api.tresorit.io) and hosted (/tenant-tenantid)
// URL shapes.
func NewClient(serviceURL, adminKey string, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    nopMetrics{},
		userAgent:  defaultUserAgent,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if serviceURL == "" {
		return nil, invalidArgf("service url is empty")
	}
	if !adminKeyPattern.MatchString(adminKey) {
		return nil, invalidArgf("admin key must be 64 hex characters")
	}
	if c.tenantID != "" && !tenantIDPattern.MatchString(c.tenantID) {
		return nil, invalidArgf("tenant id %q is malformed", c.tenantID)
	}

	if !strings.HasSuffix(serviceURL, "/") {
		serviceURL += "/"
	}
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, invalidArgf("service url %q: %v", serviceURL, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalidArgf("service url %q must be absolute http or https", serviceURL)
	}
	c.serviceURL = serviceURL

	if c.tenantID == "" {
		c.tenantID = inferTenantID(serviceURL)
		if c.tenantID == "" {
			return nil, invalidArgf("could not infer tenant id from service url %q", serviceURL)
		}
	}

	c.adminKey, err = hex.DecodeString(adminKey)
	if err != nil {
		return nil, invalidArgf("admin key is not valid hex: %v", err)
	}
	c.adminUserID = fmt.Sprintf("admin@%s.%s", c.tenantID, ServiceDomain)

	return c, nil
}

// inferTenantID extracts the tenant id from known service URL shapes,
// production first. Returns "" when neither shape matches.
func inferTenantID(serviceURL string) string {
	if m := productionURLPattern.FindStringSubmatch(serviceURL); m != nil {
		return m[1]
	}
	if m := hostedURLPattern.FindStringSubmatch(serviceURL); m != nil {
		return m[1]
	}
	return ""
}

// TenantID returns the validated or inferred tenant id.
func (c *Client) TenantID() string {
	return c.tenantID
}

// ServiceURL returns the normalized service URL, always ending in a slash.
func (c *Client) ServiceURL() string {
	return c.serviceURL
}

// AdminUserID returns the derived administrative user identity,
// admin@{tenantid}.tresorit.io.
func (c *Client) AdminUserID() string {
	return c.adminUserID
}
