package command

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/internal/cli/config"
	"github.com/tresorit/zerokit-admin-go/internal/telemetry/metric"
)

const (
	testAdminKey = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	testTenantID = "exampletn"
)

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server
	handlers map[string]http.HandlerFunc
}

// newMockServer creates a new mock server.
func newMockServer() *mockServer {
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Find handler by path prefix match
		for pattern, handler := range m.handlers {
			if strings.HasPrefix(r.URL.Path, pattern) {
				handler(w, r)
				return
			}
		}
		http.NotFound(w, r)
	}))
	return m
}

// handle registers a handler for a path pattern.
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.handlers[pattern] = handler
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an admin API error body.
func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, map[string]string{
		"errorCode": code,
		"message":   message,
	})
}

// testEnv builds a command runtime pointed at the mock server.
func testEnv(server *mockServer) *appEnv {
	cfg := config.Default()
	cfg.Service.URL = server.URL
	cfg.Service.AdminKey = testAdminKey
	cfg.Service.TenantID = testTenantID
	cfg.Output = "json"
	return &appEnv{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: metric.NewRecorder(),
	}
}

// plainEnv builds a command runtime with no service credentials, for
// commands that never touch the network.
func plainEnv() *appEnv {
	cfg := config.Default()
	cfg.Output = "json"
	return &appEnv{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: metric.NewRecorder(),
	}
}

// testContext creates a CLI context for testing with the mock server.
func testContext(server *mockServer, args ...string) *cli.Context {
	return contextWithEnv(testEnv(server), nil, args)
}

// makeTestContext creates a CLI context with specific flags for testing
// actions. extraFlags maps flag names to their values.
func makeTestContext(server *mockServer, extraFlags map[string]any, args []string) *cli.Context {
	return contextWithEnv(testEnv(server), extraFlags, args)
}

// contextWithEnv wires an appEnv, extra flags and positional args into a
// cli.Context the way App().Run would.
func contextWithEnv(env *appEnv, extraFlags map[string]any, args []string) *cli.Context {
	app := &cli.App{
		Name:  "test",
		Flags: globalFlags(),
		Metadata: map[string]any{
			metadataEnvKey: env,
		},
	}

	allFlags := append([]cli.Flag{}, globalFlags()...)
	existing := make(map[string]bool)
	for _, f := range allFlags {
		for _, name := range f.Names() {
			existing[name] = true
		}
	}
	for name, val := range extraFlags {
		if existing[name] {
			continue
		}
		switch v := val.(type) {
		case string:
			allFlags = append(allFlags, &cli.StringFlag{Name: name, Value: v})
		case int:
			allFlags = append(allFlags, &cli.IntFlag{Name: name, Value: v})
		case bool:
			allFlags = append(allFlags, &cli.BoolFlag{Name: name, Value: v})
		case time.Duration:
			allFlags = append(allFlags, &cli.DurationFlag{Name: name, Value: v})
		case []string:
			allFlags = append(allFlags, &cli.StringSliceFlag{Name: name})
		}
		existing[name] = true
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range allFlags {
		f.Apply(set)
	}

	var cliArgs []string
	for name, val := range extraFlags {
		switch v := val.(type) {
		case string:
			if v != "" {
				cliArgs = append(cliArgs, "--"+name, v)
			}
		case int:
			if v != 0 {
				cliArgs = append(cliArgs, "--"+name, fmt.Sprintf("%d", v))
			}
		case bool:
			if v {
				cliArgs = append(cliArgs, "--"+name)
			}
		case time.Duration:
			if v != 0 {
				cliArgs = append(cliArgs, "--"+name, v.String())
			}
		case []string:
			for _, s := range v {
				cliArgs = append(cliArgs, "--"+name, s)
			}
		}
	}
	cliArgs = append(cliArgs, args...)
	set.Parse(cliArgs)

	return cli.NewContext(app, set, nil)
}
