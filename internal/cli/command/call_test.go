package command

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCallCommand(t *testing.T) {
	cmd := CallCommand()
	if cmd == nil {
		t.Fatal("CallCommand returned nil")
	}
	if cmd.Name != "call" {
		t.Errorf("Name = %q, want %q", cmd.Name, "call")
	}

	flagNames := make(map[string]bool)
	for _, flag := range cmd.Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"data", "query", "header", "content-type"} {
		if !flagNames[name] {
			t.Errorf("call should have --%s flag", name)
		}
	}
}

func TestCall_MissingArgs(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	ctx := testContext(server)
	if err := callAction(ctx); err == nil {
		t.Error("callAction() expected error without METHOD and PATH")
	}

	ctx = testContext(server, "GET")
	if err := callAction(ctx); err == nil {
		t.Error("callAction() expected error with METHOD only")
	}
}

func TestCall_GetJSON(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle("/api/v4/admin/tenant/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			errorResponse(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"TenantId": testTenantID})
	})

	ctx := testContext(server, "GET", "/api/v4/admin/tenant/info")
	if err := callAction(ctx); err != nil {
		t.Errorf("callAction() error = %v", err)
	}
}

func TestCall_QueryAndHeaders(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var rawQuery, custom string
	server.handle("/api/", func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		custom = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusOK)
	})

	ctx := makeTestContext(server, map[string]any{
		"query":  []string{"a=1", "dry-run"},
		"header": []string{"X-Custom: zk"},
	}, []string{"GET", "/api/v4/admin/tenant/info"})

	if err := callAction(ctx); err != nil {
		t.Fatalf("callAction() error = %v", err)
	}

	if rawQuery != "a=1&dry-run" {
		t.Errorf("raw query = %q, want a=1&dry-run", rawQuery)
	}
	if custom != "zk" {
		t.Errorf("X-Custom = %q, want zk", custom)
	}
}

func TestCall_DataFromFile(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var body []byte
	server.handle("/api/", func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	src := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(src, []byte(`{"x":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := makeTestContext(server, map[string]any{
		"data": "@" + src,
	}, []string{"POST", "/api/v4/admin/something"})

	if err := callAction(ctx); err != nil {
		t.Fatalf("callAction() error = %v", err)
	}
	if string(body) != `{"x":1}` {
		t.Errorf("body = %q", body)
	}
}

func TestCall_InlineData(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var body []byte
	server.handle("/api/", func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	ctx := makeTestContext(server, map[string]any{
		"data": `{"y":2}`,
	}, []string{"POST", "/api/v4/admin/something"})

	if err := callAction(ctx); err != nil {
		t.Fatalf("callAction() error = %v", err)
	}
	if string(body) != `{"y":2}` {
		t.Errorf("body = %q", body)
	}
}

func TestCall_BadHeader(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	ctx := makeTestContext(server, map[string]any{
		"header": []string{"noseparator"},
	}, []string{"GET", "/api/v4/admin/tenant/info"})

	err := callAction(ctx)
	if err == nil {
		t.Fatal("callAction() expected error for malformed header")
	}
	if !strings.Contains(err.Error(), "NAME:VALUE") {
		t.Errorf("error = %v, want NAME:VALUE hint", err)
	}
}

func TestCall_BadMethod(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	ctx := testContext(server, "BREW", "/api/v4/admin/tenant/info")
	if err := callAction(ctx); err == nil {
		t.Error("callAction() expected error for unsupported method")
	}
}
