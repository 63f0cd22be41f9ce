package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/pkg/adminapi"
)

func TestUserCommand(t *testing.T) {
	cmd := UserCommand()
	if cmd == nil {
		t.Fatal("UserCommand returned nil")
	}
	if cmd.Name != "user" {
		t.Errorf("Name = %q, want %q", cmd.Name, "user")
	}

	subNames := make(map[string]bool)
	for _, sub := range cmd.Subcommands {
		subNames[sub.Name] = true
	}
	for _, name := range []string{"init-registration", "validate", "set-state"} {
		if !subNames[name] {
			t.Errorf("missing subcommand: %s", name)
		}
	}
}

func TestUserCommand_ValidateFlags(t *testing.T) {
	cmd := UserCommand()

	var validateCmd *cli.Command
	for _, sub := range cmd.Subcommands {
		if sub.Name == "validate" {
			validateCmd = sub
			break
		}
	}
	if validateCmd == nil {
		t.Fatal("validate subcommand not found")
	}

	flagNames := make(map[string]bool)
	for _, flag := range validateCmd.Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"session-id", "session-verifier", "validation-verifier"} {
		if !flagNames[name] {
			t.Errorf("validate should have --%s flag", name)
		}
	}
}

func TestUserInitRegistration_Success(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var sawAuth bool
	server.handle(pathInitUserRegistration, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			errorResponse(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
			return
		}
		sawAuth = strings.HasPrefix(r.Header.Get("Authorization"), "AdminKey ")
		jsonResponse(w, http.StatusOK, map[string]any{
			"UserId":             "20250821.u5k3@exampletn.tresorit.io",
			"RegSessionId":       "sess-0001",
			"RegSessionVerifier": "verif-0001",
		})
	})

	ctx := testContext(server)
	if err := userInitRegistration(ctx); err != nil {
		t.Errorf("userInitRegistration() error = %v", err)
	}
	if !sawAuth {
		t.Error("request should carry an AdminKey authorization header")
	}
}

func TestUserInitRegistration_APIError(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle(pathInitUserRegistration, func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusForbidden, "InvalidAuthorization", "signature mismatch")
	})

	ctx := testContext(server)
	err := userInitRegistration(ctx)
	if err == nil {
		t.Fatal("userInitRegistration() expected error")
	}

	var apiErr *adminapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v should unwrap to *adminapi.APIError", err)
	}
	if apiErr.Code != "InvalidAuthorization" {
		t.Errorf("Code = %q, want InvalidAuthorization", apiErr.Code)
	}
}

func TestUserValidate_Success(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var body map[string]any
	server.handle(pathValidateUser, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			errorResponse(w, http.StatusBadRequest, "BadInput", err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	ctx := makeTestContext(server, map[string]any{
		"session-id":          "sess-0001",
		"session-verifier":    "verif-0001",
		"validation-verifier": "check-0001",
	}, nil)

	if err := userValidate(ctx); err != nil {
		t.Fatalf("userValidate() error = %v", err)
	}

	if body["RegSessionId"] != "sess-0001" {
		t.Errorf("RegSessionId = %v", body["RegSessionId"])
	}
	if body["RegSessionVerifier"] != "verif-0001" {
		t.Errorf("RegSessionVerifier = %v", body["RegSessionVerifier"])
	}
	if body["RegValidationVerifier"] != "check-0001" {
		t.Errorf("RegValidationVerifier = %v", body["RegValidationVerifier"])
	}
}

func TestUserSetState_Enable(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var body map[string]any
	server.handle(pathSetUserState, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	})

	ctx := makeTestContext(server, map[string]any{"enabled": true}, []string{"user-123"})
	if err := userSetState(ctx); err != nil {
		t.Fatalf("userSetState() error = %v", err)
	}

	if body["UserId"] != "user-123" {
		t.Errorf("UserId = %v, want user-123", body["UserId"])
	}
	if body["Enabled"] != true {
		t.Errorf("Enabled = %v, want true", body["Enabled"])
	}
}

func TestUserSetState_Disable(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var body map[string]any
	server.handle(pathSetUserState, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	})

	ctx := makeTestContext(server, map[string]any{"disabled": true}, []string{"user-123"})
	if err := userSetState(ctx); err != nil {
		t.Fatalf("userSetState() error = %v", err)
	}

	if body["Enabled"] != false {
		t.Errorf("Enabled = %v, want false", body["Enabled"])
	}
}

func TestUserSetState_MissingID(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	ctx := testContext(server)
	err := userSetState(ctx)
	if err == nil {
		t.Fatal("userSetState() expected error for missing ID")
	}
	if !strings.Contains(err.Error(), "user ID required") {
		t.Errorf("expected 'user ID required' error, got: %v", err)
	}
}

func TestUserSetState_RequiresExactlyOneStateFlag(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	// Neither flag.
	ctx := testContext(server, "user-123")
	if err := userSetState(ctx); err == nil {
		t.Error("userSetState() should reject a call without --enabled or --disabled")
	}

	// Both flags.
	ctx = makeTestContext(server, map[string]any{"enabled": true, "disabled": true}, []string{"user-123"})
	if err := userSetState(ctx); err == nil {
		t.Error("userSetState() should reject --enabled together with --disabled")
	}
}

func TestUserSetState_UserNotExists(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle(pathSetUserState, func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusBadRequest, "UserNotExists", "no such user")
	})

	ctx := makeTestContext(server, map[string]any{"enabled": true}, []string{"user-void"})
	err := userSetState(ctx)
	if err == nil {
		t.Fatal("userSetState() expected error")
	}

	var apiErr *adminapi.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "UserNotExists" {
		t.Errorf("error = %v, want APIError UserNotExists", err)
	}
}
