package logger

import (
	"bytes"
	"strings"
	"testing"
)

const testHexKey = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"

func TestRedactionInHandler(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		value      string
		wantMasked string
		wantAbsent string
	}{
		{
			name:       "hex admin key value masked by shape",
			key:        "url",
			value:      testHexKey,
			wantMasked: "aabb...8899",
			wantAbsent: testHexKey,
		},
		{
			name:       "authorization value masked",
			key:        "header",
			value:      "AdminKey c2lnbmF0dXJl",
			wantMasked: "AdminKey ***",
			wantAbsent: "c2lnbmF0dXJl",
		},
		{
			name:       "passphrase key fully redacted",
			key:        "passphrase",
			value:      "hunter2hunter2",
			wantMasked: redactedValue,
			wantAbsent: "hunter2",
		},
		{
			name:       "admin_key key redacted even for short values",
			key:        "admin_key",
			value:      "short",
			wantMasked: redactedValue,
			wantAbsent: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: "info", Format: "json", Output: &buf})
			l.Info("op", tt.key, tt.value)

			out := buf.String()
			if !strings.Contains(out, tt.wantMasked) {
				t.Errorf("masked form %q missing from %q", tt.wantMasked, out)
			}
			if tt.wantAbsent != "" && strings.Contains(out, tt.wantAbsent) {
				t.Errorf("secret %q leaked into %q", tt.wantAbsent, out)
			}
		})
	}
}

func TestRedactionInGroups(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})
	l.With("profile", "prod").WithGroup("credentials").Info("op", "secret", "opensesame")

	out := buf.String()
	if strings.Contains(out, "opensesame") {
		t.Errorf("grouped secret leaked: %q", out)
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{testHexKey, "aabb...8899"},
		{"AdminKey abc123", "AdminKey ***"},
		{"plain value", "plain value"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RedactString(tt.in); got != tt.want {
			t.Errorf("RedactString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	if got := maskValue("0123456789ab"); got != "***" {
		t.Errorf("short mask = %q", got)
	}
	if got := maskValue(testHexKey); got != "aabb...8899" {
		t.Errorf("mask = %q", got)
	}
}
