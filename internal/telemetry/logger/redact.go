package logger

import (
	"log/slog"
	"regexp"
	"strings"
)

// Key fragments whose values are fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"passphrase",
	"secret",
	"credential",
	"admin_key",
	"adminkey",
	"authorization",
}

// hexKeyPattern matches tenant admin keys in their 64-character hex form.
var hexKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// adminKeyScheme prefixes signature values in Authorization headers.
const adminKeyScheme = "AdminKey "

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive checks if an attribute contains credential material and
// masks it. Value shape takes priority over key naming, so an admin key
// logged under an innocent key still gets masked.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		if hexKeyPattern.MatchString(strVal) {
			return slog.String(a.Key, maskValue(strVal))
		}
		if strings.HasPrefix(strVal, adminKeyScheme) {
			return slog.String(a.Key, adminKeyScheme+"***")
		}

		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if strVal != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the first and last four characters of a long secret so
// operators can tell keys apart without exposing them.
func maskValue(value string) string {
	if len(value) <= 12 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// RedactString masks a value the same way the log handler would. Use it
// when printing credentials outside the logging pipeline, e.g. profile
// listings.
func RedactString(value string) string {
	if hexKeyPattern.MatchString(value) {
		return maskValue(value)
	}
	if strings.HasPrefix(value, adminKeyScheme) {
		return adminKeyScheme + "***"
	}
	return value
}
