package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"gemini_api_key", "AIza-secret", "query", "drip irrigation"})
	if len(out) != 4 {
		t.Fatalf("unexpected length: got=%d want=4", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", out[1])
	}
	if out[3] != "drip irrigation" {
		t.Fatalf("query should pass through: %v", out[3])
	}
}

func TestSanitizeKVsHashesAddress(t *testing.T) {
	out := sanitizeKVs([]interface{}{"address", "Village Rampur, Dist. Sitapur"})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("address not hashed: %v", out[1])
	}
	again := sanitizeKVs([]interface{}{"address", "Village Rampur, Dist. Sitapur"})
	if again[1] != got {
		t.Fatalf("hash not stable: got=%v want=%v", again[1], got)
	}
}

func TestSanitizeKVsNestedProfile(t *testing.T) {
	out := sanitizeKVs([]interface{}{"profile", map[string]string{"state": "Punjab", "address": "Plot 4"}})
	m, ok := out[1].(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", out[1])
	}
	if m["state"] != "Punjab" {
		t.Fatalf("state should pass through: %v", m["state"])
	}
	if s, _ := m["address"].(string); !strings.HasPrefix(s, "hash:") {
		t.Fatalf("nested address not hashed: %v", m["address"])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 200, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]action{
		"GEMINI_API_KEY": redact,
		"database_dsn":   redact,
		"phone":          hash,
		"Address":        hash,
		"query":          keep,
		"":               keep,
	}
	for key, want := range cases {
		if got := classify(key); got != want {
			t.Errorf("classify(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestIsProduction(t *testing.T) {
	if !isProduction(" Production ") || !isProduction("prod") {
		t.Fatal("expected production modes to be recognised")
	}
	if isProduction("development") || isProduction("") {
		t.Fatal("unexpected production mode")
	}
}
