package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func testRedactor() *redactor {
	r := redactorFromEnv()
	r.enabled = true
	r.salt = "pepper"
	return r
}

func TestRedactorMasksAndHashes(t *testing.T) {
	got := testRedactor().pairs([]interface{}{
		"email", "a@b.com",
		"subject", "Go",
		"Client_ID", "browser-1",
		"dangling",
	})
	if len(got) != 7 {
		t.Fatalf("expected 7 items, got %d: %v", len(got), got)
	}
	if got[1] != redacted {
		t.Fatalf("email not redacted: %v", got[1])
	}
	if got[3] != "Go" {
		t.Fatalf("subject changed: %v", got[3])
	}
	h, _ := got[5].(string)
	if !strings.HasPrefix(h, "hash:") || len(h) != len("hash:")+12 || strings.Contains(h, "browser-1") {
		t.Fatalf("client_id not hashed: %v", got[5])
	}
	if got[6] != "dangling" {
		t.Fatalf("dangling key lost: %v", got[6])
	}
}

func TestRedactorDigestIsStable(t *testing.T) {
	r := testRedactor()
	if a, b := r.digest("browser-1"), r.digest("browser-1"); a != b {
		t.Fatalf("digest not stable: %q vs %q", a, b)
	}
	other := testRedactor()
	other.salt = "salt"
	if r.digest("browser-1") == other.digest("browser-1") {
		t.Fatalf("salt ignored")
	}
	if r.digest("") != "" {
		t.Fatalf("empty value should stay empty")
	}
}

func TestRedactorNestedValues(t *testing.T) {
	got := testRedactor().value("payload", map[string]interface{}{
		"api_key": "k",
		"n":       1,
		"list":    []interface{}{map[string]interface{}{"password": "p"}},
	})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["api_key"] != redacted || m["n"] != 1 {
		t.Fatalf("unexpected map: %v", m)
	}
	inner := m["list"].([]interface{})[0].(map[string]interface{})
	if inner["password"] != redacted {
		t.Fatalf("nested slice not scrubbed: %v", inner)
	}
}

func TestRedactorDisabledPassesThrough(t *testing.T) {
	r := testRedactor()
	r.enabled = false
	in := []interface{}{"token", "t-1"}
	if got := r.pairs(in); got[1] != "t-1" {
		t.Fatalf("disabled redactor changed value: %v", got)
	}
}

func TestEnvLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
		"loud":    zapcore.DebugLevel,
	}
	for raw, want := range cases {
		if got := envLevel(raw); got != want {
			t.Fatalf("envLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNopLoggerIsUsable(t *testing.T) {
	l := Nop().With("service", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
