package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a sugared zap logger whose key/value pairs pass through a
// redactor before they are written.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a logger for mode ("production" or "development"). LOG_LEVEL
// overrides the default debug level.
func New(mode string) (*Logger, error) {
	base, err := zapConfig(mode).Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: base.Sugar()}, nil
}

// Nop discards everything. Used by tests and the CLI.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func zapConfig(mode string) zap.Config {
	cfg := zap.NewDevelopmentConfig()
	if m := strings.ToLower(strings.TrimSpace(mode)); m == "prod" || m == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(envLevel(os.Getenv("LOG_LEVEL")))
	return cfg
}

// envLevel parses a level name, falling back to debug.
func envLevel(raw string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || strings.TrimSpace(raw) == "" {
		return zapcore.DebugLevel
	}
	return lvl
}

func (l *Logger) Sync() { _ = l.SugaredLogger.Sync() }

func (l *Logger) Debug(msg string, kv ...interface{}) {
	l.SugaredLogger.Debugw(msg, scrub(kv)...)
}

func (l *Logger) Info(msg string, kv ...interface{}) {
	l.SugaredLogger.Infow(msg, scrub(kv)...)
}

func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.SugaredLogger.Warnw(msg, scrub(kv)...)
}

func (l *Logger) Error(msg string, kv ...interface{}) {
	l.SugaredLogger.Errorw(msg, scrub(kv)...)
}

func (l *Logger) Fatal(msg string, kv ...interface{}) {
	l.SugaredLogger.Fatalw(msg, scrub(kv)...)
}

func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(scrub(kv)...)}
}

const redacted = "[REDACTED]"

// redactor masks secret-looking keys and replaces client identifiers with a
// short salted digest so log lines about one browser can still be joined.
type redactor struct {
	enabled bool
	salt    string
	masked  []string
	hashed  []string
}

var (
	activeOnce sync.Once
	active     *redactor
)

func redactorFromEnv() *redactor {
	r := &redactor{
		enabled: true,
		salt:    strings.TrimSpace(os.Getenv("LOG_HASH_SALT")),
		masked:  []string{"token", "authorization", "password", "secret", "api_key", "apikey", "email"},
		hashed:  []string{"client_id", "client_key"},
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		r.enabled = false
	}
	return r
}

func current() *redactor {
	activeOnce.Do(func() { active = redactorFromEnv() })
	return active
}

func scrub(kv []interface{}) []interface{} { return current().pairs(kv) }

// pairs rewrites the values of a key/value list. A trailing key without a
// value is kept as is.
func (r *redactor) pairs(kv []interface{}) []interface{} {
	if !r.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(kv); i += 2 {
		name := stringify(kv[i])
		out[i] = name
		out[i+1] = r.value(normKey(name), kv[i+1])
	}
	return out
}

func (r *redactor) value(key string, v interface{}) interface{} {
	switch {
	case key != "" && containsAny(key, r.masked):
		return redacted
	case key != "" && containsAny(key, r.hashed):
		return r.digest(v)
	}
	switch t := v.(type) {
	case map[string]interface{}:
		if t == nil {
			return t
		}
		m := make(map[string]interface{}, len(t))
		for k, inner := range t {
			m[k] = r.value(normKey(k), inner)
		}
		return m
	case []interface{}:
		if t == nil {
			return t
		}
		items := make([]interface{}, len(t))
		for i, inner := range t {
			items[i] = r.value("", inner)
		}
		return items
	}
	return v
}

func (r *redactor) digest(v interface{}) string {
	s := stringify(v)
	if s == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + s))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func normKey(k string) string { return strings.ToLower(strings.TrimSpace(k)) }

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
