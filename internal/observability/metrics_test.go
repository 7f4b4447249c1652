package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/health", "200", 10*time.Millisecond)
	m.ObserveLLMRequest("gpt", "/v1/responses", "200", time.Second, 12, 3)
	m.IncPlanRejected("too_few_topics")
	m.SetReminderBacklog(map[string]int64{"queued": 4})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		`studyguide_http_requests_total{method="GET",route="/health",status="200"} 1`,
		`studyguide_llm_tokens_total{direction="input",model="gpt"} 12`,
		`studyguide_plan_rejections_total{reason="too_few_topics"} 1`,
		`studyguide_reminders{status="queued"} 4`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in exposition", want)
		}
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.IncPlanGenerated("ok")
	m.ObserveExport("pdf", "both", "ok", time.Millisecond)
	m.IncReminderDelivered("daily", "sent")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("nil metrics handler should 404, got %d", rec.Code)
	}
}

func TestParseHeaders(t *testing.T) {
	got := parseHeaders([]string{"api-key=abc", "bad", "x= "})
	if len(got) != 1 || got["api-key"] != "abc" {
		t.Fatalf("unexpected headers: %v", got)
	}
	if parseHeaders(nil) != nil {
		t.Fatalf("expected nil for no headers")
	}
}
