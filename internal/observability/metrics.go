package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

// Metrics owns a private registry. Every method is safe on a nil receiver so
// callers never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	llmRequests *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	llmTokens   *prometheus.CounterVec

	plansGenerated  *prometheus.CounterVec
	planRejections  *prometheus.CounterVec
	exports         *prometheus.CounterVec
	exportDuration  *prometheus.HistogramVec
	remindersSent   *prometheus.CounterVec
	reminderBacklog *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studyguide_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "studyguide_http_inflight_requests",
			Help: "Requests currently being served.",
		}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_llm_requests_total",
			Help: "LLM API calls by model, endpoint and status.",
		}, []string{"model", "endpoint", "status"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studyguide_llm_request_duration_seconds",
			Help:    "LLM API call latency including retries.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"model", "endpoint"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_llm_tokens_total",
			Help: "LLM tokens by model and direction.",
		}, []string{"model", "direction"}),
		plansGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_plans_generated_total",
			Help: "Plan generation attempts by outcome.",
		}, []string{"outcome"}),
		planRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_plan_rejections_total",
			Help: "Rejected plans by reason.",
		}, []string{"reason"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_exports_total",
			Help: "Document exports by format, sections and status.",
		}, []string{"format", "sections", "status"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studyguide_export_duration_seconds",
			Help:    "Time to paginate and render a document.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		remindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studyguide_reminders_delivered_total",
			Help: "Reminder deliveries by kind and status.",
		}, []string{"kind", "status"}),
		reminderBacklog: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "studyguide_reminders",
			Help: "Stored reminders by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiDuration, m.apiInflight,
		m.llmRequests, m.llmDuration, m.llmTokens,
		m.plansGenerated, m.planRejections,
		m.exports, m.exportDuration,
		m.remindersSent, m.reminderBacklog,
	)
	return m
}

// Handler serves the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(model, endpoint, status).Inc()
	m.llmDuration.WithLabelValues(model, endpoint).Observe(dur.Seconds())
	if inputTokens > 0 {
		m.llmTokens.WithLabelValues(model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		m.llmTokens.WithLabelValues(model, "output").Add(float64(outputTokens))
	}
}

func (m *Metrics) IncPlanGenerated(outcome string) {
	if m == nil {
		return
	}
	m.plansGenerated.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncPlanRejected(reason string) {
	if m == nil {
		return
	}
	m.planRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveExport(format, sections, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, sections, status).Inc()
	m.exportDuration.WithLabelValues(format).Observe(dur.Seconds())
}

func (m *Metrics) IncReminderDelivered(kind, status string) {
	if m == nil {
		return
	}
	m.remindersSent.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) SetReminderBacklog(counts map[string]int64) {
	if m == nil {
		return
	}
	m.reminderBacklog.Reset()
	for status, n := range counts {
		m.reminderBacklog.WithLabelValues(status).Set(float64(n))
	}
}

// StartReminderCollector refreshes the reminder gauge from count every
// interval until ctx is done.
func (m *Metrics) StartReminderCollector(ctx context.Context, log *logger.Logger, interval time.Duration, count func(context.Context) (map[string]int64, error)) {
	if m == nil || count == nil {
		return
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			counts, err := count(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("reminder collector failed", "error", err)
			} else {
				m.SetReminderBacklog(counts)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
