package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/studyguide-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyguide-backend/internal/platform/envutil"
	"github.com/yungbote/studyguide-backend/internal/platform/httpx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

// Client is the subset of the OpenAI Responses API the backend uses.
type Client interface {
	// Structured outputs (json_schema)
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)

	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

// Observer receives one call per finished request.
type Observer interface {
	ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	Temperature *float64
}

func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:     envutil.String("OPENAI_API_KEY", ""),
		BaseURL:    envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		Model:      envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:    time.Duration(envutil.Int("OPENAI_TIMEOUT_SECONDS", 120)) * time.Second,
		MaxRetries: envutil.Int("OPENAI_MAX_RETRIES", 4),
	}
	if !envutil.Bool("OPENAI_DISABLE_TEMPERATURE", false) {
		t := envutil.Float("OPENAI_TEMPERATURE", 0.7)
		cfg.Temperature = &t
	}
	return cfg
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	observer   Observer

	// Models that rejected a temperature parameter once.
	noTempMu   sync.RWMutex
	noTempSeen map[string]bool
}

func New(log *logger.Logger, cfg Config, observer Observer) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &client{
		log:        log.With("service", "OpenAIClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		observer:   observer,
		noTempSeen: map[string]bool{},
	}, nil
}

// -------------------- Responses API --------------------

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`

	Text *struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text,omitempty"`

	Temperature *float64 `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage,omitempty"`
}

func extractOutputText(resp responsesResponse) (string, string) {
	var out, refusal strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, c := range item.Content {
			switch c.Type {
			case "output_text":
				out.WriteString(c.Text)
			case "refusal":
				refusal.WriteString(c.Refusal)
			}
		}
	}
	return out.String(), refusal.String()
}

func (c *client) newRequest(system, user string) *responsesRequest {
	req := &responsesRequest{
		Model: c.cfg.Model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if c.cfg.Temperature != nil && !c.modelIsNoTemp(req.Model) {
		req.Temperature = c.cfg.Temperature
	}
	return req
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if schemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if schema == nil {
		return nil, errors.New("schema required")
	}
	req := c.newRequest(system, user)
	req.Text = &struct {
		Format map[string]any `json:"format,omitempty"`
	}{Format: map[string]any{
		"type":   "json_schema",
		"name":   schemaName,
		"schema": schema,
		"strict": true,
	}}

	text, err := c.respond(ctx, req)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return obj, nil
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	return c.respond(ctx, c.newRequest(system, user))
}

func (c *client) respond(ctx context.Context, req *responsesRequest) (string, error) {
	var resp responsesResponse
	err := c.post(ctx, "/v1/responses", req, &resp)
	if err != nil && req.Temperature != nil && isUnsupportedTemperature(err) {
		c.noteNoTempModel(req.Model)
		req.Temperature = nil
		err = c.post(ctx, "/v1/responses", req, &resp)
	}
	if err != nil {
		return "", err
	}
	text, refusal := extractOutputText(resp)
	if refusal != "" {
		return "", fmt.Errorf("model refused: %s", refusal)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	return text, nil
}

func (c *client) post(ctx context.Context, path string, body *responsesRequest, out *responsesResponse) error {
	ctx = ctxutil.Default(ctx)
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	start := time.Now()

	var raw []byte
	retry := httpx.Retry{MaxRetries: c.cfg.MaxRetries, Log: c.log, Label: "OpenAI"}
	resp, err := retry.Do(ctx, func() (*http.Response, error) {
		var resp *http.Response
		var err error
		resp, raw, err = c.doOnce(ctx, path, payload)
		return resp, err
	})
	if err != nil {
		c.observe(body.Model, path, statusLabel(resp, err), time.Since(start), 0, 0)
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openai decode error: %w", err)
	}
	c.observe(body.Model, path, statusLabel(resp, nil), time.Since(start), out.Usage.InputTokens, out.Usage.OutputTokens)
	return nil
}

func (c *client) doOnce(ctx context.Context, path string, payload []byte) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpx.StatusError{Service: "openai", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) observe(model, endpoint, status string, dur time.Duration, in, out int) {
	if c.observer != nil {
		c.observer.ObserveLLMRequest(model, endpoint, status, dur, in, out)
	}
}

func statusLabel(resp *http.Response, err error) string {
	if resp != nil {
		return fmt.Sprintf("%d", resp.StatusCode)
	}
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *client) modelIsNoTemp(model string) bool {
	c.noTempMu.RLock()
	defer c.noTempMu.RUnlock()
	return c.noTempSeen[strings.ToLower(model)]
}

func (c *client) noteNoTempModel(model string) {
	c.noTempMu.Lock()
	c.noTempSeen[strings.ToLower(model)] = true
	c.noTempMu.Unlock()
	c.log.Warn("Model rejected temperature; omitting from now on", "model", model)
}

func isUnsupportedTemperature(err error) bool {
	var se *httpx.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(se.Body)
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, needle := range []string{"unsupported", "unknown parameter", "not supported", "does not support", "only the default"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
