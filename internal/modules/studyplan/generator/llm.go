package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

// LLM is the subset of the model client the topic source needs.
type LLM interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

const (
	topicSystemPrompt    = "You are an expert educator and curriculum designer. Always respond with valid JSON."
	topUpSystemPrompt    = "You are an expert educator. Always respond with valid JSON."
	overviewSystemPrompt = "You are an inspiring educator who writes motivational content."
)

// LLMTopicSource asks the model for topics and an overview. Failures degrade
// to the canned content rather than failing generation.
type LLMTopicSource struct {
	llm LLM
	log *logger.Logger
}

func NewLLMTopicSource(llm LLM, baseLog *logger.Logger) *LLMTopicSource {
	return &LLMTopicSource{llm: llm, log: baseLog.With("service", "LLMTopicSource")}
}

func (s *LLMTopicSource) Topics(ctx context.Context, subject string, totalHours float64) ([]types.Topic, error) {
	topics, err := s.requestTopics(ctx, topicSystemPrompt, topicsPrompt(subject, totalHours))
	if err != nil {
		s.log.Warn("Topic generation failed, using fallback topics", "subject", subject, "error", err)
		return FallbackTopics(subject, totalHours), nil
	}

	if missing := 5 - len(topics); missing > 0 {
		extra, err := s.requestTopics(ctx, topUpSystemPrompt, topUpPrompt(subject, missing))
		if err != nil {
			s.log.Warn("Topic top-up failed", "subject", subject, "missing", missing, "error", err)
		}
		topics = append(topics, extra...)
	}
	return topics, nil
}

func (s *LLMTopicSource) Overview(ctx context.Context, subject string, topics []types.Topic) (string, error) {
	titles := make([]string, 0, len(topics))
	for _, t := range topics {
		titles = append(titles, t.Title)
	}
	text, err := s.llm.GenerateText(ctx, overviewSystemPrompt, overviewPrompt(subject, titles))
	if err != nil || strings.TrimSpace(text) == "" {
		s.log.Warn("Overview generation failed, using fallback overview", "subject", subject, "error", err)
		return FallbackOverview(subject), nil
	}
	return strings.TrimSpace(text), nil
}

func (s *LLMTopicSource) requestTopics(ctx context.Context, system, user string) ([]types.Topic, error) {
	obj, err := s.llm.GenerateJSON(ctx, system, user, "study_topics", topicsSchema())
	if err != nil {
		return nil, err
	}
	return decodeTopics(obj)
}

func decodeTopics(obj map[string]any) ([]types.Topic, error) {
	raw, ok := obj["topics"]
	if !ok {
		return nil, fmt.Errorf("model output has no topics field")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode topics: %w", err)
	}
	var topics []types.Topic
	if err := json.Unmarshal(b, &topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	out := topics[:0]
	for _, t := range topics {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func topicsPrompt(subject string, totalHours float64) string {
	return fmt.Sprintf(`Create a comprehensive study guide for %q with the following requirements:
- Total study time available: %g hours
- Generate 6-10 topics that cover the subject thoroughly
- Each topic should have: title, summary, priority (high/medium/low), difficulty (easy/medium/hard), estimated hours
- High-priority topics should be fundamental concepts
- Include key points and recommended resources for each topic
- Ensure total estimated hours is close to %g hours`, subject, totalHours, totalHours)
}

func topUpPrompt(subject string, count int) string {
	return fmt.Sprintf("Generate %d additional study topics for %q using the same structure.", count, subject)
}

func overviewPrompt(subject string, titles []string) string {
	return fmt.Sprintf(`Create a comprehensive overview for studying %q.
The study plan covers these topics: %s

Write a 2-3 paragraph overview that:
- Explains the learning journey
- Highlights the progression from basics to advanced topics
- Motivates the learner
- Mentions the practical value of studying this subject`, subject, strings.Join(titles, ", "))
}

func topicsSchema() map[string]any {
	str := map[string]any{"type": "string"}
	strList := map[string]any{"type": "array", "items": str}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"topics"},
		"properties": map[string]any{
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"title", "summary", "priority", "difficulty", "estimatedHours", "keyPoints", "resources"},
					"properties": map[string]any{
						"title":          str,
						"summary":        str,
						"priority":       map[string]any{"type": "string", "enum": []string{"high", "medium", "low"}},
						"difficulty":     map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
						"estimatedHours": map[string]any{"type": "number"},
						"keyPoints":      strList,
						"resources":      strList,
					},
				},
			},
		},
	}
}
