// Package generator builds a complete study plan for a request: topics from a
// TopicSource, a day-by-day timetable and an overview.
package generator

import (
	"context"
	"fmt"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

type Generator struct {
	source TopicSource
	now    func() time.Time
}

func New(source TopicSource) *Generator {
	if source == nil {
		source = FallbackSource{}
	}
	return &Generator{source: source, now: time.Now}
}

// WithClock returns a copy of g stamping plans with now().
func (g *Generator) WithClock(now func() time.Time) *Generator {
	cp := *g
	cp.now = now
	return &cp
}

func (g *Generator) Generate(ctx context.Context, req types.StudyRequest) (types.StudyPlan, error) {
	req = req.Normalize()

	raw, err := g.source.Topics(ctx, req.Subject, req.TotalHours())
	if err != nil {
		return types.StudyPlan{}, fmt.Errorf("generate topics: %w", err)
	}
	topics := SortTopics(raw)

	overview, err := g.source.Overview(ctx, req.Subject, raw)
	if err != nil {
		return types.StudyPlan{}, fmt.Errorf("generate overview: %w", err)
	}

	return types.StudyPlan{
		Subject:     req.Subject,
		HoursPerDay: req.HoursPerDay,
		TotalDays:   req.TotalDays,
		Overview:    overview,
		Topics:      topics,
		Timetable:   BuildTimetable(topics, req.HoursPerDay, req.TotalDays),
		Email:       req.Email,
		GeneratedAt: g.now(),
	}, nil
}
