package generator

import (
	"context"
	"fmt"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

// TopicSource produces the topic list and the overview text for a subject.
type TopicSource interface {
	Topics(ctx context.Context, subject string, totalHours float64) ([]types.Topic, error)
	Overview(ctx context.Context, subject string, topics []types.Topic) (string, error)
}

// FallbackSource serves canned content. It is used when no model is
// configured and whenever the model call fails.
type FallbackSource struct{}

func (FallbackSource) Topics(_ context.Context, subject string, totalHours float64) ([]types.Topic, error) {
	return FallbackTopics(subject, totalHours), nil
}

func (FallbackSource) Overview(_ context.Context, subject string, _ []types.Topic) (string, error) {
	return FallbackOverview(subject), nil
}

// FallbackTopics is a generic six step curriculum sharing totalHours evenly.
func FallbackTopics(subject string, totalHours float64) []types.Topic {
	each := totalHours / 6
	return []types.Topic{
		{
			Title:          "Introduction to " + subject,
			Summary:        "Basic concepts and overview of " + subject,
			Priority:       types.PriorityHigh,
			Difficulty:     types.DifficultyEasy,
			EstimatedHours: each,
			KeyPoints:      []string{"Basic concepts", "Key terminology", "Overview"},
			Resources:      []string{"Textbook chapters", "Online tutorials"},
		},
		{
			Title:          "Fundamentals of " + subject,
			Summary:        "Core principles and fundamentals of " + subject,
			Priority:       types.PriorityHigh,
			Difficulty:     types.DifficultyMedium,
			EstimatedHours: each,
			KeyPoints:      []string{"Core principles", "Fundamental concepts"},
			Resources:      []string{"Documentation", "Practice exercises"},
		},
		{
			Title:          "Intermediate " + subject,
			Summary:        "Intermediate level concepts in " + subject,
			Priority:       types.PriorityMedium,
			Difficulty:     types.DifficultyMedium,
			EstimatedHours: each,
			KeyPoints:      []string{"Intermediate concepts", "Practical applications"},
			Resources:      []string{"Video tutorials", "Projects"},
		},
		{
			Title:          "Advanced " + subject,
			Summary:        "Advanced topics and techniques in " + subject,
			Priority:       types.PriorityMedium,
			Difficulty:     types.DifficultyHard,
			EstimatedHours: each,
			KeyPoints:      []string{"Advanced techniques", "Best practices"},
			Resources:      []string{"Advanced tutorials", "Case studies"},
		},
		{
			Title:          "Practical Applications of " + subject,
			Summary:        "Real-world applications and use cases of " + subject,
			Priority:       types.PriorityLow,
			Difficulty:     types.DifficultyMedium,
			EstimatedHours: each,
			KeyPoints:      []string{"Real-world examples", "Use cases"},
			Resources:      []string{"Case studies", "Portfolio projects"},
		},
		{
			Title:          "Mastery and Review of " + subject,
			Summary:        fmt.Sprintf("Review and mastery of all %s concepts", subject),
			Priority:       types.PriorityLow,
			Difficulty:     types.DifficultyEasy,
			EstimatedHours: each,
			KeyPoints:      []string{"Comprehensive review", "Practice tests"},
			Resources:      []string{"Review materials", "Practice tests"},
		},
	}
}

func FallbackOverview(subject string) string {
	return fmt.Sprintf("This comprehensive study plan for %s is designed to take you from beginner to proficient. "+
		"The curriculum covers fundamental concepts, practical applications, and advanced techniques that will give you a solid foundation in %s.",
		subject, subject)
}
