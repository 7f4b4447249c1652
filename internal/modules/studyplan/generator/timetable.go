package generator

import (
	"fmt"
	"math"
	"strings"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

const (
	maxSessionHours = 2.0
	minPartialHours = 0.5
	summaryPreview  = 100
	hoursEpsilon    = 1e-9
)

// BuildTimetable spreads the topics, in order, over totalDays days of at most
// hoursPerDay each. Topics are cut into sessions of at most two hours; a
// session that does not fit the rest of a day is split when at least half an
// hour is left, otherwise the day ends early.
func BuildTimetable(topics []types.Topic, hoursPerDay float64, totalDays int) []types.Day {
	if totalDays <= 0 {
		return []types.Day{}
	}
	timetable := make([]types.Day, 0, totalDays)
	if hoursPerDay <= 0 {
		for i := 0; i < totalDays; i++ {
			timetable = append(timetable, types.Day{Sessions: []types.Session{}, Notes: dailyNotes(nil, i, totalDays)})
		}
		return timetable
	}

	queue := sessionQueue(topics, hoursPerDay)

	for dayIndex := 0; dayIndex < totalDays; dayIndex++ {
		sessions := []types.Session{}
		hours := 0.0

		for hours < hoursPerDay && len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]

			if hours+s.Duration <= hoursPerDay {
				sessions = append(sessions, s)
				hours += s.Duration
				continue
			}

			left := hoursPerDay - hours
			if left < minPartialHours {
				queue = append([]types.Session{s}, queue...)
				break
			}
			today, rest := splitSession(s, left)
			sessions = append(sessions, today)
			queue = append([]types.Session{rest}, queue...)
			hours += left
		}
		clampDay(sessions, hoursPerDay)

		timetable = append(timetable, types.Day{
			Sessions: sessions,
			Notes:    dailyNotes(sessions, dayIndex, totalDays),
		})
	}
	return timetable
}

func sessionQueue(topics []types.Topic, hoursPerDay float64) []types.Session {
	var queue []types.Session
	for _, topic := range topics {
		remaining := topic.EstimatedHours
		for remaining > hoursEpsilon {
			d := min(remaining, maxSessionHours, hoursPerDay)
			queue = append(queue, types.Session{
				Topic:         topic.Title,
				Duration:      d,
				Priority:      topic.Priority,
				Description:   fmt.Sprintf("Study %s: %s...", topic.Title, truncateRunes(topic.Summary, summaryPreview)),
				SuggestedTime: SuggestedTime(topic.Priority),
				Activities:    Activities(topic.Title, d),
			})
			remaining -= d
		}
	}
	return queue
}

// clampDay absorbs float rounding from splits: the summed durations of a day
// must never exceed the budget.
func clampDay(sessions []types.Session, hoursPerDay float64) {
	if len(sessions) == 0 {
		return
	}
	last := &sessions[len(sessions)-1]
	if over := (types.Day{Sessions: sessions}).Hours() - hoursPerDay; over > 0 {
		last.Duration -= over
	}
	for i := 0; i < 64 && (types.Day{Sessions: sessions}).Hours() > hoursPerDay; i++ {
		last.Duration = math.Nextafter(last.Duration, 0)
	}
}

// splitSession cuts s so the first part lasts today hours. The shorter
// session keeps the first two activities.
func splitSession(s types.Session, today float64) (types.Session, types.Session) {
	head, tail := s, s
	head.Duration = today
	tail.Duration = s.Duration - today

	n := min(2, len(s.Activities))
	head.Activities = append([]string(nil), s.Activities[:n]...)
	tail.Activities = append([]string(nil), s.Activities[n:]...)
	return head, tail
}

// Activities suggests what to do in a session of the given length.
func Activities(title string, duration float64) []string {
	switch {
	case duration >= 2.0:
		return []string{
			"Read and understand key concepts of " + title,
			"Take detailed notes on " + title,
			"Practice exercises related to " + title,
			"Review and summarize learned material",
		}
	case duration >= 1.0:
		return []string{
			"Study core concepts of " + title,
			"Take notes and highlight important points",
			"Quick practice or review exercises",
		}
	default:
		return []string{
			"Quick review of " + title,
			"Go through key points and examples",
		}
	}
}

func SuggestedTime(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return "9:00 AM - 11:00 AM (Peak focus hours)"
	case types.PriorityMedium:
		return "2:00 PM - 4:00 PM (Good focus hours)"
	case types.PriorityLow:
		return "7:00 PM - 9:00 PM (Review time)"
	default:
		return "9:00 AM - 11:00 AM"
	}
}

func dailyNotes(sessions []types.Session, dayIndex, totalDays int) string {
	high := 0
	total := 0.0
	for _, s := range sessions {
		if s.Priority == types.PriorityHigh {
			high++
		}
		total += s.Duration
	}

	var notes []string
	switch {
	case dayIndex == 0:
		notes = append(notes, "🚀 First day! Start strong and build momentum.")
	case dayIndex == totalDays-1:
		notes = append(notes, "🎯 Final day! Focus on review and consolidation.")
	case dayIndex < totalDays/2:
		notes = append(notes, "💪 Early days - focus on building strong foundations.")
	default:
		notes = append(notes, "🔥 Second half of your study plan - you're making great progress!")
	}
	if high > 0 {
		notes = append(notes, fmt.Sprintf("⭐ %d high-priority topic(s) today - tackle these when your mind is freshest.", high))
	}
	if total >= 3 {
		notes = append(notes, "⏰ Long study day - remember to take regular breaks and stay hydrated.")
	}
	notes = append(notes, "📝 End the day by reviewing what you've learned and planning tomorrow.")
	return strings.Join(notes, " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
