package validation

import "fmt"

type Reason int

const (
	EmptySubject Reason = iota + 1
	InvalidHours
	HoursTooHigh
	TooFewTopics
	DailyHoursExceeded
)

func (r Reason) Code() string {
	switch r {
	case EmptySubject:
		return "empty_subject"
	case InvalidHours:
		return "invalid_hours"
	case HoursTooHigh:
		return "hours_too_high"
	case TooFewTopics:
		return "too_few_topics"
	case DailyHoursExceeded:
		return "daily_hours_exceeded"
	default:
		return "unknown"
	}
}

// Message is the text shown to the learner.
func (r Reason) Message() string {
	switch r {
	case EmptySubject:
		return "Subject name is required"
	case InvalidHours:
		return "Hours per day must be greater than 0"
	case HoursTooHigh:
		return "Hours per day cannot exceed 12"
	case TooFewTopics:
		return fmt.Sprintf("Generated study guide should have at least %d topics", MinTopics)
	case DailyHoursExceeded:
		return "Generated timetable exceeds daily study hours limit"
	default:
		return "study plan rejected"
	}
}

// InputError reports whether the learner can fix this by changing the form,
// as opposed to the generated plan being unusable.
func (r Reason) InputError() bool {
	return r == EmptySubject || r == InvalidHours || r == HoursTooHigh
}

func (r Reason) String() string { return r.Code() }

// Rejection is the error form of a rejected Verdict.
type Rejection struct {
	Reason Reason
}

func (e *Rejection) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason.Message()
}
