// Package validation decides whether a generated study plan is acceptable for
// the hour budget the learner asked for.
package validation

import (
	"strings"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

const (
	MaxHoursPerDay = 12.0
	MinTopics      = 5
)

// Input is the part of the form the checks depend on.
type Input struct {
	Subject     string
	HoursPerDay float64
	TotalDays   int
}

func InputFromRequest(req types.StudyRequest) Input {
	return Input{Subject: req.Subject, HoursPerDay: req.HoursPerDay, TotalDays: req.TotalDays}
}

// Verdict is Accepted, or Rejected with exactly one Reason.
type Verdict struct {
	Accepted bool
	Reason   Reason
}

func accept() Verdict { return Verdict{Accepted: true} }

func reject(r Reason) Verdict { return Verdict{Reason: r} }

// Err is nil for an accepted verdict.
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	return &Rejection{Reason: v.Reason}
}

func (v Verdict) String() string {
	if v.Accepted {
		return "accepted"
	}
	return "rejected(" + v.Reason.Code() + ")"
}

// ValidateInput runs the form checks only. They are the first three checks of
// Validate, in the same order.
func ValidateInput(in Input) Verdict {
	switch {
	case strings.TrimSpace(in.Subject) == "":
		return reject(EmptySubject)
	case in.HoursPerDay <= 0:
		return reject(InvalidHours)
	case in.HoursPerDay > MaxHoursPerDay:
		return reject(HoursTooHigh)
	}
	return accept()
}

// Validate checks the form input and then the plan. The first failing check
// wins; an empty timetable never exceeds the daily budget.
func Validate(in Input, plan types.StudyPlan) Verdict {
	if v := ValidateInput(in); !v.Accepted {
		return v
	}
	if len(plan.Topics) < MinTopics {
		return reject(TooFewTopics)
	}
	if MaxDailyHours(plan.Timetable) > in.HoursPerDay {
		return reject(DailyHoursExceeded)
	}
	return accept()
}

// MaxDailyHours is the largest per-day session total, 0 for no days.
func MaxDailyHours(timetable []types.Day) float64 {
	max := 0.0
	for _, day := range timetable {
		if h := day.Hours(); h > max {
			max = h
		}
	}
	return max
}
