package plans

import (
	"encoding/json"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = ParsePriority(s)
	return nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	*p = ParsePriority(string(b))
	return nil
}

// ParsePriority normalises free-form model output; anything unknown is medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 1
	}
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = ParseDifficulty(s)
	return nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	*d = ParseDifficulty(string(b))
	return nil
}

func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

type Topic struct {
	Title          string     `json:"title" yaml:"title"`
	Summary        string     `json:"summary" yaml:"summary"`
	Priority       Priority   `json:"priority" yaml:"priority"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	EstimatedHours float64    `json:"estimatedHours" yaml:"estimatedHours"`
	KeyPoints      []string   `json:"keyPoints,omitempty" yaml:"keyPoints,omitempty"`
	Resources      []string   `json:"resources,omitempty" yaml:"resources,omitempty"`
}

type Session struct {
	Topic         string   `json:"topic" yaml:"topic"`
	Duration      float64  `json:"duration" yaml:"duration"`
	Priority      Priority `json:"priority" yaml:"priority"`
	Description   string   `json:"description" yaml:"description"`
	SuggestedTime string   `json:"suggestedTime,omitempty" yaml:"suggestedTime,omitempty"`
	Activities    []string `json:"activities,omitempty" yaml:"activities,omitempty"`
}

type Day struct {
	Sessions []Session `json:"sessions" yaml:"sessions"`
	Notes    string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Hours is the sum of session durations for the day.
func (d Day) Hours() float64 {
	total := 0.0
	for _, s := range d.Sessions {
		total += s.Duration
	}
	return total
}

// StudyPlan is the generated guide plus timetable, in the wire shape the
// frontend consumes.
type StudyPlan struct {
	Subject     string    `json:"subject" yaml:"subject"`
	HoursPerDay float64   `json:"hoursPerDay" yaml:"hoursPerDay"`
	TotalDays   int       `json:"totalDays" yaml:"totalDays"`
	Overview    string    `json:"overview,omitempty" yaml:"overview,omitempty"`
	Topics      []Topic   `json:"topics" yaml:"topics"`
	Timetable   []Day     `json:"timetable" yaml:"timetable"`
	Email       string    `json:"email,omitempty" yaml:"email,omitempty"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt,omitempty"`
}

const DefaultTotalDays = 7

// StudyRequest is the form input that drives generation.
type StudyRequest struct {
	Subject     string  `json:"subject" yaml:"subject"`
	HoursPerDay float64 `json:"hoursPerDay" yaml:"hoursPerDay"`
	TotalDays   int     `json:"totalDays,omitempty" yaml:"totalDays,omitempty" binding:"omitempty,min=1,max=30"`
	Email       string  `json:"email,omitempty" yaml:"email,omitempty" binding:"omitempty,email"`
}

// Normalize trims free text and applies the default period.
func (r StudyRequest) Normalize() StudyRequest {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Email = strings.TrimSpace(r.Email)
	if r.TotalDays <= 0 {
		r.TotalDays = DefaultTotalDays
	}
	return r
}

func (r StudyRequest) TotalHours() float64 {
	return r.HoursPerDay * float64(r.TotalDays)
}
