package domain

import (
	"github.com/yungbote/studyguide-backend/internal/domain/plans"
	"github.com/yungbote/studyguide-backend/internal/domain/reminders"
)

type (
	StudyPlan       = plans.StudyPlan
	StudyRequest    = plans.StudyRequest
	Topic           = plans.Topic
	Day             = plans.Day
	Session         = plans.Session
	Priority        = plans.Priority
	Difficulty      = plans.Difficulty
	StudyPlanRecord = plans.StudyPlanRecord
	LastPlan        = plans.LastPlan

	Reminder     = reminders.Reminder
	ReminderKind = reminders.Kind
)

const (
	DefaultTotalDays = plans.DefaultTotalDays

	PriorityHigh   = plans.PriorityHigh
	PriorityMedium = plans.PriorityMedium
	PriorityLow    = plans.PriorityLow

	DifficultyEasy   = plans.DifficultyEasy
	DifficultyMedium = plans.DifficultyMedium
	DifficultyHard   = plans.DifficultyHard

	ReminderKindDaily      = reminders.KindDaily
	ReminderKindCompletion = reminders.KindCompletion

	ReminderStatusQueued  = reminders.StatusQueued
	ReminderStatusRunning = reminders.StatusRunning
	ReminderStatusSent    = reminders.StatusSent
	ReminderStatusFailed  = reminders.StatusFailed
)

// AllModels lists every gorm row type for automigration.
func AllModels() []any {
	return []any{
		&plans.StudyPlanRecord{},
		&reminders.Reminder{},
	}
}
