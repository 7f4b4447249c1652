package reminders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindDaily      Kind = "daily"
	KindCompletion Kind = "completion"
)

const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Reminder is a single scheduled e-mail. Rows sharing a ReminderID belong to
// one setup call.
type Reminder struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReminderID  string         `gorm:"column:reminder_id;not null;index" json:"reminder_id"`
	Kind        string         `gorm:"column:kind;not null;index" json:"kind"`
	Email       string         `gorm:"column:email;not null;index" json:"-"`
	Subject     string         `gorm:"column:subject;not null" json:"subject"`
	DayNumber   int            `gorm:"column:day_number;not null" json:"day_number"`
	DayPlan     datatypes.JSON `gorm:"column:day_plan" json:"day_plan,omitempty"`
	SendAt      time.Time      `gorm:"column:send_at;not null;index" json:"send_at"`
	Status      string         `gorm:"column:status;not null;index" json:"status"`
	Attempts    int            `gorm:"column:attempts;not null" json:"attempts"`
	LastError   string         `gorm:"column:last_error" json:"last_error,omitempty"`
	LastErrorAt *time.Time     `gorm:"column:last_error_at;index" json:"last_error_at,omitempty"`
	SentAt      *time.Time     `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Reminder) TableName() string { return "study_reminder" }
