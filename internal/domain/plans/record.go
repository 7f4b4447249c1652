package plans

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudyPlanRecord is one accepted plan in the generation history.
type StudyPlanRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Subject     string         `gorm:"column:subject;not null;index" json:"subject"`
	HoursPerDay float64        `gorm:"column:hours_per_day;not null" json:"hours_per_day"`
	TotalDays   int            `gorm:"column:total_days;not null" json:"total_days"`
	Email       string         `gorm:"column:email;index" json:"-"`
	TopicCount  int            `gorm:"column:topic_count;not null" json:"topic_count"`
	Plan        datatypes.JSON `gorm:"column:plan" json:"-"`
	GeneratedAt time.Time      `gorm:"column:generated_at;not null;index" json:"generated_at"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (StudyPlanRecord) TableName() string { return "study_plan" }

// LastPlan is what the cache keeps per client: the last accepted plan with
// the form input that produced it.
type LastPlan struct {
	Plan      StudyPlan    `json:"plan"`
	FormData  StudyRequest `json:"formData"`
	Timestamp time.Time    `json:"timestamp"`
}
