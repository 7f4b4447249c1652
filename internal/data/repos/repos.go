package repos

import (
	"github.com/yungbote/studyguide-backend/internal/data/repos/plans"
	"github.com/yungbote/studyguide-backend/internal/data/repos/reminders"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type StudyPlanRepo = plans.StudyPlanRepo
type ReminderRepo = reminders.ReminderRepo
type ReminderClaimOptions = reminders.ClaimOptions

// Repos bundles every repository the services need.
type Repos struct {
	StudyPlans StudyPlanRepo
	Reminders  ReminderRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		StudyPlans: plans.NewStudyPlanRepo(db, log),
		Reminders:  reminders.NewReminderRepo(db, log),
	}
}
