package db

import (
	types "github.com/yungbote/studyguide-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.AllModels()...)
}
