package plans

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

type StudyPlanRepo interface {
	Create(dbc dbctx.Context, rec *types.StudyPlanRecord) (*types.StudyPlanRecord, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.StudyPlanRecord, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*types.StudyPlanRecord, error)
}

type studyPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPlanRepo(db *gorm.DB, baseLog *logger.Logger) StudyPlanRepo {
	return &studyPlanRepo{
		db:  db,
		log: baseLog.With("repo", "StudyPlanRepo"),
	}
}

func (r *studyPlanRepo) Create(dbc dbctx.Context, rec *types.StudyPlanRecord) (*types.StudyPlanRecord, error) {
	if rec == nil {
		return nil, errors.New("record required")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := dbc.DB(r.db).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByID returns nil without error when no row matches.
func (r *studyPlanRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.StudyPlanRecord, error) {
	var rec types.StudyPlanRecord
	err := dbc.DB(r.db).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *studyPlanRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.StudyPlanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []*types.StudyPlanRecord
	err := dbc.DB(r.db).
		Omit("plan").
		Order("generated_at DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
