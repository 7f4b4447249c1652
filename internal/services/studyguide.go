package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/studyguide-backend/internal/data/cache"
	"github.com/yungbote/studyguide-backend/internal/data/repos"
	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/validation"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/apierr"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

const DefaultHistoryLimit = 20

// PlanGenerator produces a plan for a normalised request.
type PlanGenerator interface {
	Generate(ctx context.Context, req types.StudyRequest) (types.StudyPlan, error)
}

// GeneratedPlan is the plan plus the identifiers created while accepting it.
type GeneratedPlan struct {
	ID         uuid.UUID `json:"id"`
	ReminderID string    `json:"reminderId,omitempty"`
	types.StudyPlan
}

type StudyGuideService interface {
	Generate(ctx context.Context, req types.StudyRequest, clientKey string) (*GeneratedPlan, error)
	History(ctx context.Context, limit int) ([]*types.StudyPlanRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*types.StudyPlan, error)
	Last(ctx context.Context, clientKey string) (*types.LastPlan, error)
}

type studyGuideService struct {
	log       *logger.Logger
	generator PlanGenerator
	plans     repos.StudyPlanRepo
	lastPlans cache.LastPlanCache
	reminders ReminderService
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewStudyGuideService(
	baseLog *logger.Logger,
	generator PlanGenerator,
	plans repos.StudyPlanRepo,
	lastPlans cache.LastPlanCache,
	reminders ReminderService,
	metrics *observability.Metrics,
) StudyGuideService {
	if lastPlans == nil {
		lastPlans = cache.Disabled{}
	}
	return &studyGuideService{
		log:       baseLog.With("service", "StudyGuideService"),
		generator: generator,
		plans:     plans,
		lastPlans: lastPlans,
		reminders: reminders,
		metrics:   metrics,
		now:       time.Now,
	}
}

// rejection maps a validator verdict to the caller-facing error.
func rejection(v validation.Verdict) *apierr.Error {
	status := http.StatusUnprocessableEntity
	if v.Reason.InputError() {
		status = http.StatusBadRequest
	}
	return apierr.New(status, v.Reason.Code(), v.Err())
}

func (s *studyGuideService) Generate(ctx context.Context, req types.StudyRequest, clientKey string) (*GeneratedPlan, error) {
	req = req.Normalize()
	in := validation.InputFromRequest(req)

	if v := validation.ValidateInput(in); !v.Accepted {
		s.metrics.IncPlanRejected(v.Reason.Code())
		return nil, rejection(v)
	}

	plan, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.metrics.IncPlanGenerated("error")
		return nil, fmt.Errorf("generate study plan: %w", err)
	}

	if v := validation.Validate(in, plan); !v.Accepted {
		s.metrics.IncPlanRejected(v.Reason.Code())
		s.metrics.IncPlanGenerated("rejected")
		s.log.Warn("Generated plan rejected", "subject", req.Subject, "reason", v.Reason.Code())
		return nil, rejection(v)
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode study plan: %w", err)
	}
	rec, err := s.plans.Create(dbctx.New(ctx), &types.StudyPlanRecord{
		Subject:     plan.Subject,
		HoursPerDay: plan.HoursPerDay,
		TotalDays:   plan.TotalDays,
		Email:       plan.Email,
		TopicCount:  len(plan.Topics),
		Plan:        datatypes.JSON(raw),
		GeneratedAt: plan.GeneratedAt,
	})
	if err != nil {
		s.metrics.IncPlanGenerated("error")
		return nil, fmt.Errorf("save study plan: %w", err)
	}
	s.metrics.IncPlanGenerated("accepted")

	out := &GeneratedPlan{ID: rec.ID, StudyPlan: plan}

	if key := strings.TrimSpace(clientKey); key != "" {
		entry := types.LastPlan{Plan: plan, FormData: req, Timestamp: s.now().UTC()}
		if err := s.lastPlans.Put(ctx, key, entry); err != nil {
			s.log.Warn("Failed to cache last plan (ignored)", "client_key", key, "error", err)
		}
	}

	if req.Email != "" && s.reminders != nil {
		id, err := s.reminders.Setup(ctx, ReminderSetup{
			Email:     req.Email,
			Subject:   plan.Subject,
			Timetable: plan.Timetable,
			TotalDays: plan.TotalDays,
		})
		if err != nil {
			s.log.Warn("Failed to schedule reminders (ignored)", "plan_id", rec.ID, "error", err)
		} else {
			out.ReminderID = id
		}
	}

	s.log.Info("Study plan generated", "plan_id", rec.ID, "subject", plan.Subject, "topics", len(plan.Topics), "days", len(plan.Timetable))
	return out, nil
}

func (s *studyGuideService) History(ctx context.Context, limit int) ([]*types.StudyPlanRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.plans.ListRecent(dbctx.New(ctx), limit)
	if err != nil {
		return nil, fmt.Errorf("list study plans: %w", err)
	}
	return rows, nil
}

func (s *studyGuideService) Get(ctx context.Context, id uuid.UUID) (*types.StudyPlan, error) {
	rec, err := s.plans.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load study plan: %w", err)
	}
	if rec == nil {
		return nil, apierr.NotFound("study_plan_not_found", errors.New("study plan not found"))
	}
	var plan types.StudyPlan
	if err := json.Unmarshal(rec.Plan, &plan); err != nil {
		return nil, fmt.Errorf("decode study plan %s: %w", id, err)
	}
	return &plan, nil
}

func (s *studyGuideService) Last(ctx context.Context, clientKey string) (*types.LastPlan, error) {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return nil, apierr.BadRequest("missing_client_id", errors.New("X-Client-Id header is required"))
	}
	entry, err := s.lastPlans.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read last plan: %w", err)
	}
	if entry == nil {
		return nil, apierr.NotFound("last_plan_not_found", errors.New("no saved study plan"))
	}
	return entry, nil
}
