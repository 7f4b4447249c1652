package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/studyguide-backend/internal/data/repos"
	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/apierr"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/platform/sendgrid"
)

const (
	ReminderDisabledID = "reminder_disabled"
	reminderIDPrefix   = "study_reminder_"
	reminderHour       = 8
)

type ReminderSetup struct {
	Email     string      `json:"email" binding:"required,email"`
	Subject   string      `json:"subject" binding:"required"`
	Timetable []types.Day `json:"timetable"`
	TotalDays int         `json:"totalDays" binding:"min=0,max=30"`
}

type ReminderService interface {
	Enabled() bool
	Setup(ctx context.Context, req ReminderSetup) (string, error)
	Deliver(ctx context.Context, r *types.Reminder) error
}

type reminderService struct {
	log      *logger.Logger
	repo     repos.ReminderRepo
	mail     sendgrid.Client
	location *time.Location
	now      func() time.Time
}

// NewReminderService returns a service that queues reminders for the worker.
// A nil mail client disables reminders.
func NewReminderService(baseLog *logger.Logger, repo repos.ReminderRepo, mail sendgrid.Client, location *time.Location) ReminderService {
	if location == nil {
		location = time.Local
	}
	return &reminderService{
		log:      baseLog.With("service", "ReminderService"),
		repo:     repo,
		mail:     mail,
		location: location,
		now:      time.Now,
	}
}

func (s *reminderService) Enabled() bool { return s.mail != nil && s.repo != nil }

func (s *reminderService) Setup(ctx context.Context, req ReminderSetup) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Email == "" {
		return "", apierr.BadRequest("missing_email", errors.New("email is required"))
	}
	if req.Subject == "" {
		return "", apierr.BadRequest("missing_subject", errors.New("subject is required"))
	}
	if !s.Enabled() {
		s.log.Info("Mail not configured, skipping email reminders")
		return ReminderDisabledID, nil
	}

	reminderID := reminderIDPrefix + uuid.NewString()
	rows, err := ScheduleReminders(reminderID, req, s.now().In(s.location))
	if err != nil {
		return "", err
	}
	if _, err := s.repo.Create(dbctx.New(ctx), rows); err != nil {
		return "", fmt.Errorf("queue reminders: %w", err)
	}
	s.log.Info("Reminders scheduled", "reminder_id", reminderID, "count", len(rows))
	return reminderID, nil
}

// ScheduleReminders builds one daily reminder per planned day at 08:00 local
// time (pushed a day when that moment has passed) and a completion reminder
// the morning after the last day.
func ScheduleReminders(reminderID string, req ReminderSetup, now time.Time) ([]*types.Reminder, error) {
	totalDays := req.TotalDays
	if totalDays <= 0 {
		totalDays = len(req.Timetable)
	}
	morning := time.Date(now.Year(), now.Month(), now.Day(), reminderHour, 0, 0, 0, now.Location())

	var rows []*types.Reminder
	for dayIndex := 0; dayIndex < totalDays; dayIndex++ {
		if dayIndex >= len(req.Timetable) {
			break
		}
		sendAt := morning.AddDate(0, 0, dayIndex)
		if !sendAt.After(now) {
			sendAt = sendAt.AddDate(0, 0, 1)
		}
		dayPlan, err := json.Marshal(req.Timetable[dayIndex])
		if err != nil {
			return nil, fmt.Errorf("encode day %d: %w", dayIndex+1, err)
		}
		rows = append(rows, &types.Reminder{
			ReminderID: reminderID,
			Kind:       string(types.ReminderKindDaily),
			Email:      req.Email,
			Subject:    req.Subject,
			DayNumber:  dayIndex + 1,
			DayPlan:    datatypes.JSON(dayPlan),
			SendAt:     sendAt.UTC(),
			Status:     types.ReminderStatusQueued,
		})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	rows = append(rows, &types.Reminder{
		ReminderID: reminderID,
		Kind:       string(types.ReminderKindCompletion),
		Email:      req.Email,
		Subject:    req.Subject,
		DayNumber:  totalDays + 1,
		SendAt:     morning.AddDate(0, 0, totalDays).UTC(),
		Status:     types.ReminderStatusQueued,
	})
	return rows, nil
}

func (s *reminderService) Deliver(ctx context.Context, r *types.Reminder) error {
	if r == nil {
		return errors.New("reminder required")
	}
	if s.mail == nil {
		return errors.New("mail client not configured")
	}

	var (
		subject string
		html    string
		text    string
		err     error
	)
	switch types.ReminderKind(r.Kind) {
	case types.ReminderKindDaily:
		var day types.Day
		if len(r.DayPlan) > 0 {
			if err := json.Unmarshal(r.DayPlan, &day); err != nil {
				return fmt.Errorf("decode day plan: %w", err)
			}
		}
		subject = fmt.Sprintf("📚 Day %d: %s Study Reminder", r.DayNumber, r.Subject)
		html, err = renderDailyEmail(r.Subject, r.DayNumber, day)
		text = dailyEmailText(r.Subject, r.DayNumber, day)
	case types.ReminderKindCompletion:
		subject = fmt.Sprintf("🎉 Congratulations on completing %s!", r.Subject)
		html, err = renderCompletionEmail(r.Subject)
		text = fmt.Sprintf("Congratulations! You've completed your %s study plan!", r.Subject)
	default:
		return fmt.Errorf("unknown reminder kind %q", r.Kind)
	}
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	_, err = s.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:         []sendgrid.EmailAddress{{Email: r.Email}},
		Subject:    subject,
		Text:       text,
		HTML:       html,
		Categories: []string{"study_reminder", r.Kind},
		CustomArgs: map[string]string{"reminder_id": r.ReminderID},
	})
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}
