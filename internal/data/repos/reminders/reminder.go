package reminders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

const (
	DefaultMaxAttempts  = 5
	DefaultStaleRunning = 15 * time.Minute
)

// ClaimOptions bounds a claim: at most Limit rows, failed rows only after
// RetryDelay and while attempts < MaxAttempts, running rows reclaimed once
// untouched for StaleRunning.
type ClaimOptions struct {
	Now          time.Time
	Limit        int
	MaxAttempts  int
	RetryDelay   time.Duration
	StaleRunning time.Duration
}

type ReminderRepo interface {
	Create(dbc dbctx.Context, rows []*types.Reminder) ([]*types.Reminder, error)
	ListByReminderID(dbc dbctx.Context, reminderID string) ([]*types.Reminder, error)
	ClaimDue(dbc dbctx.Context, opts ClaimOptions) ([]*types.Reminder, error)
	MarkSent(dbc dbctx.Context, id uuid.UUID, at time.Time) error
	MarkFailed(dbc dbctx.Context, id uuid.UUID, cause error, at time.Time) error
	CountByStatus(dbc dbctx.Context) (map[string]int64, error)
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{
		db:  db,
		log: baseLog.With("repo", "ReminderRepo"),
	}
}

func (r *reminderRepo) Create(dbc dbctx.Context, rows []*types.Reminder) ([]*types.Reminder, error) {
	if len(rows) == 0 {
		return []*types.Reminder{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.Status == "" {
			row.Status = types.ReminderStatusQueued
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reminderRepo) ListByReminderID(dbc dbctx.Context, reminderID string) ([]*types.Reminder, error) {
	var out []*types.Reminder
	err := dbc.DB(r.db).
		Where("reminder_id = ?", reminderID).
		Order("send_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimDue moves up to opts.Limit due reminders to running and returns them.
// Concurrent workers on postgres skip each other's rows.
func (r *reminderRepo) ClaimDue(dbc dbctx.Context, opts ClaimOptions) ([]*types.Reminder, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	stale := opts.StaleRunning
	if stale <= 0 {
		stale = DefaultStaleRunning
	}
	retryCutoff := now.Add(-opts.RetryDelay)
	staleCutoff := now.Add(-stale)

	var claimed []*types.Reminder
	err := dbc.DB(r.db).Transaction(func(txx *gorm.DB) error {
		var due []*types.Reminder
		q := txx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("send_at <= ?", now).
			Where(`
        (
          status = ?
          OR (
            status = ?
            AND attempts < ?
            AND (last_error_at IS NULL OR last_error_at < ?)
          )
          OR (
            status = ?
            AND attempts < ?
            AND updated_at < ?
          )
        )
      `, types.ReminderStatusQueued, types.ReminderStatusFailed, maxAttempts, retryCutoff,
				types.ReminderStatusRunning, maxAttempts, staleCutoff).
			Order("send_at ASC").
			Limit(limit)
		if err := q.Find(&due).Error; err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(due))
		for _, row := range due {
			ids = append(ids, row.ID)
		}
		uErr := txx.Model(&types.Reminder{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     types.ReminderStatusRunning,
				"attempts":   gorm.Expr("attempts + 1"),
				"updated_at": now,
			}).Error
		if uErr != nil {
			return uErr
		}
		for _, row := range due {
			row.Status = types.ReminderStatusRunning
			row.Attempts++
			row.UpdatedAt = now
		}
		claimed = due
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *reminderRepo) MarkSent(dbc dbctx.Context, id uuid.UUID, at time.Time) error {
	at = at.UTC()
	return dbc.DB(r.db).Model(&types.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     types.ReminderStatusSent,
			"sent_at":    at,
			"last_error": "",
			"updated_at": at,
		}).Error
}

func (r *reminderRepo) MarkFailed(dbc dbctx.Context, id uuid.UUID, cause error, at time.Time) error {
	at = at.UTC()
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if len(msg) > 1000 {
		msg = msg[:1000]
	}
	return dbc.DB(r.db).Model(&types.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        types.ReminderStatusFailed,
			"last_error":    msg,
			"last_error_at": at,
			"updated_at":    at,
		}).Error
}

func (r *reminderRepo) CountByStatus(dbc dbctx.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := dbc.DB(r.db).Model(&types.Reminder{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
