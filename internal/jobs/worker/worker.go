package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studyguide-backend/internal/data/repos"
	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/envutil"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

// Deliverer sends one claimed reminder.
type Deliverer interface {
	Deliver(ctx context.Context, r *types.Reminder) error
}

type Config struct {
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
	MaxAttempts  int
	RetryDelay   time.Duration
	StaleRunning time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		PollInterval: envutil.Duration("REMINDER_POLL_INTERVAL_SECONDS", 30*time.Second),
		BatchSize:    envutil.Int("REMINDER_BATCH_SIZE", 25),
		Concurrency:  envutil.Int("REMINDER_CONCURRENCY", 4),
		MaxAttempts:  envutil.Int("REMINDER_MAX_ATTEMPTS", 5),
		RetryDelay:   envutil.Duration("REMINDER_RETRY_DELAY", 5*time.Minute),
		StaleRunning: envutil.Duration("REMINDER_STALE_RUNNING", 15*time.Minute),
	}
}

type Worker struct {
	log     *logger.Logger
	repo    repos.ReminderRepo
	deliver Deliverer
	metrics *observability.Metrics
	cfg     Config
	now     func() time.Time
}

func NewWorker(baseLog *logger.Logger, repo repos.ReminderRepo, deliver Deliverer, metrics *observability.Metrics, cfg Config) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 25
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Worker{
		log:     baseLog.With("component", "ReminderWorker"),
		repo:    repo,
		deliver: deliver,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Start polls until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("Starting reminder worker",
		"poll_interval", w.cfg.PollInterval.String(),
		"batch_size", w.cfg.BatchSize,
		"concurrency", w.cfg.Concurrency,
	)
	go func() {
		ticker := time.NewTicker(w.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.log.Info("Reminder worker stopped")
				return
			case <-ticker.C:
				if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
					w.log.Warn("Reminder poll failed", "error", err)
				}
			}
		}
	}()
}

// RunOnce claims one batch of due reminders and delivers it. It returns the
// number of reminders sent.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	now := w.now()
	claimed, err := w.repo.ClaimDue(dbctx.New(ctx), repos.ReminderClaimOptions{
		Now:          now,
		Limit:        w.cfg.BatchSize,
		MaxAttempts:  w.cfg.MaxAttempts,
		RetryDelay:   w.cfg.RetryDelay,
		StaleRunning: w.cfg.StaleRunning,
	})
	if err != nil {
		return 0, fmt.Errorf("claim due reminders: %w", err)
	}
	if len(claimed) == 0 {
		return 0, nil
	}

	sent := make([]bool, len(claimed))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Concurrency)
	for i, r := range claimed {
		i, r := i, r
		g.Go(func() error {
			sent[i] = w.handle(gctx, r)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range sent {
		if ok {
			n++
		}
	}
	w.log.Info("Reminder batch done", "claimed", len(claimed), "sent", n)
	return n, nil
}

func (w *Worker) handle(ctx context.Context, r *types.Reminder) (ok bool) {
	dbc := dbctx.New(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			w.log.Error("Reminder delivery panic", "reminder_row", r.ID, "reminder_id", r.ReminderID, "panic", rec)
			_ = w.repo.MarkFailed(dbc, r.ID, &panicError{Val: rec}, w.now())
			w.metrics.IncReminderDelivered(r.Kind, "failed")
			ok = false
		}
	}()

	if err := w.deliver.Deliver(ctx, r); err != nil {
		w.log.Warn("Reminder delivery failed",
			"reminder_row", r.ID,
			"reminder_id", r.ReminderID,
			"kind", r.Kind,
			"attempts", r.Attempts,
			"error", err,
		)
		if mErr := w.repo.MarkFailed(dbc, r.ID, err, w.now()); mErr != nil {
			w.log.Error("MarkFailed failed", "reminder_row", r.ID, "error", mErr)
		}
		w.metrics.IncReminderDelivered(r.Kind, "failed")
		return false
	}
	if err := w.repo.MarkSent(dbc, r.ID, w.now()); err != nil {
		w.log.Error("MarkSent failed", "reminder_row", r.ID, "error", err)
	}
	w.metrics.IncReminderDelivered(r.Kind, "sent")
	return true
}

type panicError struct{ Val any }

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.Val) }
