package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/studyguide-backend/internal/data/cache"
	"github.com/yungbote/studyguide-backend/internal/data/db"
	"github.com/yungbote/studyguide-backend/internal/data/repos"
	apphttp "github.com/yungbote/studyguide-backend/internal/http"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    repos.Repos
	Services Services
	Metrics  *observability.Metrics

	lastPlans    cache.LastPlanCache
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	LoadDotEnv()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	theDB, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	lastPlans, err := cache.NewLastPlanCache(ctx, log, cfg.Cache)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init last plan cache: %w", err)
	}

	clients, err := wireClients(log, cfg, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}
	fs, err := wireFonts(log, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	reposet := repos.New(theDB, log)
	serviceset := wireServices(log, cfg, reposet, lastPlans, clients, fs, metrics)
	handlerset := wireHandlers(log, clients, serviceset)

	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       ServiceName,
		TracingEnabled:    otelShutdown != nil,
		AllowedOrigins:    cfg.AllowedOrigins,
		HealthHandler:     handlerset.Health,
		StudyGuideHandler: handlerset.StudyGuide,
		ReminderHandler:   handlerset.Reminder,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		lastPlans:    lastPlans,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background loops: the reminder worker and the reminder
// backlog gauge.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.Worker != nil {
		a.Services.Worker.Start(ctx)
	}
	a.Metrics.StartReminderCollector(ctx, a.Log, time.Minute, func(ctx context.Context) (map[string]int64, error) {
		return a.Repos.Reminders.CountByStatus(dbctx.New(ctx))
	})
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if addr == "" {
		addr = ":" + a.Cfg.Port
	}
	a.Log.Info("HTTP server listening", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			a.Log.Warn("HTTP shutdown failed", "error", err)
		}
	}
	if a.lastPlans != nil {
		_ = a.lastPlans.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
