package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/studyguide-backend/internal/data/cache"
	"github.com/yungbote/studyguide-backend/internal/data/repos"
	httpH "github.com/yungbote/studyguide-backend/internal/http/handlers"
	"github.com/yungbote/studyguide-backend/internal/jobs/worker"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/generator"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/platform/openai"
	"github.com/yungbote/studyguide-backend/internal/platform/sendgrid"
	"github.com/yungbote/studyguide-backend/internal/render"
	"github.com/yungbote/studyguide-backend/internal/services"
)

type Clients struct {
	OpenAI   openai.Client
	SendGrid sendgrid.Client
}

type Services struct {
	StudyGuide services.StudyGuideService
	Export     services.ExportService
	Reminder   services.ReminderService
	Worker     *worker.Worker
}

type Handlers struct {
	Health     *httpH.HealthHandler
	StudyGuide *httpH.StudyGuideHandler
	Reminder   *httpH.ReminderHandler
}

// wireClients builds the optional outbound clients. A missing key leaves the
// client nil.
func wireClients(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	var out Clients
	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		var observer openai.Observer
		if metrics != nil {
			observer = metrics
		}
		c, err := openai.New(log, cfg.OpenAI, observer)
		if err != nil {
			return out, fmt.Errorf("init openai: %w", err)
		}
		out.OpenAI = c
	} else {
		log.Warn("OPENAI_API_KEY not set; using built-in topics")
	}

	if cfg.SendGrid.Configured() {
		c, err := sendgrid.New(log, cfg.SendGrid)
		if err != nil {
			return out, fmt.Errorf("init sendgrid: %w", err)
		}
		out.SendGrid = c
	} else {
		log.Warn("SendGrid not configured; email reminders disabled")
	}
	return out, nil
}

func wireFonts(log *logger.Logger, cfg Config) (*fonts.Set, error) {
	if cfg.FontRegular != "" {
		log.Info("Loading export fonts", "regular", cfg.FontRegular, "bold", cfg.FontBold)
		return fonts.FromFiles(cfg.FontRegular, cfg.FontBold)
	}
	return fonts.Default()
}

func wireServices(
	log *logger.Logger,
	cfg Config,
	reposet repos.Repos,
	lastPlans cache.LastPlanCache,
	clients Clients,
	fs *fonts.Set,
	metrics *observability.Metrics,
) Services {
	log.Info("Wiring services...")

	var source generator.TopicSource = generator.FallbackSource{}
	if clients.OpenAI != nil {
		source = generator.NewLLMTopicSource(clients.OpenAI, log)
	}

	reminders := services.NewReminderService(log, reposet.Reminders, clients.SendGrid, cfg.ReminderTZ)
	guides := services.NewStudyGuideService(log, generator.New(source), reposet.StudyPlans, lastPlans, reminders, metrics)
	exports := services.NewExportService(log, cfg.Page, metrics,
		render.NewPDFRenderer(fs),
		render.NewPNGRenderer(fs, cfg.PNGDPI, cfg.PNGWorkers),
	)

	var w *worker.Worker
	if cfg.RunWorker && reminders.Enabled() {
		w = worker.NewWorker(log, reposet.Reminders, reminders, metrics, cfg.Worker)
	}

	return Services{
		StudyGuide: guides,
		Export:     exports,
		Reminder:   reminders,
		Worker:     w,
	}
}

func wireHandlers(log *logger.Logger, clients Clients, svc Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(clients.OpenAI != nil, clients.SendGrid != nil),
		StudyGuide: httpH.NewStudyGuideHandler(svc.StudyGuide, svc.Export),
		Reminder:   httpH.NewReminderHandler(svc.Reminder),
	}
}
