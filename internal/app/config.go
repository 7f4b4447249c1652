package app

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/studyguide-backend/internal/data/cache"
	"github.com/yungbote/studyguide-backend/internal/data/db"
	"github.com/yungbote/studyguide-backend/internal/jobs/worker"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/envutil"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/platform/openai"
	"github.com/yungbote/studyguide-backend/internal/platform/sendgrid"
)

const ServiceName = "studyguide-backend"

type Config struct {
	Environment string
	Version     string
	Port        string

	AllowedOrigins []string
	ReminderTZ     *time.Location

	FontRegular string
	FontBold    string
	PNGDPI      float64
	PNGWorkers  int
	Page        layout.Geometry

	MetricsEnabled bool
	RunWorker      bool

	DB       db.Config
	Cache    cache.Config
	OpenAI   openai.Config
	SendGrid sendgrid.Config
	Worker   worker.Config
	Otel     observability.OtelConfig
}

// LoadDotEnv loads .env (or ENV_FILE) when present. Variables already set in
// the environment win.
func LoadDotEnv() {
	path := envutil.String("ENV_FILE", ".env")
	_ = godotenv.Load(path)
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.String("APP_ENV", "development")
	version := envutil.String("APP_VERSION", "dev")

	tzName := envutil.String("REMINDER_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warn("Invalid REMINDER_TIMEZONE; using local time", "tz", tzName, "error", err)
		loc = time.Local
	}

	page := layout.Geometry{
		Width:  envutil.Float("PAGE_WIDTH_MM", layout.A4.Width),
		Height: envutil.Float("PAGE_HEIGHT_MM", layout.A4.Height),
		Margin: envutil.Float("PAGE_MARGIN_MM", layout.A4.Margin),
	}

	return Config{
		Environment:    env,
		Version:        version,
		Port:           envutil.String("PORT", "8080"),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),
		ReminderTZ:     loc,
		FontRegular:    envutil.String("FONT_REGULAR_PATH", ""),
		FontBold:       envutil.String("FONT_BOLD_PATH", ""),
		PNGDPI:         envutil.Float("PNG_EXPORT_DPI", 96),
		PNGWorkers:     envutil.Int("PNG_EXPORT_CONCURRENCY", 4),
		Page:           page,
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		RunWorker:      envutil.Bool("REMINDER_WORKER_ENABLED", true),
		DB:             db.ConfigFromEnv(),
		Cache:          cache.ConfigFromEnv(),
		OpenAI:         openai.ConfigFromEnv(),
		SendGrid:       sendgrid.ConfigFromEnv(),
		Worker:         worker.ConfigFromEnv(),
		Otel:           observability.OtelConfigFromEnv(ServiceName, env, version),
	}
}
