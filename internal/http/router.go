package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studyguide-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studyguide-backend/internal/http/middleware"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string

	HealthHandler     *httpH.HealthHandler
	StudyGuideHandler *httpH.StudyGuideHandler
	ReminderHandler   *httpH.ReminderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachClientKey())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Study guides
		if h := cfg.StudyGuideHandler; h != nil {
			api.POST("/study-guide/generate", h.Generate)
			api.POST("/study-guide/export", h.Export)
			api.POST("/study-guide/layout", h.Layout)
			api.GET("/study-guide/history", h.History)
			api.GET("/study-guide/last", h.Last)
			api.GET("/study-guide/:id", h.Get)
			api.GET("/study-guide/:id/export", h.ExportStored)
		}

		// Reminders
		if cfg.ReminderHandler != nil {
			api.POST("/reminders/setup", cfg.ReminderHandler.Setup)
		}
	}

	return r
}
