package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	openAIConfigured bool
	mailConfigured   bool
	now              func() time.Time
}

func NewHealthHandler(openAIConfigured, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		openAIConfigured: openAIConfigured,
		mailConfigured:   mailConfigured,
		now:              time.Now,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "OK",
		"timestamp":         h.now().UTC().Format(time.RFC3339),
		"openai_configured": h.openAIConfigured,
		"mail_configured":   h.mailConfigured,
	})
}
