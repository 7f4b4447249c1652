package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyguide-backend/internal/http/response"
	"github.com/yungbote/studyguide-backend/internal/services"
)

type ReminderHandler struct {
	reminders services.ReminderService
}

func NewReminderHandler(reminders services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// POST /api/reminders/setup
func (h *ReminderHandler) Setup(c *gin.Context) {
	var req services.ReminderSetup
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := h.reminders.Setup(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	msg := "Email reminders set up successfully"
	if id == services.ReminderDisabledID {
		msg = "Email reminders are not configured on this server"
	}
	response.RespondOK(c, gin.H{"message": msg, "reminder_id": id})
}
