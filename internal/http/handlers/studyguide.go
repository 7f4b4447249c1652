package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/http/middleware"
	"github.com/yungbote/studyguide-backend/internal/http/response"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyguide-backend/internal/render"
	"github.com/yungbote/studyguide-backend/internal/services"
)

type StudyGuideHandler struct {
	guides  services.StudyGuideService
	exports services.ExportService
}

func NewStudyGuideHandler(guides services.StudyGuideService, exports services.ExportService) *StudyGuideHandler {
	return &StudyGuideHandler{guides: guides, exports: exports}
}

// POST /api/study-guide/generate
func (h *StudyGuideHandler) Generate(c *gin.Context) {
	var req types.StudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	plan, err := h.guides.Generate(c.Request.Context(), req, ctxutil.ClientKey(c.Request.Context()))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// GET /api/study-guide/history
func (h *StudyGuideHandler) History(c *gin.Context) {
	limit := services.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = n
	}
	rows, err := h.guides.History(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": rows})
}

// GET /api/study-guide/last
func (h *StudyGuideHandler) Last(c *gin.Context) {
	entry, err := h.guides.Last(c.Request.Context(), ctxutil.ClientKey(c.Request.Context()))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// GET /api/study-guide/:id
func (h *StudyGuideHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_plan_id", err)
		return
	}
	plan, err := h.guides.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// GET /api/study-guide/:id/export
func (h *StudyGuideHandler) ExportStored(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_plan_id", err)
		return
	}
	sections, format, ok := exportParams(c)
	if !ok {
		return
	}
	plan, err := h.guides.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	h.export(c, *plan, sections, format)
}

// POST /api/study-guide/export
func (h *StudyGuideHandler) Export(c *gin.Context) {
	sections, format, ok := exportParams(c)
	if !ok {
		return
	}
	var plan types.StudyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.export(c, plan, sections, format)
}

// POST /api/study-guide/layout
func (h *StudyGuideHandler) Layout(c *gin.Context) {
	sections, err := layout.ParseSections(c.Query("type"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_type", err)
		return
	}
	var plan types.StudyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.exports.Layout(c.Request.Context(), plan, sections)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *StudyGuideHandler) export(c *gin.Context, plan types.StudyPlan, sections layout.Sections, format render.Format) {
	art, err := h.exports.Export(c.Request.Context(), plan, sections, format)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Header(middleware.HeaderPageCount, strconv.Itoa(art.Pages))
	c.Data(http.StatusOK, art.ContentType, art.Body)
}

func exportParams(c *gin.Context) (layout.Sections, render.Format, bool) {
	sections, err := layout.ParseSections(c.Query("type"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_type", err)
		return 0, "", false
	}
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unsupported_format", err)
		return 0, "", false
	}
	return sections, format, true
}
