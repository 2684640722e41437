package handler

import (
	"net/http"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/middleware"
	"github.com/askhub/askhub-backend/internal/service"
	"github.com/askhub/askhub-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the console overview and named admin actions
type AdminHandler struct {
	analytics *service.AnalyticsService
	actions   *service.ActionService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(analytics *service.AnalyticsService, actions *service.ActionService) *AdminHandler {
	return &AdminHandler{analytics: analytics, actions: actions}
}

// Overview handles GET /api/admin/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, overview)
}

// DispatchAction handles POST /api/admin/actions
func (h *AdminHandler) DispatchAction(c *gin.Context) {
	var action service.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	logger.GetLogger().Info().
		Str("action", string(action.Name)).
		Str("admin", middleware.GetUserID(c)).
		Msg("admin action dispatched")

	result, err := h.actions.Dispatch(c.Request.Context(), action)
	if err != nil {
		middleware.CountAdminAction(string(action.Name), "error")
		writeServiceError(c, err)
		return
	}

	middleware.CountAdminAction(string(action.Name), "completed")
	common.Success(c, result)
}

// Report handles GET /api/admin/report. With ?format=pdf the report is
// rendered as a downloadable PDF, otherwise it is returned as JSON.
func (h *AdminHandler) Report(c *gin.Context) {
	report, err := h.actions.GenerateSystemReport(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if c.Query("format") != "pdf" {
		common.Success(c, report)
		return
	}

	data, filename, err := service.BuildSystemReportPDF(report)
	if err != nil {
		common.Error(c, http.StatusInternalServerError, "Failed to render report", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
