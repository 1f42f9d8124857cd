package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
	salons salon.Repository
}

func NewAuditLogsHandler(logger *audit.Logger, salons salon.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger, salons: salons}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.salons.GetSalon(ctx, c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "audit_list_failed")
		return
	}
	if err := middleware.Actor(c).RequireManage(s); err != nil {
		httperr.FromError(c, err, "audit_list_failed")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.logger.List(ctx, s.ID, limit)
	if err != nil {
		httperr.FromError(c, err, "audit_list_failed")
		return
	}

	httpresp.List(c, logs, limit)
}
