package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type insightService interface {
	GetLatestInsights(ctx context.Context) (*domain.InsightReport, error)
	Refresh(ctx context.Context) (*domain.InsightReport, error)
	ListAdminNotifications(ctx context.Context, limit int) ([]domain.AdminNotification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

// InsightHandler serves insight and admin notification endpoints.
type InsightHandler struct {
	svc insightService
	log *slog.Logger
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(svc insightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, log: logger.With("handler", "insight")}
}

// Latest returns the latest insight report.
// GET /insights
func (h *InsightHandler) Latest(c *gin.Context) {
	r, err := h.svc.GetLatestInsights(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInsightReportResponse(r))
}

// Refresh recomputes the insight report now.
// POST /insights/refresh
func (h *InsightHandler) Refresh(c *gin.Context) {
	r, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInsightReportResponse(r))
}

// Notifications returns the newest admin notifications.
// GET /admin/notifications?limit=50
func (h *InsightHandler) Notifications(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.svc.ListAdminNotifications(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]NotificationResponse, len(list))
	for i, n := range list {
		out[i] = toNotificationResponse(n)
	}
	c.JSON(http.StatusOK, out)
}

// MarkRead flags a notification as read.
// POST /admin/notifications/:id/read
func (h *InsightHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkNotificationRead(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
