package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type scoreboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]*domain.Contributor, error)
	GetContributor(ctx context.Context, name string) (*domain.Contributor, error)
	History(ctx context.Context, name string, limit int) ([]domain.PointAward, error)
	Thresholds() domain.BadgeThresholds
}

// ContributorHandler serves leaderboard and profile endpoints.
type ContributorHandler struct {
	svc scoreboardService
	log *slog.Logger
}

// NewContributorHandler creates a ContributorHandler.
func NewContributorHandler(svc scoreboardService, logger *slog.Logger) *ContributorHandler {
	return &ContributorHandler{svc: svc, log: logger.With("handler", "contributor")}
}

// Leaderboard returns contributors ordered by points.
// GET /contributors/leaderboard?limit=10
func (h *ContributorHandler) Leaderboard(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	list, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	t := h.svc.Thresholds()
	out := make([]ContributorResponse, len(list))
	for i, p := range list {
		out[i] = toContributorResponse(p, t)
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one contributor profile.
// GET /contributors/:name
func (h *ContributorHandler) Get(c *gin.Context) {
	p, err := h.svc.GetContributor(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toContributorResponse(p, h.svc.Thresholds()))
}

// History returns the newest point awards of a contributor.
// GET /contributors/:name/history?limit=20
func (h *ContributorHandler) History(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	awards, err := h.svc.History(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]AwardResponse, len(awards))
	for i, a := range awards {
		out[i] = AwardResponse{ID: a.ID, Amount: a.Amount, Reason: a.Reason.String(), CreatedAt: a.CreatedAt}
	}
	c.JSON(http.StatusOK, out)
}
