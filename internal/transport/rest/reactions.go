package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/service/reaction"
)

type reactionService interface {
	React(ctx context.Context, input reaction.ReactInput) (*domain.ReactionResult, error)
}

// ReactionHandler serves comment reaction endpoints.
type ReactionHandler struct {
	svc reactionService
	log *slog.Logger
}

// NewReactionHandler creates a ReactionHandler.
func NewReactionHandler(svc reactionService, logger *slog.Logger) *ReactionHandler {
	return &ReactionHandler{svc: svc, log: logger.With("handler", "reaction")}
}

type reactRequest struct {
	UserID       string `json:"userId"`
	ReactionType string `json:"reactionType"`
}

// React toggles the caller's reaction on a comment.
// POST /comments/:id/reactions
func (h *ReactionHandler) React(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reactRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.React(c.Request.Context(), reaction.ReactInput{
		CommentID: id,
		UserID:    orActor(c, req.UserID),
		Type:      domain.ReactionType(req.ReactionType),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toReactionResponse(res))
}
