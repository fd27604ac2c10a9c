package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/service/discussion"
	"github.com/heartmarshall/community-engine/internal/transport/dataloader"
)

type discussionService interface {
	CreateDiscussion(ctx context.Context, input discussion.CreateDiscussionInput) (*domain.Discussion, error)
	ListDiscussions(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error)
	GetDiscussion(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	AddComment(ctx context.Context, input discussion.AddCommentInput) (*domain.Comment, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
	LikeDiscussion(ctx context.Context, id uuid.UUID) (int, error)
	MarkSolved(ctx context.Context, input discussion.MarkSolvedInput) (*domain.Discussion, error)
}

// DiscussionHandler serves discussion and comment endpoints.
type DiscussionHandler struct {
	svc discussionService
	log *slog.Logger
}

// NewDiscussionHandler creates a DiscussionHandler.
func NewDiscussionHandler(svc discussionService, logger *slog.Logger) *DiscussionHandler {
	return &DiscussionHandler{svc: svc, log: logger.With("handler", "discussion")}
}

type createDiscussionRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Author   string `json:"author"`
}

type addCommentRequest struct {
	Author          string     `json:"author"`
	Content         string     `json:"content"`
	ParentCommentID *uuid.UUID `json:"parentCommentId"`
}

type solveRequest struct {
	Solver string `json:"solver"`
}

type counterResponse struct {
	Value int `json:"value"`
}

// List returns discussions filtered by q and category, ordered by sort.
// GET /discussions?q=&category=&sort=recent|popular
func (h *DiscussionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.svc.ListDiscussions(ctx, domain.DiscussionFilter{
		SearchText: c.Query("q"),
		Category:   domain.Category(c.Query("category")),
		Sort:       domain.DiscussionSort(c.Query("sort")),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	names := make([]string, 0, len(list))
	for _, d := range list {
		names = append(names, d.Author)
	}
	profiles, err := dataloader.LoadContributors(ctx, names)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]DiscussionResponse, len(list))
	for i, d := range list {
		out[i] = toDiscussionResponse(d)
		out[i].Comments = nil
		if p, ok := profiles[d.Author]; ok {
			out[i].AuthorBadge = p.Badge.String()
		}
	}
	c.JSON(http.StatusOK, out)
}

// Create starts a discussion.
// POST /discussions
func (h *DiscussionHandler) Create(c *gin.Context) {
	var req createDiscussionRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.CreateDiscussion(c.Request.Context(), discussion.CreateDiscussionInput{
		Title:    req.Title,
		Category: domain.Category(req.Category),
		Content:  req.Content,
		Author:   orActor(c, req.Author),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toDiscussionResponse(d))
}

// Get returns a discussion with its comment tree.
// GET /discussions/:id
func (h *DiscussionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.GetDiscussion(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toDiscussionResponse(d))
}

// View counts one view.
// POST /discussions/:id/views
func (h *DiscussionHandler) View(c *gin.Context) {
	h.counter(c, h.svc.IncrementViews)
}

// Like counts one discussion like.
// POST /discussions/:id/likes
func (h *DiscussionHandler) Like(c *gin.Context) {
	h.counter(c, h.svc.LikeDiscussion)
}

func (h *DiscussionHandler) counter(c *gin.Context, inc func(context.Context, uuid.UUID) (int, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := inc(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, counterResponse{Value: v})
}

// Solve marks a discussion solved and credits the solver.
// POST /discussions/:id/solve
func (h *DiscussionHandler) Solve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req solveRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.MarkSolved(c.Request.Context(), discussion.MarkSolvedInput{
		DiscussionID: id,
		Solver:       orActor(c, req.Solver),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toDiscussionResponse(d))
}

// AddComment posts a comment or a reply.
// POST /discussions/:id/comments
func (h *DiscussionHandler) AddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req addCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), discussion.AddCommentInput{
		DiscussionID: id,
		ParentID:     req.ParentCommentID,
		Author:       orActor(c, req.Author),
		Content:      req.Content,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}
