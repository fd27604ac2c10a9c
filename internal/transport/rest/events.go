package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/service/event"
	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

type eventService interface {
	CreateEvent(ctx context.Context, input event.CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	Register(ctx context.Context, input event.RegisterInput) (*domain.RegistrationResult, error)
}

// EventHandler serves event endpoints.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "event")}
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	MaxUsers    int       `json:"maxUsers"`
}

type registerRequest struct {
	UserID string `json:"userId"`
}

func actorName(c *gin.Context) string {
	name, _ := ctxutil.ActorFromCtx(c.Request.Context())
	return name
}

// List returns all events with the caller's registration flag.
// GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	actor := actorName(c)
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e, actor)
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one event.
// GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(e, actorName(c)))
}

// Create schedules an event.
// POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.svc.CreateEvent(c.Request.Context(), event.CreateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		MaxUsers:    req.MaxUsers,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(e, ""))
}

// Register takes a seat for the caller. A full event or a repeated
// registration answers 409 with the current event state in the body.
// POST /events/:id/registrations
func (h *EventHandler) Register(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := orActor(c, req.UserID)

	res, err := h.svc.Register(c.Request.Context(), event.RegisterInput{EventID: id, UserID: userID})
	if err != nil {
		if res != nil && res.Event != nil && (errors.Is(err, domain.ErrCapacity) || errors.Is(err, domain.ErrAlreadyRegistered)) {
			status, body := presentError(err)
			c.AbortWithStatusJSON(status, gin.H{
				"error":  body,
				"result": RegistrationResponse{Success: false, Event: toEventResponse(res.Event, userID)},
			})
			return
		}
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, RegistrationResponse{Success: res.Success, Event: toEventResponse(res.Event, userID)})
}
