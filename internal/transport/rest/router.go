package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/internal/config"
	"github.com/heartmarshall/community-engine/internal/metrics"
	"github.com/heartmarshall/community-engine/internal/transport/dataloader"
	"github.com/heartmarshall/community-engine/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Discussion  *DiscussionHandler
	Reaction    *ReactionHandler
	Contributor *ContributorHandler
	Event       *EventHandler
	Insight     *InsightHandler
	Health      *HealthHandler
}

// RouterConfig holds the cross-cutting pieces of the HTTP surface.
// Metrics, MetricsHandler and RateLimiter may be nil.
type RouterConfig struct {
	Log            *slog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Loaders        *dataloader.Repos
	RateLimiter    *middleware.RateLimiter
	RatePerMinute  int
	CORS           config.CORSConfig
}

// NewRouter builds the gin engine with probes at the root and the
// community API under /api/v1.
func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(cfg.Log),
		middleware.RequestID(),
		middleware.Actor(),
		middleware.Logger(cfg.Log),
		middleware.CORS(cfg.CORS),
		cfg.Metrics.GinMiddleware(),
	)

	r.GET("/live", h.Health.Live)
	r.GET("/ready", h.Health.Ready)
	r.GET("/health", h.Health.Health)
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	v1 := r.Group("/api/v1")
	if cfg.RateLimiter != nil {
		v1.Use(cfg.RateLimiter.Limit(cfg.RatePerMinute))
	}
	if cfg.Loaders != nil {
		v1.Use(dataloader.Middleware(cfg.Loaders))
	}

	discussions := v1.Group("/discussions")
	{
		discussions.GET("", h.Discussion.List)
		discussions.POST("", h.Discussion.Create)
		discussions.GET("/:id", h.Discussion.Get)
		discussions.POST("/:id/views", h.Discussion.View)
		discussions.POST("/:id/likes", h.Discussion.Like)
		discussions.POST("/:id/solve", h.Discussion.Solve)
		discussions.POST("/:id/comments", h.Discussion.AddComment)
	}

	v1.POST("/comments/:id/reactions", h.Reaction.React)

	contributors := v1.Group("/contributors")
	{
		contributors.GET("/leaderboard", h.Contributor.Leaderboard)
		contributors.GET("/:name", h.Contributor.Get)
		contributors.GET("/:name/history", h.Contributor.History)
	}

	events := v1.Group("/events")
	{
		events.GET("", h.Event.List)
		events.POST("", h.Event.Create)
		events.GET("/:id", h.Event.Get)
		events.POST("/:id/registrations", h.Event.Register)
	}

	v1.GET("/insights", h.Insight.Latest)
	v1.POST("/insights/refresh", h.Insight.Refresh)

	admin := v1.Group("/admin")
	{
		admin.GET("/notifications", h.Insight.Notifications)
		admin.POST("/notifications/:id/read", h.Insight.MarkRead)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorBody{Code: CodeNotFound, Message: "route not found"}})
	})

	return r
}
