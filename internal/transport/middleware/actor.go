package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

// ActorHeader names the caller. There is no authentication; the value is
// the display name used for reactions, registrations and authorship.
const ActorHeader = "X-User"

// Actor copies the caller name from ActorHeader into the request context.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if name := c.GetHeader(ActorHeader); name != "" {
			c.Request = c.Request.WithContext(ctxutil.WithActor(c.Request.Context(), name))
		}
		c.Next()
	}
}
