package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

// pathID parses the ":id" path parameter. On failure it writes a 400 and
// returns false.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id", "must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit parses the optional "limit" query parameter. 0 means unset.
func queryLimit(c *gin.Context) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		badRequest(c, "limit", "must be a non-negative integer")
		return 0, false
	}
	return n, true
}

// bindJSON decodes an optional JSON body into dst. An empty body leaves dst unchanged.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "body", "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// orActor returns name, or the caller from the X-User header when name is empty.
func orActor(c *gin.Context, name string) string {
	if name != "" {
		return name
	}
	actor, _ := ctxutil.ActorFromCtx(c.Request.Context())
	return actor
}
