package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve runs one request through a fresh engine with mws in front of h,
// mounted at "/*any" for every method.
func serve(req *http.Request, h gin.HandlerFunc, mws ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(mws...)
	r.Any("/*any", h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }
