package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeCapacity          = "CAPACITY"
	CodeAlreadyRegistered = "ALREADY_REGISTERED"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeConflict          = "CONFLICT"
	CodeStore             = "STORE_UNAVAILABLE"
	CodeInternal          = "INTERNAL"
)

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// writeError maps a domain error to an HTTP status and error code.
// Unexpected errors are logged and hidden behind a generic message.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	status, body := presentError(err)

	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		log.ErrorContext(ctx, "request failed",
			slog.String("error", err.Error()),
			slog.String("code", body.Code),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}

func presentError(err error) (int, ErrorBody) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorBody{Code: CodeValidation, Message: "invalid input", Fields: ve.Errors}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorBody{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrCapacity):
		return http.StatusConflict, ErrorBody{Code: CodeCapacity, Message: "event is full"}
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, ErrorBody{Code: CodeAlreadyRegistered, Message: "already registered for this event"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, ErrorBody{Code: CodeAlreadyExists, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorBody{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrStore):
		return http.StatusServiceUnavailable, ErrorBody{Code: CodeStore, Message: "storage unavailable"}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: CodeInternal, Message: "internal error"}
	}
}

// badRequest aborts with a single-field validation error.
func badRequest(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    CodeValidation,
		Message: "invalid input",
		Fields:  []domain.FieldError{{Field: field, Message: message}},
	}})
}
