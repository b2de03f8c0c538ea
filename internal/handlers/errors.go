package handlers

import (
	"errors"
	"net/http"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBody  = "invalid request body"
	errInternal     = "internal server error"
	errInvalidID    = "invalid expense id"
	errUnauthorized = "unauthorized"
)

// statusFor maps a service error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to one status and a client-safe message and logs the cause.
func (h *Handler) writeError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	fields := append([]interface{}{"err", err}, kv...)

	var se *service.Error
	if errors.As(err, &se) && se.Kind != nil {
		h.log.Infow(logKey, fields...)
		c.JSON(statusFor(se.Kind), gin.H{"error": se.Message})
		return
	}

	h.log.Errorw(logKey, fields...)
	msg := errInternal
	if h.exposeInternal {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
