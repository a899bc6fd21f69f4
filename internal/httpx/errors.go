package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as JSON. Unclassified and persistence errors are logged
// and answered with a generic message.
func Error(c *gin.Context, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("rid", c.GetString("rid")),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(status, HTTPError{Error: "internal error"})
		return
	}
	c.JSON(status, HTTPError{Error: err.Error()})
}

// BadRequest answers a malformed payload.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, HTTPError{Error: msg})
}
