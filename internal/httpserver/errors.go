package httpserver

import (
	"errors"
	"net/http"

	"ecoshop/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// writeError maps err onto a status code. Validation and not-found messages
// are returned to the client; anything else is logged and replaced with a
// generic message.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.Reason, "field": ve.Field})
	case errors.Is(err, domain.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}
