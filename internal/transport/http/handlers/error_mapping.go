package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/infra/logger"
)

// ErrorCase maps a sentinel error to the HTTP status and message it should
// surface as.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError walks the cases in order and writes the first match.
// Unmatched errors are logged with the request context and reported as a
// generic 500 so upstream details never leak to clients.
func RespondWithMappedError(c *gin.Context, log *zap.Logger, err error, cases []ErrorCase, defaultMessage string) {
	for _, ec := range cases {
		if errors.Is(err, ec.Err) {
			c.JSON(ec.Status, newErrorResponse(c, ec.Message))
			return
		}
	}

	log.Error("unhandled handler error",
		zap.String("request_id", logger.RequestIDFromContext(c.Request.Context())),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, newErrorResponse(c, defaultMessage))
}
