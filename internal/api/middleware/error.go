package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
)

// ErrorHandlingMiddleware recovers panics, logs them with a stack trace, and
// returns a standardized 500 response.
func ErrorHandlingMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"ip":          c.ClientIP(),
			"panic":       recovered,
			"stack_trace": string(debug.Stack()),
		}).Error("Panic recovered in API middleware")

		utils.SendError(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}
