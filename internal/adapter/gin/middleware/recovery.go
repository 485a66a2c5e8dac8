package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/pkg/logger"
)

// MsgInternalError is reported for panics and unhandled errors
const MsgInternalError = "Internal server error"

// Recovery turns a panic in any later handler into a 500 envelope.
// The panic value is only echoed to the client when exposeErrors is set.
func Recovery(log *zap.Logger, exposeErrors bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.Request.Context(), log).Error("panic recovered in http handler",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				abortInternal(c, fmt.Sprint(r), exposeErrors)
			}
		}()

		c.Next()
	}
}

// ErrorHandler answers requests that ended with errors attached to the
// context but no response written.
func ErrorHandler(log *zap.Logger, exposeErrors bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		logger.WithContext(c.Request.Context(), log).Error("unhandled request error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err.Err),
		)
		abortInternal(c, err.Error(), exposeErrors)
	}
}

func abortInternal(c *gin.Context, detail string, exposeErrors bool) {
	body := gin.H{"success": false, "message": MsgInternalError}
	if exposeErrors {
		body["error"] = detail
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
