package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/logvault/logvault/internal/pkg/logger"
	"github.com/logvault/logvault/internal/pkg/metrics"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apperrors.Wrap(c.Errors.Last().Err)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Type,
			"client_ip", c.ClientIP(),
		}
		if appErr.Unhandled() {
			logger.LogError(c.Request.Context(), appErr, "Internal Server Error", logFields...)
		} else {
			logger.Warn(appErr.Message, logFields...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.Public())
	}
}

// Recovery is the last line of defence: a panic that escaped everything
// else still gets one error log, unless the interceptor already wrote one,
// and a generic 500.
func Recovery(failures FailureRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := captureRequest(c)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := panicError(rec)
			logger.Error("Unhandled panic", "path", req.path, "method", req.method, "error", err.Error())
			metrics.UnhandledFailures.WithLabelValues("escaped").Inc()
			safeRecordFailure(c, failures, req, err)
			abortInternal(c)
		}()
		c.Next()
	}
}

func safeRecordFailure(c *gin.Context, failures FailureRecorder, req requestInfo, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Error log write panicked", "path", req.path, "error", panicError(rec).Error())
		}
	}()
	recordFailure(context.WithoutCancel(c.Request.Context()), c, failures, req, err)
}
