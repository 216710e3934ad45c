package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/logvault/logvault/internal/pkg/logger"
	"github.com/logvault/logvault/internal/pkg/metrics"
)

// ContextFailureRecorded is set once an error log was written for the
// request, so no other layer writes a second one.
const ContextFailureRecorded = "failure_recorded"

type AnalyticsRecorder interface {
	Record(ctx context.Context, entry *model.AnalyticsLog) error
}

type FailureRecorder interface {
	RecordFailure(ctx context.Context, message string, info map[string]any) error
}

// requestInfo is what the interceptor captures before the handler runs.
type requestInfo struct {
	path   string
	method string
	ip     string
	params map[string]string
}

func captureRequest(c *gin.Context) requestInfo {
	query := c.Request.URL.Query()
	params := make(map[string]string, len(query))
	for k, v := range query {
		if len(v) > 0 {
			params[k] = v[len(v)-1]
		}
	}
	return requestInfo{
		path:   c.Request.URL.Path,
		method: c.Request.Method,
		ip:     c.ClientIP(),
		params: params,
	}
}

func (r requestInfo) failurePayload() map[string]any {
	return map[string]any{
		"url":    r.path,
		"params": r.params,
		"ip":     r.ip,
		"method": r.method,
	}
}

// RequestInterceptor records one analytics entry for every request that
// completes, or one error log for every request that fails with a panic or
// an unhandled error. Never both.
func RequestInterceptor(analytics AnalyticsRecorder, failures FailureRecorder, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		req := captureRequest(c)
		// Client disconnects must not abort the writes below.
		ctx := context.WithoutCancel(c.Request.Context())

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := panicError(rec)
			metrics.UnhandledFailures.WithLabelValues("panic").Inc()
			recordFailure(ctx, c, failures, req, err)
			abortInternal(c)
		}()

		c.Next()

		if err := unhandledError(c); err != nil {
			metrics.UnhandledFailures.WithLabelValues("error").Inc()
			recordFailure(ctx, c, failures, req, err)
			return
		}

		entry := &model.AnalyticsLog{
			Endpoint:       req.path,
			Method:         req.method,
			IPAddress:      req.ip,
			Params:         req.params,
			ResponseStatus: c.Writer.Status(),
		}
		if err := analytics.Record(ctx, entry); err != nil {
			// The response is already on its way; the failed write itself
			// becomes the unhandled failure of this request.
			metrics.UnhandledFailures.WithLabelValues("analytics").Inc()
			recordFailure(ctx, c, failures, req, err)
		}
	}
}

func unhandledError(c *gin.Context) error {
	last := c.Errors.Last()
	if last == nil {
		return nil
	}
	if appErr := apperrors.Wrap(last.Err); appErr.Unhandled() {
		return appErr
	}
	return nil
}

func recordFailure(ctx context.Context, c *gin.Context, failures FailureRecorder, req requestInfo, cause error) {
	if c.GetBool(ContextFailureRecorded) {
		return
	}
	c.Set(ContextFailureRecorded, true)

	msg := cause.Error()
	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) && appErr.Cause != nil {
		msg = appErr.Cause.Error()
	}
	if err := failures.RecordFailure(ctx, msg, req.failurePayload()); err != nil {
		logger.LogError(ctx, err, "Failed to record error log",
			"path", req.path,
			"method", req.method,
			"original_error", msg,
		)
	}
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}

func abortInternal(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.NewInternal(nil).Public())
}
