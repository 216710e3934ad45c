package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/logvault/logvault/internal/service"
)

type LogHandler struct {
	svc *service.LogService
}

func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{svc: svc}
}

// Submit handles POST /log.
func (h *LogHandler) Submit(c *gin.Context) {
	var in model.ErrorLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(apperrors.NewInternal(err))
		return
	}
	c.JSON(http.StatusOK, model.SubmitResponse{Status: "success", ID: id})
}

// List handles GET /logs.
func (h *LogHandler) List(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	logs, err := h.svc.List(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		_ = c.Error(apperrors.NewInternal(err))
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Today handles GET /current.
func (h *LogHandler) Today(c *gin.Context) {
	logs, err := h.svc.ListToday(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.NewInternal(err))
		return
	}
	c.JSON(http.StatusOK, logs)
}
