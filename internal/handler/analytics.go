package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/logvault/logvault/internal/service"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// List handles GET /analytics.
func (h *AnalyticsHandler) List(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	entries, err := h.svc.List(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		_ = c.Error(apperrors.NewInternal(err))
		return
	}
	c.JSON(http.StatusOK, entries)
}
