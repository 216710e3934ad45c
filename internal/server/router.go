package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/handler"
	"github.com/logvault/logvault/internal/middleware"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/logvault/logvault/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the router needs, built once in main.
type Deps struct {
	Logs          *service.LogService
	Analytics     *service.AnalyticsService
	Authenticator *service.Authenticator
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	// ClientIP is the peer address unless proxies are configured.
	_ = r.SetTrustedProxies(nil)

	r.Use(gin.Logger())
	r.Use(middleware.Recovery(deps.Logs))
	r.Use(middleware.RequestID())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RequestInterceptor(deps.Analytics, deps.Logs, cfg.Analytics.SkipPaths...))
	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.New(apperrors.ErrNotFound, "Not Found", nil))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "logvault"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	logHandler := handler.NewLogHandler(deps.Logs)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics)

	r.POST("/log", middleware.BasicAuth(deps.Authenticator), logHandler.Submit)
	r.GET("/logs", logHandler.List)
	r.GET("/current", logHandler.Today)
	r.GET("/analytics", analyticsHandler.List)

	return r
}
