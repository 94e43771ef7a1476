package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/tv-instance-generator/internal/handler"
	"github.com/noah-isme/tv-instance-generator/internal/middleware"
	"github.com/noah-isme/tv-instance-generator/internal/service"
	"github.com/noah-isme/tv-instance-generator/pkg/config"
	"github.com/noah-isme/tv-instance-generator/pkg/logger"
	corsmiddleware "github.com/noah-isme/tv-instance-generator/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tv-instance-generator/pkg/middleware/requestid"
)

type routeHandlers struct {
	instances *handler.InstanceHandler
	presets   *handler.PresetHandler
	batches   *handler.BatchHandler
	metrics   *handler.MetricsHandler
}

// Probe routes are kept out of access logs and request metrics.
var quietRoutes = []string{"/health", "/ready", "/metrics"}

func newRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, quietRoutes...))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, quietRoutes...))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.metrics.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	instances := api.Group("/instances")
	instances.GET("/defaults", h.instances.Defaults)
	instances.GET("/genres", h.instances.Genres)
	instances.POST("/generate", h.instances.Generate)
	instances.GET("/:id", h.instances.Get)
	instances.GET("/:id/export", h.instances.Export)
	instances.DELETE("/:id", h.instances.Clear)

	presets := api.Group("/presets")
	presets.GET("", h.presets.List)
	presets.GET("/:name", h.presets.Get)
	presets.POST("/:name/generate", h.presets.Generate)

	if h.batches != nil {
		api.POST("/batches", h.batches.Create)
		api.GET("/batches/:id", h.batches.Status)
		api.GET("/downloads/:token", h.batches.Download)
	}

	if cfg.Metrics.Enabled {
		api.GET("/metrics/summary", h.metrics.Summary)
	}

	return r
}
