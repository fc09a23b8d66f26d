// Package router wires middleware and routes into the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/config"
	"github.com/akshatworkmail12-bit/jarvis/internal/handlers"
	"github.com/akshatworkmail12-bit/jarvis/internal/middleware"
	"github.com/akshatworkmail12-bit/jarvis/internal/ratelimit"
	"github.com/akshatworkmail12-bit/jarvis/internal/version"
)

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	Commands *handlers.CommandHandler
	Files    *handlers.FileHandler
	Media    *handlers.MediaHandler
	System   *handlers.SystemHandler
	Audit    *handlers.AuditHandler
	Events   *handlers.Hub
}

// New builds the gin engine with the middleware stack and all routes.
func New(cfg *config.Config, limiter *ratelimit.Limiter, log *zap.SugaredLogger, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodySizeLimit(cfg.Server.MaxBodySize))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Info())
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter, "api_request"))
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, version.Info())
		})

		commands := api.Group("/commands")
		commands.Use(middleware.RateLimit(limiter, "command"))
		{
			commands.POST("/execute", h.Commands.Execute)
			commands.POST("/interpret", h.Commands.Interpret)
			commands.POST("/suggest", h.Commands.Suggest)
		}

		filesGroup := api.Group("/files")
		filesGroup.Use(middleware.RateLimit(limiter, "file_search"))
		{
			filesGroup.GET("/search", h.Files.Search)
			filesGroup.GET("/info", h.Files.Info)
			filesGroup.GET("/list", h.Files.List)
			filesGroup.POST("/open", h.Files.Open)
			filesGroup.POST("/create", h.Files.Create)
		}

		api.POST("/media/browse", h.Media.Browse)

		api.GET("/system/info", h.System.Info)
		api.GET("/system/apps", h.System.Apps)
		api.GET("/system/status", h.System.Status)
		api.POST("/system/screen/click", h.System.ScreenClick)

		api.GET("/audit/recent", h.Audit.Recent)

		api.GET("/events", h.Events.Handler)
	}

	return r
}
