package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odlagro/apoiov/internal/cache"
	"github.com/odlagro/apoiov/internal/config"
	"github.com/odlagro/apoiov/internal/logger"
	"github.com/odlagro/apoiov/internal/server/handlers"
	"github.com/odlagro/apoiov/internal/sheets"
)

// Server is the HTTP server.
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer assembles the router, the refresh cache and the sheet client.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	client := sheets.NewClient(cfg.Sheet.SheetID, cfg.FetchTimeout())
	h := handlers.NewHandlers(cfg, cache.New(), client)

	s := &Server{
		router:   gin.New(),
		handlers: h,
	}
	s.setupRoutes()

	return s
}

// setupRoutes mounts middleware and routes.
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(logger.RequestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
