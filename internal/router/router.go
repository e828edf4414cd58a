package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"offboarding-service/internal/config"
	"offboarding-service/internal/handlers"
	"offboarding-service/internal/middleware"
)

// New builds the engine with middleware and all routes registered.
func New(cfg config.ServerConfig, store handlers.OffboardingStore, log *zap.Logger) *gin.Engine {
	r := gin.New()
	Setup(r, cfg, store, log)
	return r
}

func Setup(r *gin.Engine, cfg config.ServerConfig, store handlers.OffboardingStore, log *zap.Logger) {
	m := middleware.New(log, cfg.CORSAllowedOrigins)
	r.Use(m.RequestID(), m.AccessLog(), m.Recovery(), m.CORS())

	oh := handlers.NewOffboardingHandler(store, log)

	// health (also verifies DB connectivity)
	r.GET("/health", oh.Health)

	api := r.Group("/api/offboarding")
	{
		api.POST("", oh.CreateRequest)
		api.GET("", oh.ListRequests)
		api.DELETE("", oh.DeleteAllRequests)
		api.GET("/:id", oh.GetRequestByID)
		api.PUT("/:id", oh.UpdateStatus)
	}

	// the offboarding form and its assets
	if cfg.StaticDir != "" {
		files := http.FileServer(http.Dir(cfg.StaticDir))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}
}
