package routes

import (
	"net/http"
	"time"

	"foodnow-api/handlers"
	"foodnow-api/metrics"
	"foodnow-api/middleware"
	"foodnow-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the engine with the middleware chain, static uploads,
// health and metrics endpoints, and every API route
func NewRouter(h *handlers.Handler, jwt *middleware.JWT, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		metrics.Middleware(),
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	if h.Store != nil {
		r.Static(storage.PublicPrefix, h.Store.Dir())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "FoodNow API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", metrics.Handler())

	SetupRoutes(r, h, jwt)
	return r
}
