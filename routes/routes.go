package routes

import (
	"net/http"
	"time"

	"bookly/handlers"
	"bookly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the constructed handlers into route registration.
type HandlerBundle struct {
	Chat         *handlers.ChatHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterChatRoutes registers the chat endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/chat", hb.Chat.HandleChat)
		api.POST("/chat/confirm", hb.Chat.HandleConfirm)
	}
}

// RegisterAvailabilityRoutes registers the direct availability endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/availability", hb.Availability.HandleAvailability)
}

// RegisterHealthRoutes registers liveness and dependency-health endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Calendar Agent API is running"})
	})
	r.GET("/health/deps", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRootRoute registers the service banner.
func RegisterRootRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Calendar Booking Agent API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterHealthRoutes(r)
	RegisterRootRoute(r)
}
