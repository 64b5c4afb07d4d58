package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
)

// RegisterTimeSlotRoutes registers the appointment endpoints.
func RegisterTimeSlotRoutes(r *gin.Engine, h *handlers.TimeSlotHandler) {
	api := r.Group("/api/timeslots")
	{
		api.GET("", h.ListTimeSlotsHandler)
		api.POST("", h.CreateTimeSlotHandler)
		api.GET("/by-day", h.ListByDayHandler)
		api.GET("/:id", h.GetTimeSlotHandler)
		api.PUT("/:id", h.UpdateTimeSlotHandler)
		api.DELETE("/:id", h.DeleteTimeSlotHandler)
	}
}

// RegisterHealthRoutes registers the health-check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", handlers.HealthzHandler)
	r.GET("/healthz/services", handlers.ServicesHealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.TimeSlotHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)
	RegisterTimeSlotRoutes(r, h)
}
