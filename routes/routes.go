package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"imara/handlers"
	"imara/middleware"
)

// RegisterBusinessRoutes registers discovery and availability endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		api.GET("", hb.ListBusinesses)
		api.GET("/:id", hb.GetBusiness)
		api.GET("/:id/slots", hb.GetDaySlots)
		api.GET("/:id/availability", hb.CheckAvailability)
	}
}

// RegisterBookingRoutes registers the appointment lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.POST("", hb.CreateBooking)
		api.GET("/client/:id", hb.GetClientBookings)
		api.GET("/business/:id", hb.GetBusinessBookings)
		api.PUT("/:id/confirm", hb.ConfirmBooking)
		api.PUT("/:id/cancel", hb.CancelBooking)
		api.PUT("/:id/complete", hb.CompleteBooking)
		api.PUT("/:id/no-show", hb.MarkNoShow)
	}
}

// RegisterChatRoutes registers conversation and messaging endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.GET("/conversations", hb.ListConversations)
		api.GET("/conversations/search", hb.SearchConversations)
		api.GET("/conversations/:id/messages", hb.GetMessages)
		api.POST("/conversations/:id/messages", hb.SendMessage)
		api.PUT("/conversations/:id/read", hb.MarkConversationRead)
		api.PUT("/conversations/:id/archive", hb.ArchiveConversation)
		api.GET("/unread", hb.GetUnreadTotal)
	}
}

// RegisterUserRoutes registers device and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.PUT("/fcm-token", hb.UpdateFCMToken)
	}
}

// RegisterMediaRoutes registers image upload endpoints.
func RegisterMediaRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/media")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.POST("/upload", hb.UploadImage)
		api.DELETE("", hb.DeleteImage)
		api.GET("/url", hb.GetImageURL)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Imara"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBusinessRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterMediaRoutes(r, hb)
}
