package routes

import (
	"vijayfix/handlers"
	"vijayfix/middleware"
	"vijayfix/models"

	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes registers the customer side of the booking lifecycle.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	customer := r.Group("/api/customer")
	customer.Use(middleware.RoleMiddleware(models.SenderCustomer))
	{
		customer.POST("/bookings", hb.CreateBooking)
		customer.GET("/bookings", hb.GetBookings)
		customer.GET("/bookings/active", hb.GetActiveBooking)
		customer.POST("/bookings/:id/rating", hb.RateBooking)
		customer.GET("/bill", hb.GetBill)
		customer.GET("/tracking", hb.GetTracking)

		customer.POST("/payments", hb.StartPayment)
		customer.GET("/payments/:id", hb.GetCheckout)
		customer.POST("/payments/:id/close", hb.CloseCheckout)
	}
}

// RegisterTechnicianRoutes registers the technician dashboard endpoints.
func RegisterTechnicianRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	technician := r.Group("/api/technician")
	technician.Use(middleware.RoleMiddleware(models.SenderTechnician))
	{
		technician.GET("/job", hb.GetTechnicianJob)
		technician.PUT("/job/status", hb.UpdateJobStatus)
	}
}

// RegisterSessionRoutes registers endpoints shared by both roles.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.RoleMiddleware())
	{
		api.GET("/chat", hb.GetMessages)
		api.POST("/chat", hb.SendMessage)
		api.GET("/chat/unread", hb.GetUnread)
		api.POST("/chat/read", hb.MarkRead)

		api.GET("/feed", hb.GetFeed)
		api.GET("/session/page", hb.GetPage)
		api.PUT("/session/page", hb.SetPage)
	}
}
