package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookingRoutes := rg.Group("/bookings")
	{
		bookingRoutes.POST("", controller.CreateBooking) // POST /api/v1/bookings
	}

	ticketRoutes := rg.Group("/tickets")
	{
		ticketRoutes.GET("/:id", controller.GetTicket)           // GET /api/v1/tickets/:id
		ticketRoutes.POST("/:id/check-in", controller.CheckIn)   // POST /api/v1/tickets/:id/check-in
		ticketRoutes.GET("/user/:id", controller.GetUserTickets) // GET /api/v1/tickets/user/:id
	}

	paymentRoutes := rg.Group("/payments")
	{
		paymentRoutes.GET("/user/:id", controller.GetUserPayments) // GET /api/v1/payments/user/:id
	}
}
