package cancellation

import (
	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes configures ticket cancellation and the admin
// cascade operations
func SetupCancellationRoutes(rg *gin.RouterGroup, controller *Controller) {
	ticketRoutes := rg.Group("/tickets")
	{
		ticketRoutes.POST("/:id/cancel", controller.CancelTicket) // POST /api/v1/tickets/:id/cancel
	}

	flightRoutes := rg.Group("/flights")
	{
		flightRoutes.POST("/:id/cancel", controller.CancelFlight) // POST /api/v1/flights/:id/cancel
	}

	adminRoutes := rg.Group("/admin")
	{
		adminRoutes.POST("/airports/:id/clear", controller.ClearAirport)               // POST /api/v1/admin/airports/:id/clear
		adminRoutes.POST("/planes/:id/malfunction", controller.ReportPlaneMalfunction) // POST /api/v1/admin/planes/:id/malfunction
	}
}
