package flights

import (
	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes configures all flight-related routes
func SetupFlightRoutes(rg *gin.RouterGroup, controller *Controller) {
	flightRoutes := rg.Group("/flights")
	{
		flightRoutes.GET("/:id", controller.GetFlight)        // GET /api/v1/flights/:id
		flightRoutes.GET("/:id/seats", controller.GetSeatMap) // GET /api/v1/flights/:id/seats
	}
}
