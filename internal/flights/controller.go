package flights

import (
	"errors"
	"net/http"

	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetFlight handles GET /api/v1/flights/:id
func (c *Controller) GetFlight(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	flight, err := c.service.GetFlight(ctx.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get flight", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight retrieved successfully", flight, nil)
}

// GetSeatMap handles GET /api/v1/flights/:id/seats
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
