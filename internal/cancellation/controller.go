package cancellation

import (
	"errors"
	"net/http"

	"skybook/internal/bookings"
	"skybook/internal/fleet"
	"skybook/internal/flights"
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

// CancelTicket handles POST /api/v1/tickets/:id/cancel
func (c *Controller) CancelTicket(ctx *gin.Context) {
	ticketID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	result, err := c.service.CancelTicket(ctx.Request.Context(), ticketID)
	if err != nil {
		respondCancellationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket cancelled successfully", result, nil)
}

// CancelFlight handles POST /api/v1/flights/:id/cancel
func (c *Controller) CancelFlight(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	report, err := c.service.CancelFlight(ctx.Request.Context(), flightID)
	if err != nil {
		respondCancellationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight cancelled", report, nil)
}

// ClearAirport handles POST /api/v1/admin/airports/:id/clear
func (c *Controller) ClearAirport(ctx *gin.Context) {
	airportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid airport ID", nil, err.Error())
		return
	}

	report, err := c.service.ClearAirport(ctx.Request.Context(), airportID)
	if err != nil {
		respondCancellationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Airport cleared", report, nil)
}

// ReportPlaneMalfunction handles POST /api/v1/admin/planes/:id/malfunction
func (c *Controller) ReportPlaneMalfunction(ctx *gin.Context) {
	planeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid plane ID", nil, err.Error())
		return
	}

	// Body is optional; an empty body means maintenance, not retirement.
	var req MalfunctionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	report, err := c.service.ReportPlaneMalfunction(ctx.Request.Context(), planeID, req.Retire)
	if err != nil {
		respondCancellationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Plane taken out of service", report, nil)
}

// respondCancellationError maps domain errors onto HTTP statuses
func respondCancellationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, bookings.ErrTicketNotFound),
		errors.Is(err, bookings.ErrPaymentNotFound),
		errors.Is(err, flights.ErrFlightNotFound),
		errors.Is(err, flights.ErrSeatNotFound),
		errors.Is(err, fleet.ErrPlaneNotFound),
		errors.Is(err, fleet.ErrAirportNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Resource not found", nil, err.Error())

	case errors.Is(err, bookings.ErrInvalidStateTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Operation not allowed in current state", nil, err.Error())

	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, err.Error())
	}
}
