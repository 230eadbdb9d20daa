package bookings

import (
	"errors"
	"net/http"

	"skybook/internal/flights"
	"skybook/internal/shared/utils/response"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// CheckIn handles POST /api/v1/tickets/:id/check-in
func (c *Controller) CheckIn(ctx *gin.Context) {
	ticketID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	ticket, err := c.service.CheckIn(ctx.Request.Context(), ticketID)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checked in successfully", ticket, nil)
}

// GetTicket handles GET /api/v1/tickets/:id
func (c *Controller) GetTicket(ctx *gin.Context) {
	ticketID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	ticket, err := c.service.GetTicket(ctx.Request.Context(), ticketID)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

// GetUserTickets handles GET /api/v1/tickets/user/:id
func (c *Controller) GetUserTickets(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	tickets, err := c.service.GetUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}

// GetUserPayments handles GET /api/v1/payments/user/:id
func (c *Controller) GetUserPayments(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	payments, err := c.service.GetUserPayments(ctx.Request.Context(), userID)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}

// respondBookingError maps domain errors onto HTTP statuses
func respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, flights.ErrFlightNotFound),
		errors.Is(err, flights.ErrSeatNotFound),
		errors.Is(err, ErrTicketNotFound),
		errors.Is(err, ErrPaymentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Resource not found", nil, err.Error())

	case errors.Is(err, flights.ErrSeatConflict):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is no longer available", nil, err.Error())

	case errors.Is(err, ErrFlightNotBookable),
		errors.Is(err, ErrInvalidStateTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Operation not allowed in current state", nil, err.Error())

	case errors.Is(err, users.ErrInsufficientMiles):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Insufficient mile balance", nil, err.Error())

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrDuplicateSeat),
		errors.Is(err, ErrNoCreditCard):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking request", nil, err.Error())

	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, err.Error())
	}
}
