package bookings

import (
	"time"

	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// TicketResponse is one issued ticket in API responses
type TicketResponse struct {
	ID              uuid.UUID       `json:"id"`
	FlightID        uuid.UUID       `json:"flight_id"`
	SeatNumber      string          `json:"seat_number"`
	Class           fleet.SeatClass `json:"class"`
	Price           float64         `json:"price"`
	Status          TicketStatus    `json:"status"`
	HasExtraBaggage bool            `json:"has_extra_baggage"`
	HasMealService  bool            `json:"has_meal_service"`
	IssueTime       time.Time       `json:"issue_time"`
}

// BookingResponse is the result of a successful booking
type BookingResponse struct {
	PaymentID     uuid.UUID        `json:"payment_id"`
	Method        PaymentMethod    `json:"method"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	TotalAmount   float64          `json:"total_amount"`
	Currency      string           `json:"currency"`
	MilesAwarded  int              `json:"miles_awarded"`
	Tickets       []TicketResponse `json:"tickets"`
}

func newTicketResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:              t.ID,
		FlightID:        t.FlightID,
		SeatNumber:      t.SeatNumber,
		Class:           t.Class,
		Price:           t.Price,
		Status:          t.Status,
		HasExtraBaggage: t.HasExtraBaggage,
		HasMealService:  t.HasMealService,
		IssueTime:       t.IssueTime,
	}
}

func newBookingResponse(payment *Payment, tickets []Ticket, milesAwarded int) *BookingResponse {
	ticketResponses := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		ticketResponses = append(ticketResponses, newTicketResponse(t))
	}
	return &BookingResponse{
		PaymentID:     payment.ID,
		Method:        payment.Method,
		PaymentStatus: payment.Status,
		TotalAmount:   payment.TotalAmount,
		Currency:      payment.Currency,
		MilesAwarded:  milesAwarded,
		Tickets:       ticketResponses,
	}
}
