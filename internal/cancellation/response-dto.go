package cancellation

import (
	"time"

	"skybook/internal/bookings"
	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// CancelledTicket summarizes the ticket after cancellation
type CancelledTicket struct {
	ID         uuid.UUID             `json:"id"`
	FlightID   uuid.UUID             `json:"flight_id"`
	SeatNumber string                `json:"seat_number"`
	Class      fleet.SeatClass       `json:"class"`
	Status     bookings.TicketStatus `json:"status"`
	IssueTime  time.Time             `json:"issue_time"`
}

// CancellationResponse is the result of cancelling one ticket
type CancellationResponse struct {
	Ticket          CancelledTicket `json:"ticket"`
	RefundAmount    float64         `json:"refund_amount"`
	RefundPaymentID uuid.UUID       `json:"refund_payment_id"`
	MilesReclaimed  int             `json:"miles_reclaimed"`
	MilesCredited   int             `json:"miles_credited"`

	ticket *bookings.Ticket
}

// CascadeReport aggregates the outcome of a cascade cancellation. Failed
// tickets were left untouched; the surrounding flight still flips to
// cancelled.
type CascadeReport struct {
	FlightsCancelled int `json:"flights_cancelled"`
	TicketsCancelled int `json:"tickets_cancelled"`
	TicketsFailed    int `json:"tickets_failed"`
}

func newCancellationResponse(ticket *bookings.Ticket, refund *bookings.Payment, milesReclaimed, milesCredited int) *CancellationResponse {
	return &CancellationResponse{
		Ticket: CancelledTicket{
			ID:         ticket.ID,
			FlightID:   ticket.FlightID,
			SeatNumber: ticket.SeatNumber,
			Class:      ticket.Class,
			Status:     ticket.Status,
			IssueTime:  ticket.IssueTime,
		},
		RefundAmount:    -refund.TotalAmount,
		RefundPaymentID: refund.ID,
		MilesReclaimed:  milesReclaimed,
		MilesCredited:   milesCredited,
		ticket:          ticket,
	}
}
