package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened
type EventType string

const (
	EventTicketIssued    EventType = "ticket_issued"
	EventTicketCancelled EventType = "ticket_cancelled"
	EventFlightCancelled EventType = "flight_cancelled"
)

// Event is the wire format for all booking lifecycle events
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// TicketIssuedPayload is published once per booking
type TicketIssuedPayload struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	UserID      uuid.UUID `json:"user_id"`
	FlightID    uuid.UUID `json:"flight_id"`
	Method      string    `json:"method"`
	TotalAmount float64   `json:"total_amount"`
	SeatNumbers []string  `json:"seat_numbers"`
}

// TicketCancelledPayload is published per cancelled ticket
type TicketCancelledPayload struct {
	TicketID     uuid.UUID `json:"ticket_id"`
	UserID       uuid.UUID `json:"user_id"`
	FlightID     uuid.UUID `json:"flight_id"`
	SeatNumber   string    `json:"seat_number"`
	RefundAmount float64   `json:"refund_amount"`
}

// FlightCancelledPayload is published once per cascaded flight
type FlightCancelledPayload struct {
	FlightID         uuid.UUID `json:"flight_id"`
	TicketsCancelled int       `json:"tickets_cancelled"`
	TicketsFailed    int       `json:"tickets_failed"`
}

func newEvent(eventType EventType, payload interface{}) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// ToJSON serializes the event for the wire
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
