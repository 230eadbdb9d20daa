package bookings

import (
	"github.com/google/uuid"
)

// SeatSelection is one requested seat with its optional extras
type SeatSelection struct {
	SeatNumber   string `json:"seat_number" binding:"required"`
	ExtraBaggage bool   `json:"extra_baggage"`
	MealService  bool   `json:"meal_service"`
}

// CreateBookingRequest is the payload for POST /bookings
type CreateBookingRequest struct {
	UserID   uuid.UUID       `json:"user_id" binding:"required"`
	FlightID uuid.UUID       `json:"flight_id" binding:"required"`
	Method   PaymentMethod   `json:"method" binding:"required,oneof=card mile cash"`
	Seats    []SeatSelection `json:"seats" binding:"required,min=1,dive"`
}
