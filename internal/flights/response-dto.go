package flights

import (
	"time"

	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// SeatMapEntry is one seat in the seat map response
type SeatMapEntry struct {
	SeatNumber   string           `json:"seat_number"`
	Class        fleet.SeatClass  `json:"class"`
	Availability SeatAvailability `json:"availability"`
	Price        float64          `json:"price"`
}

// SeatMapResponse is the cached seat map payload for one flight
type SeatMapResponse struct {
	FlightID       uuid.UUID      `json:"flight_id"`
	FlightNumber   string         `json:"flight_number"`
	Status         FlightStatus   `json:"status"`
	DepartureTime  time.Time      `json:"departure_time"`
	TotalSeats     int            `json:"total_seats"`
	AvailableSeats int            `json:"available_seats"`
	Seats          []SeatMapEntry `json:"seats"`
}

func NewSeatMapResponse(flight *Flight, seats []FlightSeat) *SeatMapResponse {
	entries := make([]SeatMapEntry, 0, len(seats))
	available := 0
	for _, seat := range seats {
		if seat.Availability == SeatAvailable {
			available++
		}
		entries = append(entries, SeatMapEntry{
			SeatNumber:   seat.SeatNumber,
			Class:        seat.Class,
			Availability: seat.Availability,
			Price:        seat.Price,
		})
	}
	return &SeatMapResponse{
		FlightID:       flight.ID,
		FlightNumber:   flight.FlightNumber,
		Status:         flight.Status,
		DepartureTime:  flight.DepartureTime,
		TotalSeats:     len(seats),
		AvailableSeats: available,
		Seats:          entries,
	}
}
