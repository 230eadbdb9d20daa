package flights

import (
	"time"

	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// Flight defines one scheduled flight of a plane between two airports
type Flight struct {
	ID                   uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightNumber         string       `gorm:"type:varchar(8);not null;index" json:"flight_number"`
	PlaneID              uuid.UUID    `gorm:"type:uuid;index;not null" json:"plane_id"`
	OriginAirportID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"origin_airport_id"`
	DestinationAirportID uuid.UUID    `gorm:"type:uuid;index;not null" json:"destination_airport_id"`
	DepartureTime        time.Time    `gorm:"not null" json:"departure_time"`
	ArrivalTime          time.Time    `gorm:"not null" json:"arrival_time"`
	Status               FlightStatus `gorm:"type:varchar(20);check:status IN ('scheduled', 'active', 'cancelled', 'completed');default:'scheduled'" json:"status"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// FlightSeat is one sellable seat on one flight. The composite key
// (FlightID, SeatNumber) identifies it; Version increases on every
// availability change and backs the optimistic locking of bookings.
// Class and Price are fixed from the plane's seat template when the
// flight is created.
type FlightSeat struct {
	FlightID     uuid.UUID        `gorm:"type:uuid;primaryKey" json:"flight_id"`
	SeatNumber   string           `gorm:"type:varchar(4);primaryKey" json:"seat_number"`
	Class        fleet.SeatClass  `gorm:"type:varchar(20);not null" json:"class"`
	Availability SeatAvailability `gorm:"type:varchar(20);check:availability IN ('available', 'reserved', 'sold');default:'available'" json:"availability"`
	Price        float64          `gorm:"type:decimal(10,2);not null" json:"price"`
	Version      int64            `gorm:"not null;default:0" json:"version"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName sets the table name for Flight
func (Flight) TableName() string {
	return "flights"
}

// TableName sets the table name for FlightSeat
func (FlightSeat) TableName() string {
	return "flight_seats"
}

// IsBookable reports whether tickets may still be sold on the flight
func (f *Flight) IsBookable() bool {
	return f.Status == StatusScheduled || f.Status == StatusActive
}
