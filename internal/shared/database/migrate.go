package database

import (
	"skybook/internal/bookings"
	"skybook/internal/fleet"
	"skybook/internal/flights"
	"skybook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&fleet.Airport{},
		&fleet.Plane{},
		&fleet.Seat{},
		&flights.Flight{},
		&flights.FlightSeat{},
		&users.User{},
		&users.CreditCard{},
		&bookings.Payment{},
		&bookings.Ticket{},
	)
}
