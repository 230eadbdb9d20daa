package miles

import (
	"math"

	"skybook/internal/fleet"
)

// Mile multipliers per cabin class, in percent of the ticket price.
const (
	multiplierEconomy        = 5
	multiplierPremiumEconomy = 10
	multiplierBusiness       = 15
	multiplierFirst          = 20
)

// Multiplier returns the percentage applied to a ticket price for the
// given cabin class. Unknown classes earn at the economy rate.
func Multiplier(class fleet.SeatClass) int {
	switch class {
	case fleet.ClassPremiumEconomy:
		return multiplierPremiumEconomy
	case fleet.ClassBusiness:
		return multiplierBusiness
	case fleet.ClassFirst:
		return multiplierFirst
	default:
		return multiplierEconomy
	}
}

// MilesFor computes the miles earned for one ticket: the price times the
// class multiplier percentage, rounded to the nearest whole mile. The same
// function prices awards and reclaims, so a booking followed by a
// cancellation always moves the balance by equal and opposite amounts.
func MilesFor(price float64, class fleet.SeatClass) int {
	return int(math.Round(price * float64(Multiplier(class)) / 100))
}
