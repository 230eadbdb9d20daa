package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightStatusCanBeCancelled(t *testing.T) {
	assert.True(t, StatusScheduled.CanBeCancelled())
	assert.True(t, StatusActive.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
}

func TestFlightIsBookable(t *testing.T) {
	flight := &Flight{Status: StatusScheduled}
	assert.True(t, flight.IsBookable())

	flight.Status = StatusActive
	assert.True(t, flight.IsBookable())

	flight.Status = StatusCancelled
	assert.False(t, flight.IsBookable())
}

func TestSeatAvailabilityIsValid(t *testing.T) {
	assert.True(t, SeatAvailable.IsValid())
	assert.True(t, SeatReserved.IsValid())
	assert.True(t, SeatSold.IsValid())
	assert.False(t, SeatAvailability("held").IsValid())
}
