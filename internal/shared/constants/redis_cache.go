package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values.
// Pattern: skybook:{module}:{operation}:{identifier}

// Static reference data (airports, planes, seat templates)
const (
	TTLStaticLong  = 24 * time.Hour
	TTLStaticShort = 6 * time.Hour
)

// Dynamic data (seat availability changes on every booking/cancellation)
const (
	TTLSeatMap      = 30 * time.Second
	TTLFlightDetail = 5 * time.Minute
)

// Key builders

func SeatMapKey(flightID string) string {
	return fmt.Sprintf("skybook:flights:seatmap:%s", flightID)
}

func FlightDetailKey(flightID string) string {
	return fmt.Sprintf("skybook:flights:detail:%s", flightID)
}

func FlightKeysPattern(flightID string) string {
	return fmt.Sprintf("skybook:flights:*:%s", flightID)
}
