package flights

// FlightStatus is the lifecycle state of a flight
type FlightStatus string

const (
	StatusScheduled FlightStatus = "scheduled"
	StatusActive    FlightStatus = "active"
	StatusCancelled FlightStatus = "cancelled"
	StatusCompleted FlightStatus = "completed"
)

func (s FlightStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusActive, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanBeCancelled reports whether a flight in this state may be cancelled.
// Cancelled and completed flights are terminal.
func (s FlightStatus) CanBeCancelled() bool {
	return s == StatusScheduled || s == StatusActive
}

// SeatAvailability is the sale state of one flight seat
type SeatAvailability string

const (
	SeatAvailable SeatAvailability = "available"
	SeatReserved  SeatAvailability = "reserved"
	SeatSold      SeatAvailability = "sold"
)

func (a SeatAvailability) IsValid() bool {
	switch a {
	case SeatAvailable, SeatReserved, SeatSold:
		return true
	}
	return false
}
