package fleet

// SeatClass is the cabin class of a physical seat. The class decides the
// mile multiplier applied when a ticket on that seat is purchased.
type SeatClass string

const (
	ClassEconomy        SeatClass = "economy"
	ClassPremiumEconomy SeatClass = "premium_economy"
	ClassBusiness       SeatClass = "business"
	ClassFirst          SeatClass = "first"
)

func (c SeatClass) IsValid() bool {
	switch c {
	case ClassEconomy, ClassPremiumEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

func (c SeatClass) String() string {
	return string(c)
}

// PlaneStatus is the operational state of an aircraft
type PlaneStatus string

const (
	PlaneStatusActive      PlaneStatus = "active"
	PlaneStatusMaintenance PlaneStatus = "maintenance"
	PlaneStatusRetired     PlaneStatus = "retired"
)

func (s PlaneStatus) IsValid() bool {
	switch s {
	case PlaneStatusActive, PlaneStatusMaintenance, PlaneStatusRetired:
		return true
	}
	return false
}

// CanFly reports whether a plane in this state may serve flights
func (s PlaneStatus) CanFly() bool {
	return s == PlaneStatusActive
}

// SeatStatus is the physical state of a seat template
type SeatStatus string

const (
	SeatStatusActive      SeatStatus = "active"
	SeatStatusUnavailable SeatStatus = "unavailable"
)
