package bookings

// PaymentMethod is how a booking was paid for
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodMile PaymentMethod = "mile"
	MethodCash PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodMile, MethodCash:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// TicketStatus is the lifecycle state of a ticket
type TicketStatus string

const (
	TicketBooked    TicketStatus = "booked"
	TicketPending   TicketStatus = "pending"
	TicketCheckedIn TicketStatus = "checked_in"
	TicketCancelled TicketStatus = "cancelled"
	TicketCompleted TicketStatus = "completed"
)

// CanBeCancelled reports whether a ticket in this state may be cancelled.
// Checked-in, completed and already-cancelled tickets are out.
func (s TicketStatus) CanBeCancelled() bool {
	return s == TicketBooked || s == TicketPending
}

// CanCheckIn reports whether a ticket in this state may check in. Pending
// tickets wait for cash settlement first.
func (s TicketStatus) CanCheckIn() bool {
	return s == TicketBooked
}

// CancellableStatuses are the states CancelTicket accepts as its starting
// point; used in the conditional status update.
func CancellableStatuses() []TicketStatus {
	return []TicketStatus{TicketBooked, TicketPending}
}
