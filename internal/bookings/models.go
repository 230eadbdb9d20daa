package bookings

import (
	"time"

	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// Surcharges for ticket extras, in the same currency unit as seat prices.
const (
	ExtraBaggageFee = 150.0
	MealServiceFee  = 75.0
)

// Payment defines one payment record. A booking creates exactly one
// payment covering all its tickets; a cancellation appends a second
// payment with a negative amount for the refund.
type Payment struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	Method      PaymentMethod `gorm:"type:varchar(10);check:method IN ('card', 'mile', 'cash');not null" json:"method"`
	TotalAmount float64       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Currency    string        `gorm:"type:varchar(3);not null;default:'TRY'" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(20);check:status IN ('pending', 'paid', 'refunded', 'failed');default:'pending'" json:"status"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relationships
	Tickets []Ticket `json:"tickets,omitempty" gorm:"foreignKey:PaymentID"`
}

// Ticket defines one seat purchased on one flight. Price and Class are
// copied from the FlightSeat at purchase time so refunds and mile
// reclaims use the amounts the passenger actually paid and earned.
type Ticket struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PaymentID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"payment_id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	FlightID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"flight_id"`
	SeatNumber      string          `gorm:"type:varchar(4);not null" json:"seat_number"`
	Class           fleet.SeatClass `gorm:"type:varchar(20);not null" json:"class"`
	Price           float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Status          TicketStatus    `gorm:"type:varchar(20);check:status IN ('booked', 'pending', 'checked_in', 'cancelled', 'completed');default:'booked'" json:"status"`
	HasExtraBaggage bool            `gorm:"default:false" json:"has_extra_baggage"`
	HasMealService  bool            `gorm:"default:false" json:"has_meal_service"`
	IssueTime       time.Time       `gorm:"not null" json:"issue_time"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

// RefundAmount is what the passenger gets back when this ticket is
// cancelled: seat price plus every purchased extra.
func (t *Ticket) RefundAmount() float64 {
	amount := t.Price
	if t.HasExtraBaggage {
		amount += ExtraBaggageFee
	}
	if t.HasMealService {
		amount += MealServiceFee
	}
	return amount
}
