package users

import (
	"time"

	"github.com/google/uuid"
)

// User defines a passenger account. MileBalance is the loyalty balance in
// whole miles; it is mutated only through the repository's atomic ops and
// never goes below zero.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	MileBalance int       `gorm:"not null;default:0" json:"mile_balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreditCard defines a stored card used for card payments. Only the last
// four digits are persisted.
type CreditCard struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CardHolder  string    `gorm:"not null" json:"card_holder"`
	LastFour    string    `gorm:"type:varchar(4);not null" json:"last_four"`
	ExpiryMonth int       `gorm:"not null" json:"expiry_month"`
	ExpiryYear  int       `gorm:"not null" json:"expiry_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}

// TableName sets the table name for CreditCard
func (CreditCard) TableName() string {
	return "credit_cards"
}

// FullName returns the passenger's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
