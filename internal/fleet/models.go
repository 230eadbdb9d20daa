package fleet

import (
	"time"

	"github.com/google/uuid"
)

// Airport defines an airport reference record
type Airport struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IATACode  string    `gorm:"type:varchar(3);unique;not null" json:"iata_code"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plane defines an aircraft. AirportID is nil while the plane sits in storage.
type Plane struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModelType string      `gorm:"not null" json:"model_type"`
	Status    PlaneStatus `gorm:"type:varchar(20);check:status IN ('active', 'maintenance', 'retired');default:'active'" json:"status"`
	AirportID *uuid.UUID  `gorm:"type:uuid;index" json:"airport_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relationships
	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:PlaneID;constraint:OnDelete:CASCADE;"`
}

// Seat defines the physical seat template on a plane, independent of any
// flight. Class drives the mile multiplier; Status marks broken seats.
type Seat struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PlaneID    uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_plane_seat" json:"plane_id"`
	SeatNumber string     `gorm:"type:varchar(4);not null;uniqueIndex:idx_plane_seat" json:"seat_number"`
	Class      SeatClass  `gorm:"type:varchar(20);check:class IN ('economy', 'premium_economy', 'business', 'first');not null" json:"class"`
	Status     SeatStatus `gorm:"type:varchar(20);check:status IN ('active', 'unavailable');default:'active'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name for Airport
func (Airport) TableName() string {
	return "airports"
}

// TableName sets the table name for Plane
func (Plane) TableName() string {
	return "planes"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// InStorage reports whether the plane is detached from any airport
func (p *Plane) InStorage() bool {
	return p.AirportID == nil
}

// IsUsable reports whether the physical seat can be sold
func (s *Seat) IsUsable() bool {
	return s.Status == SeatStatusActive
}
