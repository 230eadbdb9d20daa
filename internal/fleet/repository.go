package fleet

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/shared/database/tx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAirportNotFound = errors.New("airport not found")
	ErrPlaneNotFound   = errors.New("plane not found")
	ErrSeatNotFound    = errors.New("seat not found")
)

type Repository interface {
	GetAirportByID(ctx context.Context, id uuid.UUID) (*Airport, error)
	GetAirportByIATA(ctx context.Context, code string) (*Airport, error)
	ListAirports(ctx context.Context) ([]Airport, error)

	GetPlaneByID(ctx context.Context, id uuid.UUID) (*Plane, error)
	ListPlanesByAirport(ctx context.Context, airportID uuid.UUID) ([]Plane, error)
	UpdatePlaneStatus(ctx context.Context, planeID uuid.UUID, status PlaneStatus) error
	MovePlaneToStorage(ctx context.Context, planeID uuid.UUID) error
	MovePlaneToAirport(ctx context.Context, planeID, airportID uuid.UUID) error

	GetSeatsByPlaneID(ctx context.Context, planeID uuid.UUID) ([]Seat, error)
	CreateAirport(ctx context.Context, airport *Airport) error
	CreatePlane(ctx context.Context, plane *Plane) error
	CreateSeats(ctx context.Context, seats []Seat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAirportByID(ctx context.Context, id uuid.UUID) (*Airport, error) {
	var airport Airport
	err := tx.FromContext(ctx, r.db).First(&airport, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}
	return &airport, nil
}

func (r *repository) GetAirportByIATA(ctx context.Context, code string) (*Airport, error) {
	var airport Airport
	err := tx.FromContext(ctx, r.db).First(&airport, "iata_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to get airport by IATA code: %w", err)
	}
	return &airport, nil
}

func (r *repository) ListAirports(ctx context.Context) ([]Airport, error) {
	var airports []Airport
	err := tx.FromContext(ctx, r.db).Order("iata_code ASC").Find(&airports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	return airports, nil
}

func (r *repository) GetPlaneByID(ctx context.Context, id uuid.UUID) (*Plane, error) {
	var plane Plane
	err := tx.FromContext(ctx, r.db).First(&plane, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaneNotFound
		}
		return nil, fmt.Errorf("failed to get plane: %w", err)
	}
	return &plane, nil
}

func (r *repository) ListPlanesByAirport(ctx context.Context, airportID uuid.UUID) ([]Plane, error) {
	var planes []Plane
	err := tx.FromContext(ctx, r.db).Where("airport_id = ?", airportID).Find(&planes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list planes by airport: %w", err)
	}
	return planes, nil
}

func (r *repository) UpdatePlaneStatus(ctx context.Context, planeID uuid.UUID, status PlaneStatus) error {
	result := tx.FromContext(ctx, r.db).Model(&Plane{}).
		Where("id = ?", planeID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update plane status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaneNotFound
	}
	return nil
}

func (r *repository) MovePlaneToStorage(ctx context.Context, planeID uuid.UUID) error {
	result := tx.FromContext(ctx, r.db).Model(&Plane{}).
		Where("id = ?", planeID).
		Update("airport_id", nil)
	if result.Error != nil {
		return fmt.Errorf("failed to move plane to storage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaneNotFound
	}
	return nil
}

func (r *repository) MovePlaneToAirport(ctx context.Context, planeID, airportID uuid.UUID) error {
	result := tx.FromContext(ctx, r.db).Model(&Plane{}).
		Where("id = ?", planeID).
		Update("airport_id", airportID)
	if result.Error != nil {
		return fmt.Errorf("failed to move plane to airport: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaneNotFound
	}
	return nil
}

func (r *repository) GetSeatsByPlaneID(ctx context.Context, planeID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := tx.FromContext(ctx, r.db).
		Where("plane_id = ?", planeID).
		Order("seat_number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}
	return seats, nil
}

func (r *repository) CreateAirport(ctx context.Context, airport *Airport) error {
	if err := tx.FromContext(ctx, r.db).Create(airport).Error; err != nil {
		return fmt.Errorf("failed to create airport: %w", err)
	}
	return nil
}

func (r *repository) CreatePlane(ctx context.Context, plane *Plane) error {
	if err := tx.FromContext(ctx, r.db).Create(plane).Error; err != nil {
		return fmt.Errorf("failed to create plane: %w", err)
	}
	return nil
}

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	if err := tx.FromContext(ctx, r.db).CreateInBatches(seats, 200).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	return nil
}
