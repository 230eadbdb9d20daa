package flights

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/shared/database/tx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrSeatNotFound   = errors.New("flight seat not found")

	// ErrSeatConflict is returned when a compare-and-set on a seat loses to
	// a concurrent writer. The caller's transaction must roll back.
	ErrSeatConflict = errors.New("seat was modified concurrently")
)

type Repository interface {
	GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	ListFlightsByPlane(ctx context.Context, planeID uuid.UUID, statuses ...FlightStatus) ([]Flight, error)
	ListFlightsByAirport(ctx context.Context, airportID uuid.UUID, statuses ...FlightStatus) ([]Flight, error)
	UpdateFlightStatus(ctx context.Context, flightID uuid.UUID, status FlightStatus) error

	GetSeat(ctx context.Context, flightID uuid.UUID, seatNumber string) (*FlightSeat, error)
	GetSeatMap(ctx context.Context, flightID uuid.UUID) ([]FlightSeat, error)

	// TryReserve moves a seat to target iff its version still equals
	// expectedVersion, bumping the version. Returns ErrSeatConflict when a
	// concurrent writer got there first.
	TryReserve(ctx context.Context, flightID uuid.UUID, seatNumber string, expectedVersion int64, target SeatAvailability) error

	// Release returns a seat to available unconditionally, bumping the
	// version. Safe to call on a seat that is already available.
	Release(ctx context.Context, flightID uuid.UUID, seatNumber string) error

	CreateFlight(ctx context.Context, flight *Flight) error
	CreateFlightSeats(ctx context.Context, seats []FlightSeat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := tx.FromContext(ctx, r.db).First(&flight, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return &flight, nil
}

func (r *repository) ListFlightsByPlane(ctx context.Context, planeID uuid.UUID, statuses ...FlightStatus) ([]Flight, error) {
	var flightList []Flight
	query := tx.FromContext(ctx, r.db).Where("plane_id = ?", planeID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&flightList).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights by plane: %w", err)
	}
	return flightList, nil
}

func (r *repository) ListFlightsByAirport(ctx context.Context, airportID uuid.UUID, statuses ...FlightStatus) ([]Flight, error) {
	var flightList []Flight
	query := tx.FromContext(ctx, r.db).
		Where("origin_airport_id = ? OR destination_airport_id = ?", airportID, airportID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&flightList).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights by airport: %w", err)
	}
	return flightList, nil
}

func (r *repository) UpdateFlightStatus(ctx context.Context, flightID uuid.UUID, status FlightStatus) error {
	result := tx.FromContext(ctx, r.db).Model(&Flight{}).
		Where("id = ?", flightID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update flight status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFlightNotFound
	}
	return nil
}

func (r *repository) GetSeat(ctx context.Context, flightID uuid.UUID, seatNumber string) (*FlightSeat, error) {
	var seat FlightSeat
	err := tx.FromContext(ctx, r.db).
		First(&seat, "flight_id = ? AND seat_number = ?", flightID, seatNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to get flight seat: %w", err)
	}
	return &seat, nil
}

func (r *repository) GetSeatMap(ctx context.Context, flightID uuid.UUID) ([]FlightSeat, error) {
	var seats []FlightSeat
	err := tx.FromContext(ctx, r.db).
		Where("flight_id = ?", flightID).
		Order("seat_number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get seat map: %w", err)
	}
	return seats, nil
}

func (r *repository) TryReserve(ctx context.Context, flightID uuid.UUID, seatNumber string, expectedVersion int64, target SeatAvailability) error {
	// Single compare-and-set statement. The version predicate is what makes
	// concurrent bookings of the same seat lose cleanly instead of double
	// selling.
	result := tx.FromContext(ctx, r.db).Model(&FlightSeat{}).
		Where("flight_id = ? AND seat_number = ? AND version = ?", flightID, seatNumber, expectedVersion).
		Updates(map[string]interface{}{
			"availability": target,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reserve seat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSeatConflict
	}
	return nil
}

func (r *repository) Release(ctx context.Context, flightID uuid.UUID, seatNumber string) error {
	result := tx.FromContext(ctx, r.db).Model(&FlightSeat{}).
		Where("flight_id = ? AND seat_number = ?", flightID, seatNumber).
		Updates(map[string]interface{}{
			"availability": SeatAvailable,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to release seat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSeatNotFound
	}
	return nil
}

func (r *repository) CreateFlight(ctx context.Context, flight *Flight) error {
	if err := tx.FromContext(ctx, r.db).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

func (r *repository) CreateFlightSeats(ctx context.Context, seats []FlightSeat) error {
	if len(seats) == 0 {
		return nil
	}
	if err := tx.FromContext(ctx, r.db).CreateInBatches(seats, 200).Error; err != nil {
		return fmt.Errorf("failed to create flight seats: %w", err)
	}
	return nil
}
