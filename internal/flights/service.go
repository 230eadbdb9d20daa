package flights

import (
	"context"
	"fmt"

	"skybook/internal/shared/constants"
	"skybook/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for flight read operations
type Service interface {
	GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error)
	GetSeatMap(ctx context.Context, flightID uuid.UUID) (*SeatMapResponse, error)

	// InvalidateSeatMap drops the cached seat map after a booking or
	// cancellation changed seat availability.
	InvalidateSeatMap(ctx context.Context, flightID uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error) {
	return s.repo.GetFlightByID(ctx, id)
}

// GetSeatMap returns the seat map for a flight, cache-aside with a short
// TTL since availability changes on every booking.
func (s *service) GetSeatMap(ctx context.Context, flightID uuid.UUID) (*SeatMapResponse, error) {
	cacheKey := constants.SeatMapKey(flightID.String())

	var cached SeatMapResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	flight, err := s.repo.GetFlightByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.GetSeatMap(ctx, flightID)
	if err != nil {
		return nil, err
	}

	response := NewSeatMapResponse(flight, seats)

	if err := s.cache.Set(ctx, cacheKey, response, constants.TTLSeatMap); err != nil {
		// Cache failures must not break reads.
		return response, nil
	}
	return response, nil
}

func (s *service) InvalidateSeatMap(ctx context.Context, flightID uuid.UUID) error {
	if err := s.cache.DeletePattern(ctx, constants.FlightKeysPattern(flightID.String())); err != nil {
		return fmt.Errorf("failed to invalidate seat map cache: %w", err)
	}
	return nil
}
