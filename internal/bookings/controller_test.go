package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"skybook/internal/flights"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService returns a canned error from every operation.
type stubService struct {
	err error
}

func (s *stubService) CreateBooking(context.Context, CreateBookingRequest) (*BookingResponse, error) {
	return nil, s.err
}

func (s *stubService) CheckIn(context.Context, uuid.UUID) (*TicketResponse, error) {
	return nil, s.err
}

func (s *stubService) GetTicket(context.Context, uuid.UUID) (*Ticket, error) {
	return nil, s.err
}

func (s *stubService) GetUserTickets(context.Context, uuid.UUID) ([]Ticket, error) {
	return nil, s.err
}

func (s *stubService) GetUserPayments(context.Context, uuid.UUID) ([]Payment, error) {
	return nil, s.err
}

func bookingRequestBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(CreateBookingRequest{
		UserID:   uuid.New(),
		FlightID: uuid.New(),
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCreateBookingErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", users.ErrUserNotFound, http.StatusNotFound},
		{"flight not found", flights.ErrFlightNotFound, http.StatusNotFound},
		{"seat not found", flights.ErrSeatNotFound, http.StatusNotFound},
		{"seat conflict", fmt.Errorf("seat 1A: %w", flights.ErrSeatConflict), http.StatusConflict},
		{"flight not bookable", ErrFlightNotBookable, http.StatusConflict},
		{"insufficient miles", users.ErrInsufficientMiles, http.StatusUnprocessableEntity},
		{"duplicate seat", ErrDuplicateSeat, http.StatusBadRequest},
		{"no credit card", ErrNoCreditCard, http.StatusBadRequest},
		{"unknown failure", fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewController(&stubService{err: tt.err})
			engine := gin.New()
			engine.POST("/bookings", controller.CreateBooking)

			req := httptest.NewRequest(http.MethodPost, "/bookings", bookingRequestBody(t))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewController(&stubService{})
	engine := gin.New()
	engine.POST("/bookings", controller.CreateBooking)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{"method":"card"`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckInErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewController(&stubService{err: ErrInvalidStateTransition})
	engine := gin.New()
	engine.POST("/tickets/:id/check-in", controller.CheckIn)

	req := httptest.NewRequest(http.MethodPost, "/tickets/"+uuid.NewString()+"/check-in", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
