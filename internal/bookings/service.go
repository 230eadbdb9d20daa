package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"skybook/internal/flights"
	"skybook/internal/miles"
	"skybook/internal/shared/database/tx"
	"skybook/internal/users"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

var (
	// ErrFlightNotBookable is returned when the flight is cancelled or
	// completed and cannot take new bookings.
	ErrFlightNotBookable = errors.New("flight is not open for booking")

	ErrInvalidRequest = errors.New("invalid booking request")
	ErrDuplicateSeat  = errors.New("duplicate seat number in booking request")
	ErrNoCreditCard   = errors.New("user has no stored credit card")
)

// SeatLedger is the slice of the flights repository the booking
// transaction needs.
type SeatLedger interface {
	GetFlightByID(ctx context.Context, id uuid.UUID) (*flights.Flight, error)
	GetSeat(ctx context.Context, flightID uuid.UUID, seatNumber string) (*flights.FlightSeat, error)
	TryReserve(ctx context.Context, flightID uuid.UUID, seatNumber string, expectedVersion int64, target flights.SeatAvailability) error
}

// UserStore is the slice of the users repository the booking needs.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
	GetCreditCard(ctx context.Context, userID uuid.UUID) (*users.CreditCard, error)
}

// MileLedger awards and spends loyalty miles.
type MileLedger interface {
	Award(ctx context.Context, userID uuid.UUID, earnings ...miles.Earning) (int, error)
	Spend(ctx context.Context, userID uuid.UUID, amount int) error
}

// SeatMapInvalidator drops cached seat maps after availability changed.
type SeatMapInvalidator interface {
	InvalidateSeatMap(ctx context.Context, flightID uuid.UUID) error
}

// EventPublisher emits booking lifecycle events. Delivery is best effort
// and never fails a booking.
type EventPublisher interface {
	PublishTicketIssued(ctx context.Context, payment *Payment, tickets []Ticket) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)
	CheckIn(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error)
	GetTicket(ctx context.Context, ticketID uuid.UUID) (*Ticket, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error)
}

type service struct {
	repo      Repository
	seats     SeatLedger
	userStore UserStore
	ledger    MileLedger
	tx        tx.Transactor
	seatCache SeatMapInvalidator
	events    EventPublisher
	log       *logger.Logger
}

func NewService(
	repo Repository,
	seats SeatLedger,
	userStore UserStore,
	ledger MileLedger,
	transactor tx.Transactor,
	seatCache SeatMapInvalidator,
	events EventPublisher,
	log *logger.Logger,
) Service {
	return &service{
		repo:      repo,
		seats:     seats,
		userStore: userStore,
		ledger:    ledger,
		tx:        transactor,
		seatCache: seatCache,
		events:    events,
		log:       log,
	}
}

// CreateBooking purchases a batch of seats on one flight. Seat
// transitions, payment, tickets and mile effects commit or roll back as
// one unit; losing any seat's optimistic lock fails the whole batch.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, req.Method)
	}
	if len(req.Seats) == 0 {
		return nil, fmt.Errorf("%w: no seats requested", ErrInvalidRequest)
	}
	seen := make(map[string]struct{}, len(req.Seats))
	for _, sel := range req.Seats {
		if _, dup := seen[sel.SeatNumber]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, sel.SeatNumber)
		}
		seen[sel.SeatNumber] = struct{}{}
	}

	user, err := s.userStore.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	flight, err := s.seats.GetFlightByID(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}
	if !flight.IsBookable() {
		return nil, fmt.Errorf("%w: flight %s is %s", ErrFlightNotBookable, flight.FlightNumber, flight.Status)
	}

	if req.Method == MethodCard {
		if _, err := s.userStore.GetCreditCard(ctx, user.ID); err != nil {
			if errors.Is(err, users.ErrCreditCardNotFound) {
				return nil, ErrNoCreditCard
			}
			return nil, err
		}
	}

	var (
		payment      *Payment
		tickets      []Ticket
		milesAwarded int
	)

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		payment, tickets, milesAwarded, err = s.executeBooking(txCtx, user, flight, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Post-commit effects are best effort.
	if err := s.seatCache.InvalidateSeatMap(ctx, flight.ID); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate seat map cache", err, map[string]interface{}{
			"flight_id": flight.ID.String(),
		})
	}
	if err := s.events.PublishTicketIssued(ctx, payment, tickets); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish ticket issued event", err, map[string]interface{}{
			"payment_id": payment.ID.String(),
		})
	}
	s.log.LogBookingCreated(ctx, payment.ID.String(), user.ID.String(), len(tickets))

	return newBookingResponse(payment, tickets, milesAwarded), nil
}

// executeBooking runs inside the booking transaction.
func (s *service) executeBooking(ctx context.Context, user *users.User, flight *flights.Flight, req CreateBookingRequest) (*Payment, []Ticket, int, error) {
	target := flights.SeatSold
	if req.Method == MethodCash {
		target = flights.SeatReserved
	}

	var (
		total    float64
		earnings []miles.Earning
		tickets  []Ticket
	)
	now := time.Now().UTC()

	for _, sel := range req.Seats {
		seat, err := s.seats.GetSeat(ctx, flight.ID, sel.SeatNumber)
		if err != nil {
			return nil, nil, 0, err
		}

		// Sold seats always conflict; reserved seats conflict for paid
		// methods (a cash hold is still pending settlement).
		if seat.Availability == flights.SeatSold ||
			(seat.Availability == flights.SeatReserved && req.Method != MethodCash) {
			s.log.LogBookingConflict(ctx, flight.ID.String(), sel.SeatNumber)
			return nil, nil, 0, fmt.Errorf("seat %s: %w", sel.SeatNumber, flights.ErrSeatConflict)
		}

		if err := s.seats.TryReserve(ctx, flight.ID, sel.SeatNumber, seat.Version, target); err != nil {
			if errors.Is(err, flights.ErrSeatConflict) {
				s.log.LogBookingConflict(ctx, flight.ID.String(), sel.SeatNumber)
			}
			return nil, nil, 0, fmt.Errorf("seat %s: %w", sel.SeatNumber, err)
		}

		total += sel.price(seat.Price)
		earnings = append(earnings, miles.Earning{Price: seat.Price, Class: seat.Class})
		tickets = append(tickets, Ticket{
			UserID:          user.ID,
			FlightID:        flight.ID,
			SeatNumber:      sel.SeatNumber,
			Class:           seat.Class,
			Price:           seat.Price,
			Status:          ticketStatusFor(req.Method),
			HasExtraBaggage: sel.ExtraBaggage,
			HasMealService:  sel.MealService,
			IssueTime:       now,
		})
	}

	payment := &Payment{
		UserID:      user.ID,
		Method:      req.Method,
		TotalAmount: total,
		Currency:    "TRY",
		Status:      PaymentPending,
	}

	milesAwarded := 0
	switch req.Method {
	case MethodCard:
		payment.Status = PaymentPaid
		payment.PaidAt = &now

	case MethodMile:
		// The whole currency total is charged in miles; the balance check
		// and deduction are one conditional update.
		if err := s.ledger.Spend(ctx, user.ID, int(math.Round(total))); err != nil {
			return nil, nil, 0, err
		}
		payment.Status = PaymentPaid
		payment.PaidAt = &now

	case MethodCash:
		// Pending external settlement: seats stay reserved, tickets and
		// payment pending, no miles yet.
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, nil, 0, err
	}
	for i := range tickets {
		tickets[i].PaymentID = payment.ID
	}
	if err := s.repo.CreateTickets(ctx, tickets); err != nil {
		return nil, nil, 0, err
	}

	if req.Method != MethodCash {
		awarded, err := s.ledger.Award(ctx, user.ID, earnings...)
		if err != nil {
			return nil, nil, 0, err
		}
		milesAwarded = awarded
	}

	return payment, tickets, milesAwarded, nil
}

// CheckIn flips a booked ticket to checked_in.
func (s *service) CheckIn(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	if err := s.repo.TransitionTicket(ctx, ticketID, []TicketStatus{TicketBooked}, TicketCheckedIn); err != nil {
		return nil, err
	}
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	resp := newTicketResponse(*ticket)
	return &resp, nil
}

func (s *service) GetTicket(ctx context.Context, ticketID uuid.UUID) (*Ticket, error) {
	return s.repo.GetTicketByID(ctx, ticketID)
}

func (s *service) GetUserTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	return s.repo.GetTicketsByUser(ctx, userID)
}

func (s *service) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	return s.repo.GetPaymentsByUser(ctx, userID)
}

func ticketStatusFor(method PaymentMethod) TicketStatus {
	if method == MethodCash {
		return TicketPending
	}
	return TicketBooked
}

// price is the seat price plus selected extras.
func (sel SeatSelection) price(seatPrice float64) float64 {
	total := seatPrice
	if sel.ExtraBaggage {
		total += ExtraBaggageFee
	}
	if sel.MealService {
		total += MealServiceFee
	}
	return total
}
