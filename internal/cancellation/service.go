package cancellation

import (
	"context"
	"fmt"
	"math"
	"time"

	"skybook/internal/bookings"
	"skybook/internal/fleet"
	"skybook/internal/flights"
	"skybook/internal/shared/database/tx"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

// TicketStore is the slice of the bookings repository cancellation needs.
type TicketStore interface {
	GetTicketByID(ctx context.Context, id uuid.UUID) (*bookings.Ticket, error)
	GetTicketsByFlight(ctx context.Context, flightID uuid.UUID, statuses ...bookings.TicketStatus) ([]bookings.Ticket, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*bookings.Payment, error)
	CreatePayment(ctx context.Context, payment *bookings.Payment) error
	TransitionTicket(ctx context.Context, ticketID uuid.UUID, from []bookings.TicketStatus, target bookings.TicketStatus) error
}

// FlightStore covers seat release and flight status flips.
type FlightStore interface {
	GetFlightByID(ctx context.Context, id uuid.UUID) (*flights.Flight, error)
	ListFlightsByPlane(ctx context.Context, planeID uuid.UUID, statuses ...flights.FlightStatus) ([]flights.Flight, error)
	ListFlightsByAirport(ctx context.Context, airportID uuid.UUID, statuses ...flights.FlightStatus) ([]flights.Flight, error)
	UpdateFlightStatus(ctx context.Context, flightID uuid.UUID, status flights.FlightStatus) error
	Release(ctx context.Context, flightID uuid.UUID, seatNumber string) error
}

// FleetStore covers the plane moves the cascades perform.
type FleetStore interface {
	GetPlaneByID(ctx context.Context, id uuid.UUID) (*fleet.Plane, error)
	GetAirportByID(ctx context.Context, id uuid.UUID) (*fleet.Airport, error)
	ListPlanesByAirport(ctx context.Context, airportID uuid.UUID) ([]fleet.Plane, error)
	UpdatePlaneStatus(ctx context.Context, planeID uuid.UUID, status fleet.PlaneStatus) error
	MovePlaneToStorage(ctx context.Context, planeID uuid.UUID) error
}

// MileLedger reverses mile effects of cancelled tickets.
type MileLedger interface {
	Deduct(ctx context.Context, userID uuid.UUID, price float64, class fleet.SeatClass) (int, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int) error
}

// SeatMapInvalidator drops cached seat maps after a release.
type SeatMapInvalidator interface {
	InvalidateSeatMap(ctx context.Context, flightID uuid.UUID) error
}

// EventPublisher emits cancellation events, best effort.
type EventPublisher interface {
	PublishTicketCancelled(ctx context.Context, ticket *bookings.Ticket, refund float64) error
	PublishFlightCancelled(ctx context.Context, flightID uuid.UUID, ticketsCancelled, ticketsFailed int) error
}

// Service interface defines the contract for cancellations and cascades
type Service interface {
	CancelTicket(ctx context.Context, ticketID uuid.UUID) (*CancellationResponse, error)
	CancelFlight(ctx context.Context, flightID uuid.UUID) (*CascadeReport, error)
	ClearAirport(ctx context.Context, airportID uuid.UUID) (*CascadeReport, error)
	ReportPlaneMalfunction(ctx context.Context, planeID uuid.UUID, retire bool) (*CascadeReport, error)
}

type service struct {
	tickets   TicketStore
	flights   FlightStore
	fleet     FleetStore
	ledger    MileLedger
	tx        tx.Transactor
	seatCache SeatMapInvalidator
	events    EventPublisher
	log       *logger.Logger
}

func NewService(
	tickets TicketStore,
	flightStore FlightStore,
	fleetStore FleetStore,
	ledger MileLedger,
	transactor tx.Transactor,
	seatCache SeatMapInvalidator,
	events EventPublisher,
	log *logger.Logger,
) Service {
	return &service{
		tickets:   tickets,
		flights:   flightStore,
		fleet:     fleetStore,
		ledger:    ledger,
		tx:        transactor,
		seatCache: seatCache,
		events:    events,
		log:       log,
	}
}

// CancelTicket runs the cancellation workflow for one ticket. Every step
// commits or rolls back as one unit.
func (s *service) CancelTicket(ctx context.Context, ticketID uuid.UUID) (*CancellationResponse, error) {
	var result *CancellationResponse

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		cancelled, err := s.cancelTicketTx(txCtx, ticketID)
		if err != nil {
			return err
		}
		result = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.seatCache.InvalidateSeatMap(ctx, result.Ticket.FlightID); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate seat map cache", err, map[string]interface{}{
			"flight_id": result.Ticket.FlightID.String(),
		})
	}
	if err := s.events.PublishTicketCancelled(ctx, result.ticket, result.RefundAmount); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish ticket cancelled event", err, map[string]interface{}{
			"ticket_id": ticketID.String(),
		})
	}
	s.log.LogTicketCancelled(ctx, ticketID.String(), result.Ticket.FlightID.String(), result.Ticket.SeatNumber)

	return result, nil
}

// cancelTicketTx runs inside the cancellation transaction.
func (s *service) cancelTicketTx(ctx context.Context, ticketID uuid.UUID) (*CancellationResponse, error) {
	ticket, err := s.tickets.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	// Conditional update rejects checked-in, completed and repeated
	// cancellations in one statement.
	if err := s.tickets.TransitionTicket(ctx, ticket.ID, bookings.CancellableStatuses(), bookings.TicketCancelled); err != nil {
		return nil, err
	}
	ticket.Status = bookings.TicketCancelled

	if err := s.flights.Release(ctx, ticket.FlightID, ticket.SeatNumber); err != nil {
		return nil, err
	}

	payment, err := s.tickets.GetPaymentByID(ctx, ticket.PaymentID)
	if err != nil {
		return nil, err
	}

	refund := ticket.RefundAmount()

	milesReclaimed := 0
	milesCredited := 0
	switch payment.Method {
	case bookings.MethodCard, bookings.MethodMile:
		// Reverse the award from booking time with the same formula, so
		// the two can never drift apart.
		reclaimed, err := s.ledger.Deduct(ctx, ticket.UserID, ticket.Price, ticket.Class)
		if err != nil {
			return nil, err
		}
		milesReclaimed = reclaimed
	}
	if payment.Method == bookings.MethodMile {
		credit := int(math.Round(refund))
		if err := s.ledger.Credit(ctx, ticket.UserID, credit); err != nil {
			return nil, err
		}
		milesCredited = credit
	}

	now := time.Now().UTC()
	refundPayment := &bookings.Payment{
		UserID:      ticket.UserID,
		Method:      payment.Method,
		TotalAmount: -refund,
		Currency:    payment.Currency,
		Status:      bookings.PaymentRefunded,
		PaidAt:      &now,
	}
	if err := s.tickets.CreatePayment(ctx, refundPayment); err != nil {
		return nil, err
	}

	return newCancellationResponse(ticket, refundPayment, milesReclaimed, milesCredited), nil
}

// CancelFlight cancels every active ticket on the flight and flips the
// flight to cancelled. Individual ticket failures are counted and do not
// stop the cascade.
func (s *service) CancelFlight(ctx context.Context, flightID uuid.UUID) (*CascadeReport, error) {
	flight, err := s.flights.GetFlightByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !flight.Status.CanBeCancelled() {
		return nil, fmt.Errorf("flight %s is already %s: %w", flight.FlightNumber, flight.Status, bookings.ErrInvalidStateTransition)
	}

	report := &CascadeReport{}
	s.cancelFlightTickets(ctx, flight.ID, report)

	// The flight flips to cancelled even when some tickets could not be
	// cancelled; those stay behind for manual follow-up.
	if err := s.flights.UpdateFlightStatus(ctx, flight.ID, flights.StatusCancelled); err != nil {
		return nil, err
	}
	report.FlightsCancelled++

	if err := s.events.PublishFlightCancelled(ctx, flight.ID, report.TicketsCancelled, report.TicketsFailed); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish flight cancelled event", err, map[string]interface{}{
			"flight_id": flight.ID.String(),
		})
	}
	s.log.LogCascadeCompleted(ctx, "flight", flight.ID.String(), report.FlightsCancelled, report.TicketsCancelled, report.TicketsFailed)

	return report, nil
}

// ReportPlaneMalfunction pulls a plane out of service: every affected
// flight is cancelled and the plane moves to storage, in maintenance or
// retired state.
func (s *service) ReportPlaneMalfunction(ctx context.Context, planeID uuid.UUID, retire bool) (*CascadeReport, error) {
	plane, err := s.fleet.GetPlaneByID(ctx, planeID)
	if err != nil {
		return nil, err
	}

	report := &CascadeReport{}
	if err := s.cascadePlane(ctx, plane.ID, report); err != nil {
		return nil, err
	}

	status := fleet.PlaneStatusMaintenance
	if retire {
		status = fleet.PlaneStatusRetired
	}
	if err := s.fleet.UpdatePlaneStatus(ctx, plane.ID, status); err != nil {
		return nil, err
	}
	if err := s.fleet.MovePlaneToStorage(ctx, plane.ID); err != nil {
		return nil, err
	}

	s.log.LogCascadeCompleted(ctx, "plane", plane.ID.String(), report.FlightsCancelled, report.TicketsCancelled, report.TicketsFailed)
	return report, nil
}

// ClearAirport cancels every flight touching the airport and moves all
// planes stationed there to storage.
func (s *service) ClearAirport(ctx context.Context, airportID uuid.UUID) (*CascadeReport, error) {
	airport, err := s.fleet.GetAirportByID(ctx, airportID)
	if err != nil {
		return nil, err
	}

	report := &CascadeReport{}

	affected, err := s.flights.ListFlightsByAirport(ctx, airport.ID, flights.StatusScheduled, flights.StatusActive)
	if err != nil {
		return nil, err
	}
	for _, flight := range affected {
		s.cancelFlightTickets(ctx, flight.ID, report)
		if err := s.flights.UpdateFlightStatus(ctx, flight.ID, flights.StatusCancelled); err != nil {
			return nil, err
		}
		report.FlightsCancelled++
	}

	planes, err := s.fleet.ListPlanesByAirport(ctx, airport.ID)
	if err != nil {
		return nil, err
	}
	for _, plane := range planes {
		if err := s.fleet.MovePlaneToStorage(ctx, plane.ID); err != nil {
			return nil, err
		}
	}

	s.log.LogCascadeCompleted(ctx, "airport", airport.ID.String(), report.FlightsCancelled, report.TicketsCancelled, report.TicketsFailed)
	return report, nil
}

// cascadePlane cancels every scheduled or active flight of one plane.
func (s *service) cascadePlane(ctx context.Context, planeID uuid.UUID, report *CascadeReport) error {
	affected, err := s.flights.ListFlightsByPlane(ctx, planeID, flights.StatusScheduled, flights.StatusActive)
	if err != nil {
		return err
	}
	for _, flight := range affected {
		s.cancelFlightTickets(ctx, flight.ID, report)
		if err := s.flights.UpdateFlightStatus(ctx, flight.ID, flights.StatusCancelled); err != nil {
			return err
		}
		report.FlightsCancelled++
	}
	return nil
}

// cancelFlightTickets cancels every not-yet-terminal ticket on a flight,
// counting failures instead of propagating them. Each ticket cancellation
// is its own atomic unit; the cascade as a whole is not.
func (s *service) cancelFlightTickets(ctx context.Context, flightID uuid.UUID, report *CascadeReport) {
	tickets, err := s.tickets.GetTicketsByFlight(ctx, flightID,
		bookings.TicketBooked, bookings.TicketPending, bookings.TicketCheckedIn)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to enumerate tickets for cascade", err, map[string]interface{}{
			"flight_id": flightID.String(),
		})
		return
	}

	for _, ticket := range tickets {
		if _, err := s.CancelTicket(ctx, ticket.ID); err != nil {
			report.TicketsFailed++
			s.log.ErrorWithContext(ctx, "cascade ticket cancellation failed", err, map[string]interface{}{
				"ticket_id": ticket.ID.String(),
				"flight_id": flightID.String(),
			})
			continue
		}
		report.TicketsCancelled++
	}
}
