package bookings

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/shared/database/tx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidStateTransition is returned when a ticket status change is
	// not allowed from the ticket's current state, for example cancelling a
	// checked-in ticket or cancelling twice.
	ErrInvalidStateTransition = errors.New("invalid ticket state transition")
)

type Repository interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	CreateTickets(ctx context.Context, tickets []Ticket) error

	GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetTicketsByFlight(ctx context.Context, flightID uuid.UUID, statuses ...TicketStatus) ([]Ticket, error)
	GetTicketsByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error)

	GetPaymentByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)

	// TransitionTicket moves a ticket to target iff its current status is in
	// from. Zero rows affected means the ticket was missing or in a state the
	// transition does not accept.
	TransitionTicket(ctx context.Context, ticketID uuid.UUID, from []TicketStatus, target TicketStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePayment(ctx context.Context, payment *Payment) error {
	if err := tx.FromContext(ctx, r.db).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *repository) CreateTickets(ctx context.Context, tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	if err := tx.FromContext(ctx, r.db).Create(&tickets).Error; err != nil {
		return fmt.Errorf("failed to create tickets: %w", err)
	}
	return nil
}

func (r *repository) GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := tx.FromContext(ctx, r.db).First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *repository) GetTicketsByFlight(ctx context.Context, flightID uuid.UUID, statuses ...TicketStatus) ([]Ticket, error) {
	var tickets []Ticket
	query := tx.FromContext(ctx, r.db).Where("flight_id = ?", flightID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tickets by flight: %w", err)
	}
	return tickets, nil
}

func (r *repository) GetTicketsByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := tx.FromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("issue_time DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets by user: %w", err)
	}
	return tickets, nil
}

func (r *repository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	err := tx.FromContext(ctx, r.db).Preload("Tickets").First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *repository) GetPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := tx.FromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by user: %w", err)
	}
	return payments, nil
}

func (r *repository) TransitionTicket(ctx context.Context, ticketID uuid.UUID, from []TicketStatus, target TicketStatus) error {
	result := tx.FromContext(ctx, r.db).Model(&Ticket{}).
		Where("id = ? AND status IN ?", ticketID, from).
		Update("status", target)
	if result.Error != nil {
		return fmt.Errorf("failed to transition ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the ticket does not exist or its state rejects the move.
		if _, err := r.GetTicketByID(ctx, ticketID); err != nil {
			return err
		}
		return ErrInvalidStateTransition
	}
	return nil
}
