package users

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/shared/database/tx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCreditCardNotFound = errors.New("credit card not found")

	// ErrInsufficientMiles is returned when a mile payment needs more miles
	// than the user's current balance.
	ErrInsufficientMiles = errors.New("insufficient mile balance")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error

	// AddMiles credits miles to the user's balance.
	AddMiles(ctx context.Context, userID uuid.UUID, miles int) error

	// DeductMiles removes up to miles from the balance, clamping at zero.
	// Used when reclaiming miles that were awarded for a cancelled ticket.
	DeductMiles(ctx context.Context, userID uuid.UUID, miles int) error

	// SpendMiles removes exactly miles from the balance, failing with
	// ErrInsufficientMiles when the balance does not cover it.
	SpendMiles(ctx context.Context, userID uuid.UUID, miles int) error

	GetCreditCard(ctx context.Context, userID uuid.UUID) (*CreditCard, error)
	CreateCreditCard(ctx context.Context, card *CreditCard) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := tx.FromContext(ctx, r.db).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := tx.FromContext(ctx, r.db).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := tx.FromContext(ctx, r.db).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *repository) AddMiles(ctx context.Context, userID uuid.UUID, miles int) error {
	if miles <= 0 {
		return nil
	}
	result := tx.FromContext(ctx, r.db).Model(&User{}).
		Where("id = ?", userID).
		Update("mile_balance", gorm.Expr("mile_balance + ?", miles))
	if result.Error != nil {
		return fmt.Errorf("failed to add miles: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) DeductMiles(ctx context.Context, userID uuid.UUID, miles int) error {
	if miles <= 0 {
		return nil
	}
	// GREATEST keeps the balance from going negative when the user already
	// spent miles that were awarded for this ticket.
	result := tx.FromContext(ctx, r.db).Model(&User{}).
		Where("id = ?", userID).
		Update("mile_balance", gorm.Expr("GREATEST(mile_balance - ?, 0)", miles))
	if result.Error != nil {
		return fmt.Errorf("failed to deduct miles: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SpendMiles(ctx context.Context, userID uuid.UUID, miles int) error {
	if miles <= 0 {
		return nil
	}
	// Conditional update: the WHERE clause makes balance check and deduction
	// one atomic statement, so two concurrent mile payments cannot both pass
	// a stale balance check.
	result := tx.FromContext(ctx, r.db).Model(&User{}).
		Where("id = ? AND mile_balance >= ?", userID, miles).
		Update("mile_balance", gorm.Expr("mile_balance - ?", miles))
	if result.Error != nil {
		return fmt.Errorf("failed to spend miles: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing user from a short balance.
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientMiles
	}
	return nil
}

func (r *repository) GetCreditCard(ctx context.Context, userID uuid.UUID) (*CreditCard, error) {
	var card CreditCard
	err := tx.FromContext(ctx, r.db).First(&card, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditCardNotFound
		}
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	return &card, nil
}

func (r *repository) CreateCreditCard(ctx context.Context, card *CreditCard) error {
	if err := tx.FromContext(ctx, r.db).Create(card).Error; err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}
