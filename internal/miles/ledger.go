package miles

import (
	"context"
	"fmt"

	"skybook/internal/fleet"

	"github.com/google/uuid"
)

// BalanceStore is the slice of the users repository the ledger needs.
type BalanceStore interface {
	AddMiles(ctx context.Context, userID uuid.UUID, miles int) error
	DeductMiles(ctx context.Context, userID uuid.UUID, miles int) error
	SpendMiles(ctx context.Context, userID uuid.UUID, miles int) error
}

// Earning is one priced seat a user earns miles for.
type Earning struct {
	Price float64
	Class fleet.SeatClass
}

// Ledger applies mile awards and reclaims to user balances. All arithmetic
// goes through MilesFor so a booking and its cancellation always move the
// balance by the same amount.
type Ledger struct {
	store BalanceStore
}

func NewLedger(store BalanceStore) *Ledger {
	return &Ledger{store: store}
}

// Award credits the miles earned for the given seats and returns the total
// awarded.
func (l *Ledger) Award(ctx context.Context, userID uuid.UUID, earnings ...Earning) (int, error) {
	total := 0
	for _, e := range earnings {
		total += MilesFor(e.Price, e.Class)
	}
	if total == 0 {
		return 0, nil
	}
	if err := l.store.AddMiles(ctx, userID, total); err != nil {
		return 0, fmt.Errorf("failed to award miles: %w", err)
	}
	return total, nil
}

// Deduct reclaims the miles that were awarded for one seat. The balance is
// clamped at zero, so a user who already spent those miles does not go
// negative.
func (l *Ledger) Deduct(ctx context.Context, userID uuid.UUID, price float64, class fleet.SeatClass) (int, error) {
	miles := MilesFor(price, class)
	if miles == 0 {
		return 0, nil
	}
	if err := l.store.DeductMiles(ctx, userID, miles); err != nil {
		return 0, fmt.Errorf("failed to deduct miles: %w", err)
	}
	return miles, nil
}

// Credit adds an exact amount of miles, used to refund a mile payment.
func (l *Ledger) Credit(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return nil
	}
	if err := l.store.AddMiles(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to credit miles: %w", err)
	}
	return nil
}

// Spend pays for a booking with miles. Fails with the store's insufficient
// balance error when the user cannot cover the amount.
func (l *Ledger) Spend(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return nil
	}
	return l.store.SpendMiles(ctx, userID, amount)
}
