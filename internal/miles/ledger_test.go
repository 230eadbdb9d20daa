package miles

import (
	"context"
	"testing"

	"skybook/internal/fleet"
	"skybook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBalanceStore mimics the atomic balance semantics of the users
// repository: clamped deduction and conditional spend.
type fakeBalanceStore struct {
	balances map[uuid.UUID]int
}

func newFakeBalanceStore() *fakeBalanceStore {
	return &fakeBalanceStore{balances: make(map[uuid.UUID]int)}
}

func (f *fakeBalanceStore) AddMiles(_ context.Context, userID uuid.UUID, miles int) error {
	f.balances[userID] += miles
	return nil
}

func (f *fakeBalanceStore) DeductMiles(_ context.Context, userID uuid.UUID, miles int) error {
	balance := f.balances[userID] - miles
	if balance < 0 {
		balance = 0
	}
	f.balances[userID] = balance
	return nil
}

func (f *fakeBalanceStore) SpendMiles(_ context.Context, userID uuid.UUID, miles int) error {
	if f.balances[userID] < miles {
		return users.ErrInsufficientMiles
	}
	f.balances[userID] -= miles
	return nil
}

func TestLedgerAwardAndDeductRoundTrip(t *testing.T) {
	store := newFakeBalanceStore()
	ledger := NewLedger(store)
	userID := uuid.New()
	ctx := context.Background()

	awarded, err := ledger.Award(ctx, userID, Earning{Price: 1000, Class: fleet.ClassBusiness})
	require.NoError(t, err)
	assert.Equal(t, 150, awarded)
	assert.Equal(t, 150, store.balances[userID])

	deducted, err := ledger.Deduct(ctx, userID, 1000, fleet.ClassBusiness)
	require.NoError(t, err)
	assert.Equal(t, 150, deducted)
	assert.Equal(t, 0, store.balances[userID])
}

func TestLedgerAwardMultipleSeats(t *testing.T) {
	store := newFakeBalanceStore()
	ledger := NewLedger(store)
	userID := uuid.New()

	awarded, err := ledger.Award(context.Background(), userID,
		Earning{Price: 500, Class: fleet.ClassEconomy},
		Earning{Price: 1000, Class: fleet.ClassBusiness},
	)
	require.NoError(t, err)
	assert.Equal(t, 175, awarded)
	assert.Equal(t, 175, store.balances[userID])
}

func TestLedgerDeductClampsAtZero(t *testing.T) {
	store := newFakeBalanceStore()
	ledger := NewLedger(store)
	userID := uuid.New()
	ctx := context.Background()

	// The user earned 150 miles but already spent 100 of them elsewhere.
	store.balances[userID] = 50

	deducted, err := ledger.Deduct(ctx, userID, 1000, fleet.ClassBusiness)
	require.NoError(t, err)
	assert.Equal(t, 150, deducted)
	assert.Equal(t, 0, store.balances[userID], "balance must never go negative")
}

func TestLedgerSpendInsufficientBalance(t *testing.T) {
	store := newFakeBalanceStore()
	ledger := NewLedger(store)
	userID := uuid.New()

	store.balances[userID] = 400

	err := ledger.Spend(context.Background(), userID, 500)
	assert.ErrorIs(t, err, users.ErrInsufficientMiles)
	assert.Equal(t, 400, store.balances[userID], "failed spend must not touch the balance")
}

func TestLedgerCredit(t *testing.T) {
	store := newFakeBalanceStore()
	ledger := NewLedger(store)
	userID := uuid.New()

	require.NoError(t, ledger.Credit(context.Background(), userID, 725))
	assert.Equal(t, 725, store.balances[userID])

	// Zero and negative credits are no-ops.
	require.NoError(t, ledger.Credit(context.Background(), userID, 0))
	assert.Equal(t, 725, store.balances[userID])
}
