package bookings

import (
	"context"
	"sync"
	"testing"

	"skybook/internal/fleet"
	"skybook/internal/flights"
	"skybook/internal/miles"
	"skybook/internal/users"
	"skybook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----------------------------------------------------------------

// snapshotter lets the fake transactor roll fakes back on error, mirroring
// the all-or-nothing behavior of the real database transaction.
type snapshotter interface {
	snapshot() (restore func())
}

type fakeTx struct {
	mu     sync.Mutex
	stores []snapshotter
}

// WithinTransaction serializes transactions the way the database would
// and rolls the fakes back on error.
func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	restores := make([]func(), 0, len(f.stores))
	for _, s := range f.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type fakeSeatLedger struct {
	mu     sync.Mutex
	flight *flights.Flight
	seats  map[string]*flights.FlightSeat

	// loseRace simulates a concurrent writer winning the compare-and-set
	// for the named seats.
	loseRace map[string]bool
}

func newFakeSeatLedger(flight *flights.Flight, seats ...flights.FlightSeat) *fakeSeatLedger {
	m := make(map[string]*flights.FlightSeat, len(seats))
	for i := range seats {
		seat := seats[i]
		m[seat.SeatNumber] = &seat
	}
	return &fakeSeatLedger{flight: flight, seats: m, loseRace: make(map[string]bool)}
}

func (f *fakeSeatLedger) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := make(map[string]*flights.FlightSeat, len(f.seats))
	for k, v := range f.seats {
		copied := *v
		saved[k] = &copied
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.seats = saved
	}
}

func (f *fakeSeatLedger) GetFlightByID(_ context.Context, id uuid.UUID) (*flights.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, flights.ErrFlightNotFound
	}
	copied := *f.flight
	return &copied, nil
}

func (f *fakeSeatLedger) GetSeat(_ context.Context, flightID uuid.UUID, seatNumber string) (*flights.FlightSeat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[seatNumber]
	if !ok || seat.FlightID != flightID {
		return nil, flights.ErrSeatNotFound
	}
	copied := *seat
	return &copied, nil
}

func (f *fakeSeatLedger) TryReserve(_ context.Context, flightID uuid.UUID, seatNumber string, expectedVersion int64, target flights.SeatAvailability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[seatNumber]
	if !ok || seat.FlightID != flightID {
		return flights.ErrSeatNotFound
	}
	if f.loseRace[seatNumber] {
		seat.Version++
		f.loseRace[seatNumber] = false
	}
	if seat.Version != expectedVersion {
		return flights.ErrSeatConflict
	}
	seat.Availability = target
	seat.Version++
	return nil
}

func (f *fakeSeatLedger) availability(seatNumber string) flights.SeatAvailability {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seats[seatNumber].Availability
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*users.User
	cards map[uuid.UUID]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users: make(map[uuid.UUID]*users.User),
		cards: make(map[uuid.UUID]bool),
	}
}

func (f *fakeUserStore) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := make(map[uuid.UUID]*users.User, len(f.users))
	for k, v := range f.users {
		copied := *v
		saved[k] = &copied
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.users = saved
	}
}

func (f *fakeUserStore) addUser(balance int, hasCard bool) uuid.UUID {
	id := uuid.New()
	f.users[id] = &users.User{ID: id, FirstName: "Test", LastName: "User", Email: id.String() + "@example.com", MileBalance: balance}
	f.cards[id] = hasCard
	return id
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetCreditCard(_ context.Context, userID uuid.UUID) (*users.CreditCard, error) {
	if !f.cards[userID] {
		return nil, users.ErrCreditCardNotFound
	}
	return &users.CreditCard{UserID: userID, LastFour: "4242"}, nil
}

func (f *fakeUserStore) AddMiles(_ context.Context, userID uuid.UUID, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return users.ErrUserNotFound
	}
	user.MileBalance += amount
	return nil
}

func (f *fakeUserStore) DeductMiles(_ context.Context, userID uuid.UUID, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return users.ErrUserNotFound
	}
	user.MileBalance -= amount
	if user.MileBalance < 0 {
		user.MileBalance = 0
	}
	return nil
}

func (f *fakeUserStore) SpendMiles(_ context.Context, userID uuid.UUID, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return users.ErrUserNotFound
	}
	if user.MileBalance < amount {
		return users.ErrInsufficientMiles
	}
	user.MileBalance -= amount
	return nil
}

func (f *fakeUserStore) balance(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID].MileBalance
}

type fakeRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*Payment
	tickets  map[uuid.UUID]*Ticket
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		payments: make(map[uuid.UUID]*Payment),
		tickets:  make(map[uuid.UUID]*Ticket),
	}
}

func (f *fakeRepo) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	savedPayments := make(map[uuid.UUID]*Payment, len(f.payments))
	for k, v := range f.payments {
		copied := *v
		savedPayments[k] = &copied
	}
	savedTickets := make(map[uuid.UUID]*Ticket, len(f.tickets))
	for k, v := range f.tickets {
		copied := *v
		savedTickets[k] = &copied
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.payments = savedPayments
		f.tickets = savedTickets
	}
}

func (f *fakeRepo) CreatePayment(_ context.Context, payment *Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakeRepo) CreateTickets(_ context.Context, tickets []Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range tickets {
		if tickets[i].ID == uuid.Nil {
			tickets[i].ID = uuid.New()
		}
		copied := tickets[i]
		f.tickets[tickets[i].ID] = &copied
	}
	return nil
}

func (f *fakeRepo) GetTicketByID(_ context.Context, id uuid.UUID) (*Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeRepo) GetTicketsByFlight(_ context.Context, flightID uuid.UUID, statuses ...TicketStatus) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Ticket
	for _, ticket := range f.tickets {
		if ticket.FlightID != flightID {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, ticket.Status) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (f *fakeRepo) GetTicketsByUser(_ context.Context, userID uuid.UUID) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPaymentByID(_ context.Context, id uuid.UUID) (*Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakeRepo) GetPaymentsByUser(_ context.Context, userID uuid.UUID) ([]Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Payment
	for _, payment := range f.payments {
		if payment.UserID == userID {
			out = append(out, *payment)
		}
	}
	return out, nil
}

func (f *fakeRepo) TransitionTicket(_ context.Context, ticketID uuid.UUID, from []TicketStatus, target TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return ErrTicketNotFound
	}
	if !containsStatus(from, ticket.Status) {
		return ErrInvalidStateTransition
	}
	ticket.Status = target
	return nil
}

func containsStatus(list []TicketStatus, status TicketStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateSeatMap(context.Context, uuid.UUID) error { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishTicketIssued(context.Context, *Payment, []Ticket) error { return nil }

// ---- fixture --------------------------------------------------------------

type bookingFixture struct {
	service   Service
	repo      *fakeRepo
	seats     *fakeSeatLedger
	userStore *fakeUserStore
	flight    *flights.Flight
}

func newBookingFixture(t *testing.T, seats ...flights.FlightSeat) *bookingFixture {
	t.Helper()

	flight := &flights.Flight{
		ID:           uuid.New(),
		FlightNumber: "SB101",
		Status:       flights.StatusScheduled,
	}
	for i := range seats {
		seats[i].FlightID = flight.ID
	}

	repo := newFakeRepo()
	seatLedger := newFakeSeatLedger(flight, seats...)
	userStore := newFakeUserStore()
	tx := &fakeTx{stores: []snapshotter{repo, seatLedger, userStore}}

	svc := NewService(
		repo, seatLedger, userStore, miles.NewLedger(userStore),
		tx, noopInvalidator{}, noopPublisher{}, logger.New(),
	)

	return &bookingFixture{
		service:   svc,
		repo:      repo,
		seats:     seatLedger,
		userStore: userStore,
		flight:    flight,
	}
}

func economySeat(number string, price float64) flights.FlightSeat {
	return flights.FlightSeat{
		SeatNumber:   number,
		Class:        fleet.ClassEconomy,
		Availability: flights.SeatAvailable,
		Price:        price,
	}
}

// ---- tests ----------------------------------------------------------------

func TestCreateBookingCard(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(0, true)

	resp, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A", ExtraBaggage: true, MealService: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, MethodCard, resp.Method)
	assert.Equal(t, PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, 725.0, resp.TotalAmount, "500 seat + 150 baggage + 75 meal")
	assert.Equal(t, 25, resp.MilesAwarded, "miles come from the seat price, not the extras")
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, TicketBooked, resp.Tickets[0].Status)

	assert.Equal(t, flights.SeatSold, fx.seats.availability("1A"))
	assert.Equal(t, 25, fx.userStore.balance(userID))
}

func TestCreateBookingSoldSeatConflicts(t *testing.T) {
	seat := economySeat("1A", 500)
	seat.Availability = flights.SeatSold
	fx := newBookingFixture(t, seat)
	userID := fx.userStore.addUser(0, true)

	_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	assert.ErrorIs(t, err, flights.ErrSeatConflict)

	assert.Empty(t, fx.repo.payments, "losing booking must leave no payment behind")
	assert.Empty(t, fx.repo.tickets)
	assert.Equal(t, 0, fx.userStore.balance(userID))
}

func TestCreateBookingMultiSeatBatchRollsBack(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500), economySeat("1B", 500))

	// A concurrent writer bumps 1B's version between the service's read
	// and its compare-and-set, so 1B loses its race after 1A succeeded.
	fx.seats.loseRace["1B"] = true

	userID := fx.userStore.addUser(0, true)

	_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A"}, {SeatNumber: "1B"}},
	})
	require.Error(t, err)

	assert.Equal(t, flights.SeatAvailable, fx.seats.availability("1A"),
		"winner seat must be rolled back when a later seat loses its race")
	assert.Empty(t, fx.repo.payments)
	assert.Empty(t, fx.repo.tickets)
	assert.Equal(t, 0, fx.userStore.balance(userID))
}

func TestCreateBookingMilePayment(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(600, false)

	resp, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodMile,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	require.NoError(t, err)

	// 600 - 500 spent + 25 awarded: paying with miles still earns miles.
	assert.Equal(t, 125, fx.userStore.balance(userID))
	assert.Equal(t, 25, resp.MilesAwarded)
	assert.Equal(t, flights.SeatSold, fx.seats.availability("1A"))
}

func TestCreateBookingMileInsufficientBalance(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(499, false)

	_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodMile,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	assert.ErrorIs(t, err, users.ErrInsufficientMiles)

	assert.Equal(t, flights.SeatAvailable, fx.seats.availability("1A"),
		"seat reservation must roll back when the mile payment fails")
	assert.Equal(t, 499, fx.userStore.balance(userID))
	assert.Empty(t, fx.repo.payments)
}

func TestCreateBookingCash(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(0, false)

	resp, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCash,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentPending, resp.PaymentStatus)
	assert.Equal(t, flights.SeatReserved, fx.seats.availability("1A"), "cash holds the seat, it does not sell it")
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, TicketPending, resp.Tickets[0].Status)
	assert.Equal(t, 0, resp.MilesAwarded)
	assert.Equal(t, 0, fx.userStore.balance(userID), "no miles until cash settles")
}

func TestCreateBookingNoDoubleSale(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	first := fx.userStore.addUser(0, true)
	second := fx.userStore.addUser(0, true)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func(i int, userID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = fx.service.CreateBooking(context.Background(), CreateBookingRequest{
				UserID:   userID,
				FlightID: fx.flight.ID,
				Method:   MethodCard,
				Seats:    []SeatSelection{{SeatNumber: "1A"}},
			})
		}(i, userID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, flights.ErrSeatConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of two concurrent bookings may win the seat")
	assert.Equal(t, flights.SeatSold, fx.seats.availability("1A"))
	assert.Len(t, fx.repo.payments, 1)
}

func TestCreateBookingValidation(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(0, true)

	t.Run("duplicate seat", func(t *testing.T) {
		_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
			UserID:   userID,
			FlightID: fx.flight.ID,
			Method:   MethodCard,
			Seats:    []SeatSelection{{SeatNumber: "1A"}, {SeatNumber: "1A"}},
		})
		assert.ErrorIs(t, err, ErrDuplicateSeat)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
			UserID:   userID,
			FlightID: fx.flight.ID,
			Method:   PaymentMethod("cheque"),
			Seats:    []SeatSelection{{SeatNumber: "1A"}},
		})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("card without stored credit card", func(t *testing.T) {
		cardless := fx.userStore.addUser(0, false)
		_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
			UserID:   cardless,
			FlightID: fx.flight.ID,
			Method:   MethodCard,
			Seats:    []SeatSelection{{SeatNumber: "1A"}},
		})
		assert.ErrorIs(t, err, ErrNoCreditCard)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
			UserID:   uuid.New(),
			FlightID: fx.flight.ID,
			Method:   MethodCard,
			Seats:    []SeatSelection{{SeatNumber: "1A"}},
		})
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})
}

func TestCreateBookingCancelledFlight(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	fx.flight.Status = flights.StatusCancelled
	userID := fx.userStore.addUser(0, true)

	_, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	assert.ErrorIs(t, err, ErrFlightNotBookable)
}

func TestCheckIn(t *testing.T) {
	fx := newBookingFixture(t, economySeat("1A", 500))
	userID := fx.userStore.addUser(0, true)

	resp, err := fx.service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:   userID,
		FlightID: fx.flight.ID,
		Method:   MethodCard,
		Seats:    []SeatSelection{{SeatNumber: "1A"}},
	})
	require.NoError(t, err)
	ticketID := resp.Tickets[0].ID

	checked, err := fx.service.CheckIn(context.Background(), ticketID)
	require.NoError(t, err)
	assert.Equal(t, TicketCheckedIn, checked.Status)

	// Checking in twice is rejected.
	_, err = fx.service.CheckIn(context.Background(), ticketID)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}
