package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skybook/internal/fleet"
	"skybook/internal/flights"
	"skybook/internal/miles"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Base prices per cabin class for generated flight seats.
var basePrices = map[fleet.SeatClass]float64{
	fleet.ClassEconomy:        500,
	fleet.ClassPremiumEconomy: 900,
	fleet.ClassBusiness:       1800,
	fleet.ClassFirst:          3200,
}

type Seeder struct {
	db          *database.DB
	fleetRepo   fleet.Repository
	flightRepo  flights.Repository
	userRepo    users.Repository
	airports    []fleet.Airport
	planes      []fleet.Plane
	planeSeats  map[uuid.UUID][]fleet.Seat
	demoUserIDs []uuid.UUID
}

func main() {
	fmt.Println("Starting skybook database seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	pg := db.GetPostgreSQL()
	seeder := &Seeder{
		db:         db,
		fleetRepo:  fleet.NewRepository(pg),
		flightRepo: flights.NewRepository(pg),
		userRepo:   users.NewRepository(pg),
		planeSeats: make(map[uuid.UUID][]fleet.Seat),
	}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"payments",
		"flight_seats",
		"flights",
		"credit_cards",
		"users",
		"seats",
		"planes",
		"airports",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.seedAirports(ctx); err != nil {
		return err
	}
	if err := s.seedPlanes(ctx); err != nil {
		return err
	}
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedFlights(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedAirports(ctx context.Context) error {
	airports := []fleet.Airport{
		{IATACode: "IST", Name: "Istanbul Airport", City: "Istanbul", Country: "Turkey", Timezone: "Europe/Istanbul"},
		{IATACode: "ESB", Name: "Esenboga Airport", City: "Ankara", Country: "Turkey", Timezone: "Europe/Istanbul"},
		{IATACode: "ADB", Name: "Adnan Menderes Airport", City: "Izmir", Country: "Turkey", Timezone: "Europe/Istanbul"},
		{IATACode: "AYT", Name: "Antalya Airport", City: "Antalya", Country: "Turkey", Timezone: "Europe/Istanbul"},
	}

	for i := range airports {
		airports[i].ID = uuid.New()
		if err := s.fleetRepo.CreateAirport(ctx, &airports[i]); err != nil {
			return err
		}
	}
	s.airports = airports
	fmt.Printf("  airports: %d\n", len(airports))
	return nil
}

func (s *Seeder) seedPlanes(ctx context.Context) error {
	models := []string{"A321", "B737-800", "A350", "B777-300"}

	for i, model := range models {
		airportID := s.airports[i%len(s.airports)].ID
		plane := fleet.Plane{
			ID:        uuid.New(),
			ModelType: model,
			Status:    fleet.PlaneStatusActive,
			AirportID: &airportID,
		}
		if err := s.fleetRepo.CreatePlane(ctx, &plane); err != nil {
			return err
		}

		seats := buildSeatTemplate(plane.ID)
		if err := s.fleetRepo.CreateSeats(ctx, seats); err != nil {
			return err
		}
		s.planes = append(s.planes, plane)
		s.planeSeats[plane.ID] = seats
	}
	fmt.Printf("  planes: %d\n", len(s.planes))
	return nil
}

// buildSeatTemplate lays out a small single-aisle cabin: 2 first rows,
// 2 business rows, 2 premium economy rows, 6 economy rows.
func buildSeatTemplate(planeID uuid.UUID) []fleet.Seat {
	classForRow := func(row int) fleet.SeatClass {
		switch {
		case row <= 2:
			return fleet.ClassFirst
		case row <= 4:
			return fleet.ClassBusiness
		case row <= 6:
			return fleet.ClassPremiumEconomy
		default:
			return fleet.ClassEconomy
		}
	}

	var seats []fleet.Seat
	for row := 1; row <= 12; row++ {
		for _, letter := range []string{"A", "B", "C", "D"} {
			seats = append(seats, fleet.Seat{
				ID:         uuid.New(),
				PlaneID:    planeID,
				SeatNumber: fmt.Sprintf("%d%s", row, letter),
				Class:      classForRow(row),
				Status:     fleet.SeatStatusActive,
			})
		}
	}
	return seats
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	demoUsers := []users.User{
		{FirstName: "Ayse", LastName: "Yilmaz", Email: "ayse@example.com", MileBalance: 5000},
		{FirstName: "Mehmet", LastName: "Demir", Email: "mehmet@example.com", MileBalance: 0},
		{FirstName: "Elif", LastName: "Kaya", Email: "elif@example.com", MileBalance: 120000},
	}

	for i := range demoUsers {
		demoUsers[i].ID = uuid.New()
		if err := s.userRepo.Create(ctx, &demoUsers[i]); err != nil {
			return err
		}
		s.demoUserIDs = append(s.demoUserIDs, demoUsers[i].ID)

		card := users.CreditCard{
			ID:          uuid.New(),
			UserID:      demoUsers[i].ID,
			CardHolder:  demoUsers[i].FullName(),
			LastFour:    fmt.Sprintf("%04d", 1000+i),
			ExpiryMonth: 12,
			ExpiryYear:  2029,
		}
		if err := s.userRepo.CreateCreditCard(ctx, &card); err != nil {
			return err
		}
	}
	fmt.Printf("  users: %d\n", len(demoUsers))
	return nil
}

func (s *Seeder) seedFlights(ctx context.Context) error {
	departure := time.Now().UTC().Add(48 * time.Hour)
	count := 0

	for i, plane := range s.planes {
		origin := s.airports[i%len(s.airports)]
		destination := s.airports[(i+1)%len(s.airports)]

		flight := flights.Flight{
			ID:                   uuid.New(),
			FlightNumber:         fmt.Sprintf("SB%03d", 100+i),
			PlaneID:              plane.ID,
			OriginAirportID:      origin.ID,
			DestinationAirportID: destination.ID,
			DepartureTime:        departure.Add(time.Duration(i) * 6 * time.Hour),
			ArrivalTime:          departure.Add(time.Duration(i)*6*time.Hour + 90*time.Minute),
			Status:               flights.StatusScheduled,
		}
		if err := s.flightRepo.CreateFlight(ctx, &flight); err != nil {
			return err
		}

		var flightSeats []flights.FlightSeat
		for _, seat := range s.planeSeats[plane.ID] {
			if !seat.IsUsable() {
				continue
			}
			flightSeats = append(flightSeats, flights.FlightSeat{
				FlightID:     flight.ID,
				SeatNumber:   seat.SeatNumber,
				Class:        seat.Class,
				Availability: flights.SeatAvailable,
				Price:        basePrices[seat.Class],
				Version:      0,
			})
		}
		if err := s.flightRepo.CreateFlightSeats(ctx, flightSeats); err != nil {
			return err
		}
		count++
	}

	// Sanity line so the numbers in the demo match expectations: a
	// business seat at 1800 earns 270 miles.
	fmt.Printf("  flights: %d (business seat earns %d miles)\n",
		count, miles.MilesFor(basePrices[fleet.ClassBusiness], fleet.ClassBusiness))
	return nil
}
