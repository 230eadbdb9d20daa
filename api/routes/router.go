package routes

import (
	"net/http"
	"time"

	"skybook/internal/bookings"
	"skybook/internal/cancellation"
	"skybook/internal/fleet"
	"skybook/internal/flights"
	"skybook/internal/miles"
	"skybook/internal/notifications"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/shared/database/tx"
	"skybook/internal/users"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer
	log      *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupFeatureRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupFeatureRoutes wires repositories, services and controllers for
// every feature package and registers their routes.
func (r *Router) setupFeatureRoutes(rg *gin.RouterGroup) {
	pg := r.db.GetPostgreSQL()
	cacheService := cache.NewService(r.db.GetRedisClient())
	txManager := tx.NewManager(pg)

	fleetRepo := fleet.NewRepository(pg)
	flightRepo := flights.NewRepository(pg)
	userRepo := users.NewRepository(pg)
	bookingRepo := bookings.NewRepository(pg)

	mileLedger := miles.NewLedger(userRepo)

	flightService := flights.NewService(flightRepo, cacheService)
	flightController := flights.NewController(flightService)
	flights.SetupFlightRoutes(rg, flightController)

	bookingService := bookings.NewService(
		bookingRepo, flightRepo, userRepo, mileLedger,
		txManager, flightService, r.producer, r.log,
	)
	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)

	cancellationService := cancellation.NewService(
		bookingRepo, flightRepo, fleetRepo, mileLedger,
		txManager, flightService, r.producer, r.log,
	)
	cancellationController := cancellation.NewController(cancellationService)
	cancellation.SetupCancellationRoutes(rg, cancellationController)
}
