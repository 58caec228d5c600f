package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoonTwilightShadow/shareit/internal/api"
	"github.com/MoonTwilightShadow/shareit/internal/booking"
	"github.com/MoonTwilightShadow/shareit/internal/item"
	"github.com/MoonTwilightShadow/shareit/internal/itemrequest"
	"github.com/MoonTwilightShadow/shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking storage comes first: the item module consumes it through the
	// checker adapter for availability annotation and comment gating.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item request storage, consumed by the item module to validate the
	// optional request reference on creation.
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(
		itemRepo,
		commentRepo,
		userService,
		itemrequest.NewChecker(requestRepo),
		booking.NewItemChecker(bookingRepo),
	)

	// Booking module
	bookingService := booking.NewService(bookingRepo, itemService, userService)

	// Item request module
	requestService := itemrequest.NewService(requestRepo, userService, itemRepo)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
