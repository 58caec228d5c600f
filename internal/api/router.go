package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MoonTwilightShadow/shareit/internal/booking"
	bookingHttp "github.com/MoonTwilightShadow/shareit/internal/booking/http"
	"github.com/MoonTwilightShadow/shareit/internal/identity"
	"github.com/MoonTwilightShadow/shareit/internal/item"
	itemHttp "github.com/MoonTwilightShadow/shareit/internal/item/http"
	"github.com/MoonTwilightShadow/shareit/internal/itemrequest"
	requestHttp "github.com/MoonTwilightShadow/shareit/internal/itemrequest/http"
	"github.com/MoonTwilightShadow/shareit/internal/pkg/metrics"
	"github.com/MoonTwilightShadow/shareit/internal/user"
	userHttp "github.com/MoonTwilightShadow/shareit/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter assembles middleware (logging, recovery, CORS, metrics) and
// registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	metrics.Register()
	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	// Caller identity arrives from the gateway in the X-Sharer-User-Id header.
	identityMiddleware := identity.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
	}

	return r
}
