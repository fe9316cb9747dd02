package router

import (
	"context"

	"mandi-core/internal/advisory"
	"mandi-core/internal/config"
	"mandi-core/internal/database"
	"mandi-core/internal/health"
	advicehandler "mandi-core/internal/interfaces/handlers/advice"
	authhandler "mandi-core/internal/interfaces/handlers/auth"
	markethandler "mandi-core/internal/interfaces/handlers/market"
	prefshandler "mandi-core/internal/interfaces/handlers/prefs"
	"mandi-core/internal/market"
	"mandi-core/internal/middleware"
	"mandi-core/internal/prefs"
	"mandi-core/internal/session"
	"mandi-core/internal/speech"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, wiring the core stores behind the gateway.
func CreateApp(cfg *config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// Session (Redis); the client is reused for preferences and health.
	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins}))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	if db == nil {
		log.Warn().Msg("No database configured; serving health endpoints only")
		return app, nil
	}

	prefStore, err := prefs.NewStore(context.Background(), rdb)
	if err != nil {
		return nil, err
	}
	sessions := session.NewService(db, cfg.SimLatency, cfg.OpTimeout)
	hub := market.NewHub(db, cfg.SimLatency, cfg.OpTimeout)

	var oracle advisory.Oracle
	if cfg.PriceAPIURL != "" {
		oracle = &advisory.RemoteOracle{BaseURL: cfg.PriceAPIURL}
	} else {
		oracle = advisory.NewSimulatedOracle(nil)
	}
	advisor := advisory.NewClient(oracle, cfg.SimLatency, cfg.OpTimeout)
	advisor.Speaker = speech.LogSpeaker{}
	advisor.Language = prefStore.Language

	// Auth (no auth middleware).
	authH := &authhandler.Handlers{Sessions: sessions, Prefs: prefStore, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authH.Login)
	authGroup.Post("/register", authH.Register)
	authGroup.Post("/verify-otp", authH.VerifyOTP)
	authGroup.Post("/verify-pin", authH.VerifyPIN)
	authGroup.Get("/me", authH.Me)
	authGroup.Delete("/logout", authH.Logout)

	// Preferences + routing decision (pre-auth surface).
	prefsH := &prefshandler.Handlers{Store: prefStore, Sessions: sessions}
	prefsGroup := app.Group("/api/v1/prefs")
	prefsGroup.Get("/", prefsH.GetPreferences)
	prefsGroup.Put("/language", prefsH.SetLanguage)
	prefsGroup.Put("/role", prefsH.SetRole)
	app.Get("/api/v1/route", prefsH.GetRoute)

	// Market (auth required).
	marketH := &markethandler.Handlers{Hub: hub}
	marketGroup := app.Group("/api/v1/market", middleware.RequireAuth())
	marketGroup.Get("/listings", marketH.GetListings)
	marketGroup.Get("/trips", marketH.GetTrips)
	marketGroup.Get("/live-prices", marketH.GetLivePrices)
	marketGroup.Get("/orders", marketH.GetOrders)
	marketGroup.Post("/create-listing", marketH.CreateListing)
	marketGroup.Post("/place-order", marketH.PlaceOrder)
	marketGroup.Post("/update-trip-status", marketH.UpdateTripStatus)
	marketGroup.Post("/update-listing-price", marketH.UpdateListingPrice)

	// Advisory (auth required).
	adviceH := &advicehandler.Handlers{Client: advisor}
	app.Post("/api/v1/advice/price", middleware.RequireAuth(), adviceH.PriceAdvice)

	return app, nil
}
