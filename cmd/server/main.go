package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-booking/internal/database"   // MySQL connector
	"github.com/iliyamo/hotel-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-booking/internal/middleware" // Rate limiting and response cache
	"github.com/iliyamo/hotel-booking/internal/payment"    // Payment gateway and orchestrator
	"github.com/iliyamo/hotel-booking/internal/queue"      // Booking event consumer
	"github.com/iliyamo/hotel-booking/internal/repository" // Data access layer
	"github.com/iliyamo/hotel-booking/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// Redis backs rate limiting, response caching and checkout drafts.
	// A nil client disables the first two gracefully; drafts are
	// mandatory because online checkout parks its state there.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis is required for checkout drafts")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	coupons := repository.NewCouponRepo(db)
	wallets := repository.NewWalletRepo(db)
	bookings := repository.NewBookingRepo(db, wallets)
	drafts := repository.NewDraftRepo(rdb, cfg.DraftTTL)

	// Payment provider and the checkout orchestrator on top of it.
	gateway := payment.NewHTTPGateway(cfg.PaymentBaseURL, cfg.PaymentSecret)
	orch := payment.NewOrchestrator(gateway, bookings, drafts)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	publicHandler := handler.NewPublicHandler(hotels, rooms)
	couponHandler := handler.NewCouponHandler(coupons)
	bookingHandler := handler.NewBookingHandler(hotels, rooms, coupons, bookings, wallets, orch, gateway)

	e := echo.New() // Create Echo instance

	// Global middleware: Redis token-bucket rate limiting and GET
	// response caching for the public browse endpoints.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Routes
	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterCustomer(e, bookingHandler, couponHandler, cfg.JWTSecret)
	router.RegisterVendor(e, couponHandler, cfg.JWTSecret)

	// Background consumer that appends booking lifecycle events to
	// logs/booking.log.  It reconnects on its own and never stops the
	// server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
