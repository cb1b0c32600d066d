package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/booking"
	"github.com/iliyamo/seminar-hall-booking/internal/config"
	"github.com/iliyamo/seminar-hall-booking/internal/database"
	"github.com/iliyamo/seminar-hall-booking/internal/handler"
	"github.com/iliyamo/seminar-hall-booking/internal/middleware"
	"github.com/iliyamo/seminar-hall-booking/internal/queue"
	"github.com/iliyamo/seminar-hall-booking/internal/repository"
	"github.com/iliyamo/seminar-hall-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	// The booking store is instantiated once here and injected everywhere;
	// tests swap in booking.NewMemoryStore() instead.
	store := repository.NewBookingRepo(db)
	engine := booking.NewEngine(store)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hallRepo := repository.NewHallRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	hallH := handler.NewHallHandler(hallRepo)
	bookingH := handler.NewBookingHandler(engine, hallRepo)
	adminH := handler.NewAdminBookingHandler(engine)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, bookingH, hallH, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, adminH, hallH, cfg.JWTSecret)

	// Audit trail consumer for approval decisions; runs its own reconnect
	// loop for the life of the process.
	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Printf("decision consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
