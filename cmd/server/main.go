package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-booking-api/internal/config"
	"github.com/iliyamo/movie-booking-api/internal/database"
	"github.com/iliyamo/movie-booking-api/internal/handler"
	"github.com/iliyamo/movie-booking-api/internal/middleware"
	"github.com/iliyamo/movie-booking-api/internal/queue"
	"github.com/iliyamo/movie-booking-api/internal/repository"
	"github.com/iliyamo/movie-booking-api/internal/router"
	"github.com/iliyamo/movie-booking-api/internal/utils"
)

func main() {
	// Load .env if present; real deployments set the environment
	// directly and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	// Resolve the signing method once. An unknown JWT_ALGORITHM is a
	// misconfiguration and the process must not serve traffic.
	signMethod, err := utils.SigningMethodFromName(cfg.JWTAlgorithm)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate
	// limiting but never blocks startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	halls := repository.NewHallRepo(db)
	screens := repository.NewScreenRepo(db)
	shows := repository.NewShowRepo(db)
	bookings := repository.NewBookingRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, signMethod, users),
		Movies:   handler.NewMovieHandler(movies),
		Halls:    handler.NewHallHandler(halls),
		Screens:  handler.NewScreenHandler(screens, halls),
		Shows:    handler.NewShowHandler(shows, movies, screens),
		Bookings: handler.NewBookingHandler(bookings, shows, screens, movies),
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.Register(e, h, users, cfg.JWTSecret, cacheMW)

	// Consume seat.booked events in the background; the consumer has
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
