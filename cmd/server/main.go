package main // Entry point package

import (
	"fmt" // Formatting for payout records
	"log" // Logging library
	"os"  // File access for the payout record
	"path/filepath"

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/flight-seat-ledger/internal/config"     // Internal config loader
	"github.com/iliyamo/flight-seat-ledger/internal/database"   // MySQL connection for the account store
	"github.com/iliyamo/flight-seat-ledger/internal/handler"    // HTTP handlers
	"github.com/iliyamo/flight-seat-ledger/internal/ledger"     // The seat and ticketing ledger itself
	"github.com/iliyamo/flight-seat-ledger/internal/middleware" // Rate limiting
	"github.com/iliyamo/flight-seat-ledger/internal/queue"      // Event consumer
	"github.com/iliyamo/flight-seat-ledger/internal/repository" // Account and refresh-token stores
	"github.com/iliyamo/flight-seat-ledger/internal/router" // Route registration
	queue_publisher "github.com/iliyamo/flight-seat-ledger/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// The ledger holds all flight, seat, token and escrow state in memory.
	// Withdrawn escrow funds are handed to the payout hook, which records
	// the external transfer; a failed record re-credits the balance.
	led := ledger.New(payoutRecorder(cfg.PayoutLog))

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	airlineHandler := handler.NewAirlineHandler(led, queue_publisher.Publish)
	passengerHandler := handler.NewPassengerHandler(led, queue_publisher.Publish)
	publicHandler := handler.NewPublicHandler(led)

	// Booking activity is consumed off RabbitMQ into an append-only log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		} else {
			log.Println("redis unavailable, rate limiting disabled")
		}
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterAirline(e, airlineHandler, cfg.JWTSecret)
	router.RegisterPassenger(e, passengerHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// payoutRecorder returns a payout hook that appends one line per
// withdrawal to the payout record file.  A write failure propagates back
// to the ledger, which restores the airline's escrow balance.
func payoutRecorder(path string) ledger.PayoutFunc {
	if path == "" {
		path = filepath.Join("logs", "payouts.log")
	}
	return func(airline ledger.Address, amount uint64) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = fmt.Fprintf(f, "payout airline=%s amount=%d\n", airline.String(), amount)
		return err
	}
}
