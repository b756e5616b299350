package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightservice/config"
	"github.com/Domenick1991/flightservice/internal/bootstrap"
	"github.com/Domenick1991/flightservice/internal/cache"
	"github.com/Domenick1991/flightservice/internal/kafka"
	"github.com/Domenick1991/flightservice/internal/ratelimit"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/Domenick1991/flightservice/internal/service/account"
	"github.com/Domenick1991/flightservice/internal/service/reservation"
	"github.com/Domenick1991/flightservice/internal/service/search"
	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	itineraries := cache.NewRedisItineraryCache(
		cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		time.Duration(cfg.Search.ItineraryTTLSeconds)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	searchService := search.NewSearchService(flightRepo, itineraries)
	accountService := account.NewAccountService(userRepo)
	reservationService := reservation.NewReservationService(
		txRunner,
		reservationRepo,
		userRepo,
		itineraries,
		reservation.WithProducer(producer, cfg.Kafka.EventsTopic),
	)

	limiter := ratelimit.NewSessionLimiter(cfg.Search.RateLimitRPS, cfg.Search.RateLimitBurst)
	sessions := session.NewManager(accountService, searchService, reservationService, limiter)

	if err := bootstrap.Run(ctx, cfg, sessions); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
