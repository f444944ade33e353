package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/teksi-laju/service-booking/internal/application"
	"github.com/teksi-laju/service-booking/internal/config"
	bookingDomain "github.com/teksi-laju/service-booking/internal/domain/booking"
	"github.com/teksi-laju/service-booking/internal/domain/taxi"
	"github.com/teksi-laju/service-booking/internal/events"
	"github.com/teksi-laju/service-booking/internal/geocode"
	"github.com/teksi-laju/service-booking/internal/handler"
	"github.com/teksi-laju/service-booking/internal/logger"
	"github.com/teksi-laju/service-booking/internal/middleware"
	"github.com/teksi-laju/service-booking/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DBConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(&repository.BlobModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Connect to Redis for the draft session store
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = rdb.Close() }()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	pingCancel()

	// Initialize Kafka publisher
	publisher := events.NewKafkaPublisher(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, log)
	defer func() { _ = publisher.Close() }()

	// Initialize stores
	durable := repository.NewGormStore(db)
	session := repository.NewRedisStore(rdb)
	store := repository.NewBookingStore(durable, session, log)

	// Initialize geocoder
	geocoder, err := geocode.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	if err != nil {
		log.Fatal("failed to create geocoder", zap.Error(err))
	}

	// Initialize taxi registry and pricing strategy
	registry := taxi.NewRegistry(taxi.DefaultFleet())
	fares := bookingDomain.NewMeteredFareStrategy()

	// Initialize application service
	bookingService := application.NewBookingService(
		store,
		geocoder,
		registry,
		fares,
		publisher,
		log,
	)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	healthHandler := handler.NewHealthHandler(db, rdb, "service-booking")

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())

	// Register routes
	healthHandler.RegisterRoutes(router)
	bookingHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
