package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/configs"
	"github.com/clinicboard/clinicboard/internal/application/services"
	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/db"
	"github.com/clinicboard/clinicboard/internal/infrastructure/events"
	"github.com/clinicboard/clinicboard/internal/infrastructure/health"
	"github.com/clinicboard/clinicboard/internal/infrastructure/httpserver"
	"github.com/clinicboard/clinicboard/internal/infrastructure/redis"
	"github.com/clinicboard/clinicboard/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting clinicboard...")

	// Initialize database
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Initialize Redis client. A startup failure is fatal so
	// misconfiguration is caught early; outages after startup only degrade
	// freshness and presence, never request handling.
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	cache := redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix)

	// The broadcast channel is optional: without a broker URL the notifier
	// delivers every event directly to in-process listeners.
	var broadcast ports.BroadcastPublisher
	var amqpPublisher *events.AMQPPublisher
	if cfg.Broker.URL != "" {
		amqpPublisher, err = events.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.WithError(err).Warn("Broadcast channel unavailable, events will be delivered directly")
		} else {
			broadcast = amqpPublisher
			defer amqpPublisher.Close()
			logger.Info("Connected to broker successfully")
		}
	}

	emitter := events.NewLocalEmitter(logger)
	notifier := events.NewFallbackNotifier(broadcast, emitter, logger)

	// Repositories and services
	appointmentRepo := repositories.NewAppointmentRepository(database, logger)
	doctorRepo := repositories.NewDoctorRepository(database, logger)

	appointmentService := services.NewAppointmentService(appointmentRepo, cache, notifier, cfg.Cache.ListingTTL, logger)
	presenceService := services.NewPresenceService(doctorRepo, cache, notifier, cfg.Cache.PresenceTTL, logger)
	authService := services.NewAuthService(doctorRepo, &cfg.JWT, logger)

	healthCheckers := []ports.HealthChecker{
		health.NewDBHealthChecker(database),
		health.NewRedisHealthChecker(redisClient),
		health.NewBrokerHealthChecker(broadcast),
	}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	server := httpserver.NewServer(serverConfig, logger, httpserver.ServerDeps{
		AppointmentService: appointmentService,
		PresenceService:    presenceService,
		AuthService:        authService,
		Emitter:            emitter,
		HealthCheckers:     healthCheckers,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Info("Server stopped:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
