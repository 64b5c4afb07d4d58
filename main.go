// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/database"
	contactRepo "slotify/database/repository/contact"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/booking"
	"slotify/services/events"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitEventRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := timeslotRepo.NewMongoTimeSlotRepo()
	contacts := contactRepo.NewMongoContactRepo()
	if err := timeslotRepo.EnsureIndexes(slotRepo); err != nil {
		logger.Sugar().Warnf("main: failed to ensure timeslot indexes: %v", err)
	}
	if err := contactRepo.EnsureIndexes(contacts); err != nil {
		logger.Sugar().Warnf("main: failed to ensure contact indexes: %v", err)
	}

	// event publisher.
	eventClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventDB,
	})
	defer eventClient.Close()

	eventService := events.NewDefaultEventService(eventClient, events.Config{
		Enabled:            config.AppConfig.EventPublishEnabled,
		Queue:              config.AppConfig.EventQueue,
		Timeout:            time.Duration(config.AppConfig.EventPublishTimeoutMS) * time.Millisecond,
		NotifyEmailDefault: config.AppConfig.NotifyEmailDefault,
		NotifySMSDefault:   config.AppConfig.NotifySMSDefault,
	}, logger)

	// services.
	timeSlotService := &booking.DefaultTimeSlotService{
		Repo:            slotRepo,
		Contacts:        contacts,
		Policy:          &booking.BookingPolicy{Overlap: &booking.OverlapResolver{Repo: slotRepo}},
		Events:          eventService,
		Logger:          logger,
		DefaultPageSize: config.AppConfig.DefaultPageSize,
		MaxPageSize:     config.AppConfig.MaxPageSize,
	}

	timeSlotHandler := handlers.NewTimeSlotHandler(timeSlotService, logger)

	// Register routes.
	routes.RegisterRoutes(router, timeSlotHandler)

	// Background health checks for /healthz/services.
	utils.StartHealthMonitor(utils.GetEventRedisClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
