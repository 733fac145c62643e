// File: vijayfix/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vijayfix/config"
	"vijayfix/handlers"
	"vijayfix/middleware"
	"vijayfix/models"
	"vijayfix/routes"
	"vijayfix/services/booking"
	"vijayfix/services/catalog"
	ai "vijayfix/services/intelligence"
	"vijayfix/services/notification"
	"vijayfix/services/payment"
	"vijayfix/services/tracking"
	"vijayfix/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	directory, err := catalog.Default()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid catalog: %v", err)
	}

	// Role views and the event bus between them and the controller.
	customerView := notification.NewRoleView(models.SenderCustomer)
	technicianView := notification.NewRoleView(models.SenderTechnician)
	bus, err := notification.NewBus(logger, customerView, technicianView)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create event bus: %v", err)
	}
	go func() {
		if err := bus.Run(ctx); err != nil {
			logger.Error("main: event bus stopped", zap.Error(err))
		}
	}()
	<-bus.Running()

	// Diagnosis: Gemini when a key is configured, redis cache when enabled.
	var cache ai.DiagnosisCache
	if cfg.DiagnosisCache == "redis" {
		if err := utils.InitCache(); err != nil {
			logger.Warn("main: diagnosis cache disabled", zap.Error(err))
		} else {
			cache = ai.NewRedisDiagnosisCache(utils.GetCacheClient(), cfg.DiagnosisCacheTTL)
		}
	}
	utils.StartHealthMonitor(ctx, utils.GetCacheClient(), 30*time.Second)

	var analyzer ai.ImageAnalyzer
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("main: Gemini unavailable, diagnosis will use fallback", zap.Error(err))
		} else {
			defer gemini.Close()
			analyzer = gemini
		}
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, diagnosis will use fallback")
	}
	diagnosisService := ai.NewDiagnosisService(analyzer, cache, logger)

	// Booking lifecycle.
	tracker := tracking.NewTracker(cfg.TrackingTick, logger)
	defer tracker.Stop()

	controller := booking.NewController(booking.Options{
		Directory:        directory,
		Publisher:        notification.NewEventPublisher(bus.Publisher(), logger),
		Tracker:          tracker,
		Logger:           logger,
		DefaultLocation:  cfg.DefaultServiceAddress,
		ServiceLocation:  models.Coordinate{Lat: cfg.ServiceLat, Lng: cfg.ServiceLng},
		TrackingDuration: cfg.TrackingDuration,
		ServiceCharge:    decimal.NewFromFloat(cfg.ServiceCharge),
		Currency:         cfg.Currency,
	})

	paymentProvider := payment.NewProvider(payment.Config{
		ProcessingDelay: cfg.PaymentProcessingDelay,
		SuccessDelay:    cfg.PaymentSuccessDelay,
		Currency:        cfg.Currency,
	}, logger)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewCatalogHandler(directory),
		handlers.NewDiagnosisHandler(diagnosisService),
		handlers.NewBookingHandler(controller, directory, tracker),
		handlers.NewPaymentHandler(paymentProvider, controller, logger),
		handlers.NewChatHandler(controller),
		handlers.NewFeedHandler(customerView, technicianView),
		handlers.NewAdminHandler(controller, directory),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := bus.Close(); err != nil {
		logger.Warn("main: event bus close failed", zap.Error(err))
	}
	if client := utils.GetCacheClient(); client != nil {
		_ = client.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
