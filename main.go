package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auxin/config"
	"auxin/cron"
	"auxin/handlers"
	"auxin/middleware"
	"auxin/routes"
	"auxin/services/auth"
	"auxin/services/booking"
	"auxin/services/events"
	"auxin/services/payment"
	"auxin/upstream"
	"auxin/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitAuthCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream backends.
	authAPI := upstream.NewClient(config.AppConfig.AuthAPIURL, upstream.WithLogger(logger))
	schedulingAPI := upstream.NewClient(config.AppConfig.SchedulingAPIURL, upstream.WithLogger(logger))
	paymentAPI := upstream.NewClient(config.AppConfig.PaymentAPIURL, upstream.WithLogger(logger))
	dashboardAPI := upstream.NewClient(config.AppConfig.DashboardAPIURL, upstream.WithLogger(logger))

	// Shared state.
	sessionStore := utils.NewSessionStore(utils.GetSessionClient())
	resultStore := &auth.ResultStore{
		Client:    utils.GetAuthCacheClient(),
		Freshness: config.HandshakeFreshness(),
		RecordTTL: config.HandshakeTimeout(),
	}
	bus := events.NewBus()

	// Services.
	purgeClient := cron.NewPurgeClient()
	defer purgeClient.Close()

	authService := auth.NewDefaultAuthService(authAPI, sessionStore, resultStore, bus, logger)
	authService.Purger = purgeClient
	authService.PortalBaseURL = config.AppConfig.PortalBaseURL
	authService.Timeout = config.HandshakeTimeout()
	authService.PollInterval = config.HandshakePollInterval()

	bookingService := &booking.DefaultSessionService{
		Scheduling: schedulingAPI,
		Cache:      utils.GetAuthCacheClient(),
		Store:      sessionStore,
		Logger:     logger,
	}
	paymentService := payment.NewDefaultPaymentService(paymentAPI, sessionStore, logger)

	// Backstop worker for handshakes that were started but never waited on.
	cron.InitPurgeWorker(authService)

	handlerBundle := &handlers.HandlerBundle{
		Auth:       authService,
		Booking:    bookingService,
		Payment:    paymentService,
		Scheduling: schedulingAPI,
		Dashboard:  dashboardAPI,
		Store:      sessionStore,
	}

	routes.SetupRouter(router, handlerBundle, sessionStore)

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
