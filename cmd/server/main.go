package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/app"
	"github.com/Freeeeeet/consult_booking/internal/config"
	"github.com/Freeeeeet/consult_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/consult_booking/internal/notify"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/Freeeeeet/consult_booking/internal/service"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting consultation booking server",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.String("timezone", cfg.Location.String()),
		zap.Bool("notifications", cfg.NotificationsEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	var notifier service.Notifier = service.NopNotifier{}
	if cfg.NotificationsEnabled() {
		tgBot, err := notify.NewBot(cfg.TelegramToken, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		notifier = notify.NewTelegramNotifier(tgBot.Client(), logger)
		go tgBot.Start(ctx)
	}

	schedulingService := service.NewSchedulingService(
		stores.Owners,
		stores.Rules,
		stores.Bookings,
		scheduling.NewAdmission(cfg.PhoneRegion),
		scheduling.SystemClock{Location: cfg.Location},
		notifier,
		cfg.BookingHorizonDays,
		logger,
	)
	ownerService := service.NewOwnerService(stores.Owners, logger)

	router := httpapi.NewHandler(schedulingService, ownerService, cfg.Location, logger).Router()

	accessLog := zap.NewStdLog(logger.Named("http"))
	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(accessLog.Writer(), h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(accessLog), handlers.PrintRecoveryStack(true))(h)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	logger.Info("Server stopped")
}
