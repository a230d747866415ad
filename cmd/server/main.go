package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"rentomobile/internal/api"
	"rentomobile/internal/catalog"
	"rentomobile/internal/config"
	"rentomobile/internal/metrics"
	"rentomobile/internal/repository"
	"rentomobile/internal/service"
	"rentomobile/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, repository.Options{
		Driver:        cfg.StoreDriver,
		DatabaseURL:   cfg.DatabaseURL,
		Table:         cfg.KVTable,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.Close()

	items, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	metrics.Register()
	clock := service.NewClock(cfg.Location())

	bookingRepo := repository.NewBookingRepository(store)
	profileRepo := repository.NewProfileRepository(store)
	selectionRepo := repository.NewSelectionRepository(store, cfg.SelectionTTL)

	profileSvc := service.NewProfileService(profileRepo, clock, logger)
	listingSvc := service.NewListingService(items, profileSvc)
	selectionSvc := service.NewSelectionService(selectionRepo, clock, logger)
	senderSvc := service.NewSenderService(
		service.NewTwilioWhatsApp(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger),
		service.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, logger),
		cfg.WhatsAppPhone,
		cfg.ConfirmationEmail,
		clock,
		logger,
	)
	bookingSvc := service.NewBookingService(bookingRepo, selectionSvc, profileSvc, senderSvc, clock, cfg.WhatsAppPhone, logger)
	jobSvc := service.NewJobService(bookingRepo, clock, logger)
	adminSvc := service.NewAdminService(bookingSvc, jobSvc)
	contentSvc, err := service.NewContentService(bookingSvc, clock)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}

	userHandler := api.NewUserHandler(listingSvc, selectionSvc, bookingSvc, profileSvc, contentSvc, logger)
	adminHandler := api.NewAdminHandler(adminSvc, logger)
	r := api.NewRouter(userHandler, adminHandler, cfg.AdminToken)

	c := cron.New(cron.WithLocation(cfg.Location()))
	if _, err := c.AddFunc(cfg.RefreshSchedule, func() {
		if _, err := jobSvc.RefreshUpcomingBookings(ctx); err != nil {
			logger.Error("cron job failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("invalid REFRESH_SCHEDULE", zap.String("schedule", cfg.RefreshSchedule), zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins()),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handlers.RecoveryHandler()(cors(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("port", cfg.AppPort), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
