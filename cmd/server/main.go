package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/config"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/database"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/email"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/payment"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	profileRepo := repository.NewProfileRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	pitchRepo := repository.NewPitchRepository(db)
	roundRepo := repository.NewRoundRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// External clients
	paymentClient := payment.NewCheckoutClient(cfg.Payment.APIURL, cfg.Payment.SecretKey)
	mailer := email.NewAPIMailer(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.FromAddress)

	// Create services
	notifier := service.NewNotifier(outboxRepo, notificationRepo, cfg.Mail.AdminEmail)
	systemService := service.NewSystemService(db)
	profileService := service.NewProfileService(profileRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	pitchService := service.NewPitchService(db, pitchRepo, roundRepo, investmentRepo, profileRepo, notifier)
	investmentService := service.NewInvestmentService(db, investmentRepo, roundRepo, pitchRepo, profileRepo, notifier)
	paymentService := service.NewPaymentService(db, investmentRepo, pitchRepo, profileRepo, paymentClient, notifier, cfg.Payment)
	outboxService := service.NewOutboxService(outboxRepo, mailer, cfg.Outbox)

	// Background jobs: outbox dispatch and stale checkout expiry
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Outbox.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		delivered, err := outboxService.DispatchDue(ctx)
		if err != nil {
			log.Printf("Outbox dispatch failed: %v", err)
			return
		}
		if delivered > 0 {
			log.Printf("Outbox dispatched %d entries", delivered)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule outbox dispatcher: %v", err)
	}
	if _, err := scheduler.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		expired, err := paymentService.ExpireStaleCheckouts(ctx)
		if err != nil {
			log.Printf("Stale checkout expiry failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("Expired %d stale checkouts", expired)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule checkout expiry: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Pitch:        pitchService,
		Investment:   investmentService,
		Payment:      paymentService,
		Profile:      profileService,
		Notification: notificationService,
		Category:     categoryService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
