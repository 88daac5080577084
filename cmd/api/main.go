package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/realtime"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/captcha"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/storage"
)

// @title           Job Board API
// @version         1.0
// @description     REST API for the job board platform: jobs, applications, messaging, and notifications.
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limits and realtime fan-out degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-process fallbacks", "error", err)
	}

	// 5. Setup Object Storage
	store, err := storage.NewStore(ctx, storage.NewClientConfigFromEnv())
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	for _, bucket := range []string{cfg.ResumesBucket, cfg.AvatarsBucket} {
		if err := store.CheckBucket(ctx, bucket); err != nil {
			logger.Log.Warn("Storage bucket check failed, uploads may error", "bucket", bucket, "error", err)
		}
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	seekerRepo := postgres.NewSeekerProfileRepository(dbPool)
	employerRepo := postgres.NewEmployerProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(dbPool)
	conversationRepo := postgres.NewConversationRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)

	// 7. Setup Realtime Hub
	hub := realtime.NewHub()
	go hub.Run(ctx)

	// 8. Setup Services
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - job alert emails will be skipped")
	}
	captchaVerifier := captcha.NewVerifier(cfg.RecaptchaSecretKey)
	if !captchaVerifier.IsConfigured() {
		logger.Log.Warn("CAPTCHA verification not configured - job posting checks are disabled")
	}

	// 9. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, hub)
	jobUC := usecase.NewJobUsecase(jobRepo, employerRepo, captchaVerifier)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, store, notificationUC, cfg.ResumesBucket)
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo, jobRepo)
	messagingUC := usecase.NewMessagingUsecase(conversationRepo, messageRepo, userRepo, notificationUC, hub)
	profileUC := usecase.NewProfileUsecase(seekerRepo, employerRepo, userRepo, store, cfg.AvatarsBucket)
	jobAlertUC := usecase.NewJobAlertUsecase(jobRepo, seekerRepo, notificationUC, emailService, cfg.FrontendURL)

	// 10. Job Alert Matcher
	if cfg.JobAlertEnabled {
		go runJobAlertMatcher(ctx, jobAlertUC, time.Duration(cfg.JobAlertIntervalMinutes)*time.Minute)
	}

	// 11. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 12. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		SavedJobUC:     savedJobUC,
		MessagingUC:    messagingUC,
		NotificationUC: notificationUC,
		ProfileUC:      profileUC,
		Hub:            hub,
		JWKSProvider:   jwksProvider,
		Config:         cfg,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// runJobAlertMatcher runs the matching pass on a fixed interval until ctx is
// cancelled.
func runJobAlertMatcher(ctx context.Context, uc domain.JobAlertUsecase, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.RunMatching(ctx); err != nil {
				logger.Log.Error("Job matching pass failed", "error", err)
			}
		}
	}
}
