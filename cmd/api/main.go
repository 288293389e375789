package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhorizon/config"
	"eventhorizon/internal/adapters/auth"
	"eventhorizon/internal/adapters/email"
	"eventhorizon/internal/adapters/geocode"
	delivery "eventhorizon/internal/delivery/http"
	"eventhorizon/internal/delivery/http/controllers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/repository/mongodb"
	"eventhorizon/internal/services"
)

// @title EventHorizon API
// @version 1.0
// @description REST API for managing conference events, lectures, and ratings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("failed to connect to mongodb", "err", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Error("mongodb disconnect failed", "err", err)
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", "err", err)
		os.Exit(1)
	}

	// Adapters
	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTManager(cfg.JWTSecret)
	geocoder := geocode.NewHTTPGeocoder(&http.Client{Timeout: 10 * time.Second}, cfg.GeocoderURL, cfg.GeocoderKey)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipTLSCheck,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	lectureRepo := mongodb.NewLectureRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	aggregates := services.NewAggregateService(eventRepo, lectureRepo, ratingRepo, logger)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, emailService, logger)
	userService := services.NewUserService(userRepo, hasher)
	eventService := services.NewEventService(eventRepo, lectureRepo, geocoder, logger)
	lectureService := services.NewLectureService(lectureRepo, eventRepo, aggregates)
	ratingService := services.NewRatingService(ratingRepo, eventRepo, lectureRepo, aggregates)

	// HTTP
	router := delivery.NewRouter(delivery.RouterDeps{
		Logger:        logger,
		Auth:          controllers.NewAuthController(logger, authService),
		Users:         controllers.NewUserController(logger, userService),
		Events:        controllers.NewEventController(logger, eventService),
		Lectures:      controllers.NewLectureController(logger, lectureService),
		Ratings:       controllers.NewRatingController(logger, ratingService),
		TokenVerifier: tokens,
		UserRepo:      userRepo,
		EventRepo:     eventRepo,
		LectureRepo:   lectureRepo,
		RatingRepo:    ratingRepo,
	})

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
