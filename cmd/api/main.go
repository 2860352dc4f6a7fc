package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/events"
	"mentorhub/internal/jobs"
	"mentorhub/internal/middleware"
	"mentorhub/internal/modules/auth"
	"mentorhub/internal/modules/availability"
	"mentorhub/internal/modules/booking"
	"mentorhub/internal/modules/catalog"
	"mentorhub/internal/modules/notification"
	"mentorhub/internal/modules/payment"
	"mentorhub/internal/modules/profile"
	"mentorhub/internal/modules/review"
	"mentorhub/internal/modules/session"
	"mentorhub/internal/modules/upload"
	jwtsvc "mentorhub/internal/pkg/jwt"
	"mentorhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", zap.Error(err))
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
			publisher = events.NopPublisher{}
		}
	} else {
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	// repositories
	userRepo := repository.NewUserRepository(db)
	mentorRepo := repository.NewMentorProfileRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	listingRepo := repository.NewListingRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// services
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := notification.NewHub()
	notificationSvc := notification.NewService(notificationRepo, hub)
	authSvc := auth.NewService(userRepo, mentorRepo, tokens)
	profileSvc := profile.NewService(mentorRepo, skillRepo)
	catalogSvc := catalog.NewService(skillRepo, listingRepo)
	availabilitySvc := availability.NewService(availabilityRepo, bookingRepo)
	bookingSvc := booking.NewService(bookingRepo, sessionRepo, listingRepo, mentorRepo, availabilitySvc, notificationSvc, publisher, logger)
	sessionSvc := session.NewService(sessionRepo, notificationSvc, publisher, logger)
	paymentSvc := payment.NewService(paymentRepo, bookingRepo, listingRepo, mentorRepo, notificationSvc, publisher, cfg.PaymentSecret, logger)
	reviewSvc := review.NewService(reviewRepo, sessionRepo, mentorRepo, notificationSvc, logger)
	uploadSvc, err := upload.NewService(cfg.CloudinaryURL, userRepo)
	if err != nil {
		logger.Fatal("upload service init failed", zap.Error(err))
	}

	// handlers
	authHandler := auth.NewHandler(authSvc)
	profileHandler := profile.NewHandler(profileSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	availabilityHandler := availability.NewHandler(availabilitySvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	sessionHandler := session.NewHandler(sessionSvc)
	paymentHandler := payment.NewHandler(paymentSvc)
	reviewHandler := review.NewHandler(reviewSvc)
	notificationHandler := notification.NewHandler(notificationSvc, hub)
	uploadHandler := upload.NewHandler(uploadSvc)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// public surface
	authHandler.RegisterPublicRoutes(api)
	profileHandler.RegisterPublicRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)
	availabilityHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterPublicRoutes(api)
	paymentHandler.RegisterPublicRoutes(api)

	// authenticated surface
	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))
	authHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	sessionHandler.RegisterRoutes(protected)
	paymentHandler.RegisterProtectedRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)
	notificationHandler.RegisterRoutes(protected)
	uploadHandler.RegisterRoutes(protected)

	// mentor-only surface
	mentorOnly := protected.Group("")
	mentorOnly.Use(middleware.RequireMentorProfile())
	catalogHandler.RegisterMentorRoutes(mentorOnly)
	availabilityHandler.RegisterMentorRoutes(mentorOnly)

	// admin surface
	admin := protected.Group("")
	admin.Use(middleware.AdminOnly())
	catalogHandler.RegisterAdminRoutes(admin)

	scheduler := jobs.NewScheduler(sessionRepo, notificationSvc, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
