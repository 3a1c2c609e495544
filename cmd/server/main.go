package main

import (
	"log"
	"net/http"

	_ "communityhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"communityhub/internal/auth"
	"communityhub/internal/cache"
	"communityhub/internal/config"
	"communityhub/internal/db"
	"communityhub/internal/handler"
	"communityhub/internal/media"
	"communityhub/internal/model"
	"communityhub/internal/repository"
	"communityhub/internal/router"
	"communityhub/internal/service"
)

// @title Community Hub API
// @version 1.0
// @description Community website backend: industries, updates, polls, workshops, feedback and emergency contacts with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Industry{},
		&model.Product{},
		&model.Update{},
		&model.EmergencyContact{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollVote{},
		&model.Workshop{},
		&model.WorkshopRegistration{},
		&model.FeedbackQuestion{},
		&model.FeedbackResponse{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploader, err := media.NewDiskUploader(cfg.UploadsDir, cfg.UploadsBaseURL)
	if err != nil {
		log.Fatalf("media init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	industryRepo := repository.NewIndustryRepository(gormDB)
	updateRepo := repository.NewUpdateRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	pollRepo := repository.NewPollRepository(gormDB)
	workshopRepo := repository.NewWorkshopRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	industryService := service.NewIndustryService(industryRepo, uploader)
	updateService := service.NewUpdateService(updateRepo, cacheClient)
	contactService := service.NewContactService(contactRepo)
	pollService := service.NewPollService(pollRepo)
	workshopService := service.NewWorkshopService(workshopRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	industryHandler := handler.NewIndustryHandler(industryService)
	updateHandler := handler.NewUpdateHandler(updateService)
	contactHandler := handler.NewContactHandler(contactService)
	pollHandler := handler.NewPollHandler(pollService)
	workshopHandler := handler.NewWorkshopHandler(workshopService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		industryHandler,
		updateHandler,
		contactHandler,
		pollHandler,
		workshopHandler,
		feedbackHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
