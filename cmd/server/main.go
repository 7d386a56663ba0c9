package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"atelier/docs"
	"atelier/internal/auth"
	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/db"
	"atelier/internal/handler"
	"atelier/internal/mailer"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/router"
	"atelier/internal/service"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

// @title Atelier CMS API
// @version 1.0
// @description Content-management backend for an interior-design studio: portfolio, blog, gallery, testimonials, services, before/after showcases, inquiries, and admin auth.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.BlogPost{},
		&model.Testimonial{},
		&model.GalleryImage{},
		&model.ServiceOffering{},
		&model.Transformation{},
		&model.SiteSettings{},
		&model.AboutContent{},
		&model.ContactSettings{},
		&model.Inquiry{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	store, err := storage.NewCloudinary(cfg.CloudName, cfg.StorageAPIKey, cfg.StorageAPISecret)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init")
	}
	uploads := upload.New(store, cfg.MaxUploadBytes)

	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	testimonialRepo := repository.NewTestimonialRepository(gormDB)
	galleryRepo := repository.NewGalleryRepository(gormDB)
	offeringRepo := repository.NewOfferingRepository(gormDB)
	transformationRepo := repository.NewTransformationRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)
	inquiryRepo := repository.NewInquiryRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService, uploads, store, mail, cfg.SiteURL)
	projectService := service.NewProjectService(projectRepo, uploads, store)
	postService := service.NewPostService(postRepo, uploads, store)
	testimonialService := service.NewTestimonialService(testimonialRepo, uploads, store)
	galleryService := service.NewGalleryService(galleryRepo, uploads, store)
	offeringService := service.NewOfferingService(offeringRepo, uploads, store)
	transformationService := service.NewTransformationService(transformationRepo, uploads, store)
	settingsService := service.NewSettingsService(settingsRepo, cacheClient, uploads, store)
	inquiryService := service.NewInquiryService(inquiryRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	postHandler := handler.NewPostHandler(postService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	offeringHandler := handler.NewOfferingHandler(offeringService)
	transformationHandler := handler.NewTransformationHandler(transformationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)

	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		projectHandler,
		postHandler,
		testimonialHandler,
		galleryHandler,
		offeringHandler,
		transformationHandler,
		settingsHandler,
		inquiryHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
