package app

import (
	"errors"
	"fmt"
	"time"

	"podcast_backend/internal/auth"
	"podcast_backend/internal/config"
	"podcast_backend/internal/database"
	"podcast_backend/internal/handlers"
	"podcast_backend/internal/logger"
	"podcast_backend/internal/middleware"
	"podcast_backend/internal/models"
	"podcast_backend/internal/repositories"
	"podcast_backend/internal/routes"
	"podcast_backend/internal/services"
	"podcast_backend/internal/storage"
	"podcast_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	if cfg.Seed.SampleEpisodes {
		if err := seedSampleEpisodes(gormDB); err != nil {
			logger.Fatal("Failed to seed sample episodes", "error", err)
		}
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, services, handlers and middleware into a ready
// gin engine. It is the composition root used by both Run and the tests.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	serviceContainer := initializeServices(cfg, storageInstance, tokens)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance, tokens)

	ginRouter := initializeGinRouter(cfg, gormDB)

	authRequired := middleware.AuthMiddleware(tokens)
	siteGate := middleware.SiteAccessMiddleware(cfg, tokens)
	routes.RegisterRoutes(ginRouter, appHandlers, authRequired, siteGate)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, tokens *auth.TokenManager) *services.ServiceContainer {
	podcastRepo := repositories.NewPodcastRepository()
	adminRepo := repositories.NewAdminRepository()

	podcastConfig := &services.PodcastConfig{
		MaxAudioSize:      cfg.Upload.MaxAudioSize,
		MaxImageSize:      cfg.Upload.MaxImageSize,
		AllowedAudioTypes: cfg.Upload.AllowedAudioTypes,
		AllowedImageTypes: cfg.Upload.AllowedImageTypes,
		DefaultCoverPath:  cfg.Upload.DefaultCoverPath,
	}

	return &services.ServiceContainer{
		PodcastService: services.NewPodcastService(podcastRepo, storageInstance, podcastConfig),
		AuthService:    services.NewAuthService(adminRepo, tokens),
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, storageInstance storage.Storage, tokens *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	podcastConfig := &services.PodcastConfig{
		MaxAudioSize:      cfg.Upload.MaxAudioSize,
		MaxImageSize:      cfg.Upload.MaxImageSize,
		AllowedAudioTypes: cfg.Upload.AllowedAudioTypes,
		AllowedImageTypes: cfg.Upload.AllowedImageTypes,
		DefaultCoverPath:  cfg.Upload.DefaultCoverPath,
	}

	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService, tokens, cfg),
		AccessHandler:  handlers.NewAccessHandler(baseHandler, cfg),
		PodcastHandler: handlers.NewPodcastHandler(baseHandler, container.PodcastService),
		UploadHandler:  handlers.NewUploadHandler(baseHandler, storageInstance, podcastConfig),
	}

	// Only the local backend serves bytes through this process.
	if cfg.Storage.Type == "local" {
		appHandlers.FileHandler = handlers.NewFileHandler(baseHandler, storageInstance)
	}

	return appHandlers
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the initial admin account when none exists. The
// credentials come from config; without them seeding is skipped.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	username := cfg.Seed.AdminUsername
	password := cfg.Seed.AdminPassword

	if username == "" || password == "" {
		logger.Warn("Admin seed credentials are not configured. Skipping admin seeding.")
		return nil
	}

	adminRepo := repositories.NewAdminRepository()
	_, err := adminRepo.FindByUsername(db, username)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "username", username)
		return nil
	}
	if !errors.Is(err, repositories.ErrAdminNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err := adminRepo.Create(db, &models.Admin{
		Username:     username,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "username", username)
	return nil
}

// seedSampleEpisodes inserts demo content on an empty database. The sample
// media are static bundled paths, deliberately outside the managed blob URL
// space so lifecycle cleanup never deletes them.
func seedSampleEpisodes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Podcast{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count podcasts: %w", err)
	}
	if count > 0 {
		return nil
	}

	cover := "/default-cover.png"
	fullDescription := "An in-depth conversation recorded for the launch of the show."

	samples := []models.Podcast{
		{
			Title:            "Welcome to the Show",
			ShortDescription: "An introduction to what this podcast is about.",
			FullDescription:  &fullDescription,
			AudioURL:         "/uploads/audio/sample.mp3",
			ImageURL:         &cover,
		},
		{
			Title:            "Behind the Scenes",
			ShortDescription: "How episodes get made, from outline to publish.",
			AudioURL:         "/uploads/audio/sample.mp3",
			ImageURL:         &cover,
		},
		{
			Title:            "Listener Questions",
			ShortDescription: "Answering the most common questions from our inbox.",
			AudioURL:         "/uploads/audio/sample.mp3",
			ImageURL:         &cover,
		},
	}

	for i := range samples {
		if err := db.Create(&samples[i]).Error; err != nil {
			return fmt.Errorf("failed to seed sample episode: %w", err)
		}
	}

	logger.Info("Seeded sample episodes", "count", len(samples))
	return nil
}
