package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"healthcare-booking-server/internal/config"
	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/notify"
	"healthcare-booking-server/internal/repository"
	"healthcare-booking-server/internal/routes"
	"healthcare-booking-server/internal/scheduling"
)

func main() {
	// Load environment variables; a missing .env is fine in production
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	// Wire the scheduling core
	repo := repository.New(db)
	notifier := notify.New(db, log)
	svc := scheduling.NewService(repo, notifier, log, scheduling.Config{
		SlotGranularityMinutes: cfg.Scheduling.SlotGranularityMinutes,
		AllDayStart:            cfg.Scheduling.AllDayStart,
		AllDayEnd:              cfg.Scheduling.AllDayEnd,
	})

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, svc)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
