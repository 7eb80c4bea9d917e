package main

import (
	"github.com/hwportal/backend/internal/config"
	"github.com/hwportal/backend/internal/handlers"
	"github.com/hwportal/backend/internal/models"
	"github.com/hwportal/backend/internal/utils"
	"github.com/hwportal/backend/pkg/logger"
)

// appServices holds all initialized handlers needed by the application.
type appServices struct {
	authHandler        *handlers.AuthHandler
	projectHandler     *handlers.ProjectHandler
	hardwareHandler    *handlers.HardwareHandler
	reservationHandler *handlers.ReservationHandler
	healthHandler      *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, schema, seed
// data and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed the bootstrap hardware catalog
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()
	authHandler := handlers.NewAuthHandler(db, cfg)

	// Create default admin user
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		authHandler:        authHandler,
		projectHandler:     handlers.NewProjectHandler(db),
		hardwareHandler:    handlers.NewHardwareHandler(db),
		reservationHandler: handlers.NewReservationHandler(db),
		healthHandler:      handlers.NewHealthHandler(),
	}
}
