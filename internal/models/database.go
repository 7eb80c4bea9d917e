package models

import (
	"fmt"

	"github.com/hwportal/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&ProjectMember{},
		&HardwareSet{},
		&HardwareUsage{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the bootstrap hardware catalog if it is empty.
func SeedDefaultData() error {
	defaultSets := []HardwareSet{
		{Name: "HWSet1", Capacity: 100, Available: 100},
		{Name: "HWSet2", Capacity: 100, Available: 100},
	}

	for _, hw := range defaultSets {
		var count int64
		DB.Model(&HardwareSet{}).Where("name = ?", hw.Name).Count(&count)
		if count == 0 {
			if err := DB.Create(&hw).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
