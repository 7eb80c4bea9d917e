package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hwportal/backend/internal/models"
	"github.com/hwportal/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database and migrates the
// schema. Each test gets its own database, named after the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.HardwareSet{},
		&models.HardwareUsage{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hashed,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, projectID string, owner *models.User) *models.Project {
	t.Helper()

	project := models.Project{
		ProjectID: projectID,
		Name:      projectID + " project",
		CreatedBy: owner.ID,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project %q: %v", projectID, err)
	}

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    owner.ID,
		Role:      "owner",
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to add owner membership: %v", err)
	}
	return &project
}

func createTestHardwareSet(t *testing.T, db *gorm.DB, name string, capacity int) *models.HardwareSet {
	t.Helper()

	hw := models.HardwareSet{
		Name:      name,
		Capacity:  capacity,
		Available: capacity,
	}
	if err := db.Create(&hw).Error; err != nil {
		t.Fatalf("failed to create test hardware set %q: %v", name, err)
	}
	return &hw
}

// assertConservation fails the test if available + total usage != capacity
// for the named hardware set.
func assertConservation(t *testing.T, db *gorm.DB, hwSetName string) {
	t.Helper()

	var hw models.HardwareSet
	if err := db.Where("name = ?", hwSetName).First(&hw).Error; err != nil {
		t.Fatalf("hardware set %q not found: %v", hwSetName, err)
	}

	var total int64
	if err := db.Model(&models.HardwareUsage{}).
		Where("hardware_set_id = ?", hw.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		t.Fatalf("failed to sum usage: %v", err)
	}

	if hw.Available+int(total) != hw.Capacity {
		t.Errorf("conservation violated for %q: available=%d + used=%d != capacity=%d",
			hwSetName, hw.Available, total, hw.Capacity)
	}
}
