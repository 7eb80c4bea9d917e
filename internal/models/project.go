package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a user-created project that can reserve hardware.
// ProjectID is the caller-assigned public identifier; ID is internal.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   string         `gorm:"uniqueIndex;size:100;not null" json:"project_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	CreatedBy   uint           `json:"created_by"`
	Creator     *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
