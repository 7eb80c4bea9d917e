package models

import (
	"time"
)

// HardwareUsage records how many units of a hardware set a project currently
// holds. Rows exist only while Quantity > 0; check-in deletes the row when a
// project returns its last unit, keeping the usage mapping sparse.
type HardwareUsage struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ProjectID     uint         `gorm:"uniqueIndex:idx_project_hwset;not null" json:"project_id"`
	HardwareSetID uint         `gorm:"uniqueIndex:idx_project_hwset;not null" json:"hardware_set_id"`
	HardwareSet   *HardwareSet `gorm:"foreignKey:HardwareSetID" json:"hardware_set,omitempty"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (HardwareUsage) TableName() string { return "hardware_usages" }
