package models

import (
	"time"
)

// HardwareSet is a named pool of interchangeable hardware units.
// Capacity is fixed at creation; Available tracks the free units and must
// always satisfy Available + sum(usage across projects) == Capacity.
type HardwareSet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"hw_name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Available int       `gorm:"not null" json:"availability"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HardwareSet) TableName() string { return "hardware_sets" }
