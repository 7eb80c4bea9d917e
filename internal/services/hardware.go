package services

import (
	"errors"

	"github.com/hwportal/backend/internal/models"
	"gorm.io/gorm"
)

type HardwareService struct {
	db *gorm.DB
}

func NewHardwareService(db *gorm.DB) *HardwareService {
	return &HardwareService{db: db}
}

type CreateHardwareSetRequest struct {
	Name     string `json:"hw_set_name" binding:"required"`
	Capacity int    `json:"capacity"` // validated by Create: must be positive
}

// ListNames returns the names of all hardware sets in the catalog.
func (s *HardwareService) ListNames() ([]string, error) {
	var names []string
	if err := s.db.Model(&models.HardwareSet{}).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// Get returns a hardware set by name.
func (s *HardwareService) Get(name string) (*models.HardwareSet, error) {
	var hw models.HardwareSet
	if err := s.db.Where("name = ?", name).First(&hw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHardwareNotFound
		}
		return nil, err
	}
	return &hw, nil
}

// Create adds a new hardware set to the catalog with all units available.
func (s *HardwareService) Create(req *CreateHardwareSetRequest) (*models.HardwareSet, error) {
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	var count int64
	if err := s.db.Model(&models.HardwareSet{}).
		Where("name = ?", req.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateHardwareSet
	}

	hw := models.HardwareSet{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Available: req.Capacity,
	}
	if err := s.db.Create(&hw).Error; err != nil {
		return nil, err
	}
	return &hw, nil
}

// ProjectUsage is one project's share of a hardware set.
type ProjectUsage struct {
	ProjectID string `json:"project_id"`
	Quantity  int    `json:"quantity"`
}

// InventoryItem is the full accounting view of one hardware set.
type InventoryItem struct {
	HWName    string         `json:"hw_name"`
	Capacity  int            `json:"capacity"`
	Available int            `json:"availability"`
	Usage     []ProjectUsage `json:"usage"`
}

// Inventory returns every hardware set with its per-project usage breakdown.
func (s *HardwareService) Inventory() ([]InventoryItem, error) {
	var sets []models.HardwareSet
	if err := s.db.Order("id ASC").Find(&sets).Error; err != nil {
		return nil, err
	}

	items := make([]InventoryItem, 0, len(sets))
	for _, hw := range sets {
		var usages []models.HardwareUsage
		if err := s.db.Where("hardware_set_id = ?", hw.ID).
			Order("id ASC").
			Find(&usages).Error; err != nil {
			return nil, err
		}

		breakdown := make([]ProjectUsage, 0, len(usages))
		for _, u := range usages {
			var project models.Project
			if err := s.db.First(&project, u.ProjectID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // project removed, stale usage row
				}
				return nil, err
			}
			breakdown = append(breakdown, ProjectUsage{
				ProjectID: project.ProjectID,
				Quantity:  u.Quantity,
			})
		}

		items = append(items, InventoryItem{
			HWName:    hw.Name,
			Capacity:  hw.Capacity,
			Available: hw.Available,
			Usage:     breakdown,
		})
	}

	return items, nil
}
