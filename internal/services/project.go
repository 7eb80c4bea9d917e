package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hwportal/backend/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ProjectDetail is the outward view of a project: metadata, member usernames
// and the sparse hardware usage mapping (hw set name -> reserved quantity).
type ProjectDetail struct {
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	Members     []string       `json:"members"`
	HWUsage     map[string]int `json:"hw_usage"`
}

// Create registers a new project with the creator as its owner. A duplicate
// project id fails with ErrDuplicateProjectID. When the caller does not
// supply a project id, one is generated.
func (s *ProjectService) Create(req *CreateProjectRequest, creatorID uint) (*ProjectDetail, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		projectID = "PRJ-" + uuid.NewString()[:8]
	}

	var count int64
	if err := s.db.Model(&models.Project{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateProjectID
	}

	project := models.Project{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   creatorID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    creatorID,
			Role:      "owner",
		}
		return tx.Create(&member).Error
	}); err != nil {
		return nil, err
	}

	return s.Get(project.ProjectID)
}

// Join adds a user to a project's member set. Joining a project the user is
// already a member of is a no-op.
func (s *ProjectService) Join(projectID string, userID uint) error {
	var project models.Project
	if err := s.db.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	var existing models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", project.ID, userID).First(&existing).Error
	if err == nil {
		return nil // already a member
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      "member",
	}
	return s.db.Create(&member).Error
}

// ListForUser returns all projects the user created or joined, in insertion
// order.
func (s *ProjectService) ListForUser(userID uint) ([]ProjectDetail, error) {
	var memberships []models.ProjectMember
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	details := make([]ProjectDetail, 0, len(memberships))
	for _, m := range memberships {
		var project models.Project
		if err := s.db.First(&project, m.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // project removed, stale membership
			}
			return nil, err
		}
		detail, err := s.buildDetail(&project)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}

	return details, nil
}

// Get returns a project's detail by its public project id.
func (s *ProjectService) Get(projectID string) (*ProjectDetail, error) {
	var project models.Project
	if err := s.db.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.buildDetail(&project)
}

// IsMember reports whether the user belongs to the project.
func (s *ProjectService) IsMember(projectID uint, userID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ProjectService) buildDetail(project *models.Project) (*ProjectDetail, error) {
	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", project.ID).
		Preload("User").
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(members))
	for _, m := range members {
		if m.User != nil {
			usernames = append(usernames, m.User.Username)
		}
	}

	var usages []models.HardwareUsage
	if err := s.db.Where("project_id = ?", project.ID).
		Preload("HardwareSet").
		Find(&usages).Error; err != nil {
		return nil, err
	}

	usage := make(map[string]int, len(usages))
	for _, u := range usages {
		if u.HardwareSet != nil {
			usage[u.HardwareSet.Name] = u.Quantity
		}
	}

	var creator models.User
	createdBy := ""
	if err := s.db.First(&creator, project.CreatedBy).Error; err == nil {
		createdBy = creator.Username
	}

	return &ProjectDetail{
		ProjectID:   project.ProjectID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   createdBy,
		Members:     usernames,
		HWUsage:     usage,
	}, nil
}
