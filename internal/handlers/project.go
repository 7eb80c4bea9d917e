package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hwportal/backend/internal/middleware"
	"github.com/hwportal/backend/internal/services"
	"github.com/hwportal/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the current user's projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"projects": projects})
}

// Create creates a new project owned by the current user
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, detail)
}

// Get returns one project's detail
// GET /api/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	detail, err := h.projectService.Get(c.Param("projectId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, detail)
}

// Join adds the current user to a project
// POST /api/projects/:projectId/join
func (h *ProjectHandler) Join(c *gin.Context) {
	if err := h.projectService.Join(c.Param("projectId"), middleware.GetUserID(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "joined"})
}
