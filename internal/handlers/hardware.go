package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hwportal/backend/internal/services"
	"github.com/hwportal/backend/pkg/response"
	"gorm.io/gorm"
)

type HardwareHandler struct {
	hardwareService *services.HardwareService
}

func NewHardwareHandler(db *gorm.DB) *HardwareHandler {
	return &HardwareHandler{
		hardwareService: services.NewHardwareService(db),
	}
}

// ListNames returns all hardware set names
// GET /api/hardware
func (h *HardwareHandler) ListNames(c *gin.Context) {
	names, err := h.hardwareService.ListNames()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"hardware_names": names})
}

// Get returns one hardware set's capacity and availability
// GET /api/hardware/:name
func (h *HardwareHandler) Get(c *gin.Context) {
	hw, err := h.hardwareService.Get(c.Param("name"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, hw)
}

// Create adds a new hardware set to the catalog
// POST /api/hardware
func (h *HardwareHandler) Create(c *gin.Context) {
	var req services.CreateHardwareSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hw, err := h.hardwareService.Create(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, hw)
}

// Inventory returns every hardware set with its per-project usage
// GET /api/inventory
func (h *HardwareHandler) Inventory(c *gin.Context) {
	items, err := h.hardwareService.Inventory()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"inventory": items})
}
