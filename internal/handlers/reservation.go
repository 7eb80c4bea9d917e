package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hwportal/backend/internal/middleware"
	"github.com/hwportal/backend/internal/services"
	"github.com/hwportal/backend/pkg/logger"
	"github.com/hwportal/backend/pkg/response"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(db *gorm.DB) *ReservationHandler {
	return &ReservationHandler{
		reservationService: services.NewReservationService(db),
	}
}

type ReservationRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	HWSetName string `json:"hw_set_name" binding:"required"`
	Quantity  int    `json:"quantity"` // validated by the engine: must be positive
}

// CheckOut reserves hardware units for a project
// POST /api/checkout
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	username := middleware.GetUsername(c)
	state, err := h.reservationService.CheckOut(req.ProjectID, req.HWSetName, req.Quantity, username)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	logger.Info().
		Str("user", username).
		Str("project", state.ProjectID).
		Str("hw_set", state.HWName).
		Int("qty", req.Quantity).
		Int("available", state.Available).
		Msg("checkout")

	response.Success(c, state)
}

// CheckIn returns hardware units from a project
// POST /api/checkin
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	username := middleware.GetUsername(c)
	state, err := h.reservationService.CheckIn(req.ProjectID, req.HWSetName, req.Quantity, username)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	logger.Info().
		Str("user", username).
		Str("project", state.ProjectID).
		Str("hw_set", state.HWName).
		Int("qty", req.Quantity).
		Int("available", state.Available).
		Msg("checkin")

	response.Success(c, state)
}
