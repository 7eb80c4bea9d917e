package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hwportal/backend/internal/services"
	"github.com/hwportal/backend/pkg/response"
)

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Every expected domain condition becomes a 4xx; anything else is a 500.
func writeServiceError(c *gin.Context, err error) {
	var insufficientErr *services.InsufficientAvailabilityError
	var overReturnErr *services.OverReturnError

	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidCapacity):
		response.BadRequest(c, err.Error())
	case errors.As(err, &insufficientErr), errors.As(err, &overReturnErr):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotAMember):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrHardwareNotFound),
		errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateCredential),
		errors.Is(err, services.ErrDuplicateProjectID),
		errors.Is(err, services.ErrDuplicateHardwareSet):
		response.Conflict(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
