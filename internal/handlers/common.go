// internal/handlers/common.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// actorFromContext builds the service-layer caller identity from the values
// the auth middleware stored. Returns nil for anonymous requests.
func actorFromContext(c *gin.Context) *services.Actor {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}

	role, _ := utils.GetUserRoleFromContext(c)

	return &services.Actor{
		UserID: userID,
		Role:   models.UserRole(role),
	}
}

// respondServiceError translates service sentinel errors into the API error
// envelope. resource names the i18n message group used for not-found.
func respondServiceError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicate):
		utils.ConflictResponse(c, err.Error())
	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// parseIDParam parses the :id path segment, writing a 400 on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
