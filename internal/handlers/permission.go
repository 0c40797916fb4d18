// internal/handlers/permission.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/i18n"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// PermissionHandler manages access grants. All routes are staff-only,
// enforced in the router.
type PermissionHandler struct {
	permissionService *services.PermissionService
}

func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// GET /permissions
func (h *PermissionHandler) GetPermissions(c *gin.Context) {
	params := services.PermissionListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if idStr := c.Query("user_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.UserID = &id
		}
	}

	if idStr := c.Query("clothing_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.ClothingID = &id
		}
	}

	permissions, total, err := h.permissionService.ListPermissions(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(permissions, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /permissions/:id
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	permission, err := h.permissionService.GetPermission(id)
	if err != nil {
		respondServiceError(c, err, "permission")
		return
	}

	utils.SuccessResponse(c, gin.H{"permission": permission})
}

// POST /permissions
func (h *PermissionHandler) GrantPermission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GrantPermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	permission, err := h.permissionService.GrantPermission(actorFromContext(c), &req)
	if err != nil {
		respondServiceError(c, err, "permission")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyPermissionGranted),
		"permission": permission,
	})
}

// PUT /permissions/:id
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	permission, err := h.permissionService.UpdatePermission(id, &req)
	if err != nil {
		respondServiceError(c, err, "permission")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyPermissionUpdated),
		"permission": permission,
	})
}

// DELETE /permissions/:id
func (h *PermissionHandler) RevokePermission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.permissionService.RevokePermission(id); err != nil {
		respondServiceError(c, err, "permission")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyPermissionRevoked)})
}
