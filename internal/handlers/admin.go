// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stylehaus/atelier-backend/internal/i18n"
	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// AdminHandler serves the staff-only dashboard and account management.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	params := services.UserListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		params.Role = &r
	}

	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		params.Status = &s
	}

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(users, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(id)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.adminService.CreateUser(&req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, gin.H{"user": user})
}

// PUT /users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(id, &req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUpdated),
		"user":    user,
	})
}

// DELETE /users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(actorFromContext(c), id); err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyUserDeleted)})
}
