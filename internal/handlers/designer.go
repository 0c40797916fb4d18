// internal/handlers/designer.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stylehaus/atelier-backend/internal/i18n"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type DesignerHandler struct {
	designerService *services.DesignerService
	clothingService *services.ClothingService
}

func NewDesignerHandler(designerService *services.DesignerService, clothingService *services.ClothingService) *DesignerHandler {
	return &DesignerHandler{
		designerService: designerService,
		clothingService: clothingService,
	}
}

// GET /designers
func (h *DesignerHandler) GetDesigners(c *gin.Context) {
	params := services.DesignerListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			params.ActiveOnly = active
		}
	}

	designers, total, err := h.designerService.ListDesigners(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(designers, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /designers/:id
func (h *DesignerHandler) GetDesigner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	designer, err := h.designerService.GetDesigner(id)
	if err != nil {
		respondServiceError(c, err, "designer")
		return
	}

	utils.SuccessResponse(c, gin.H{"designer": designer})
}

// GET /designers/:id/clothes
func (h *DesignerHandler) GetDesignerClothes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	clothes, total, err := h.designerService.DesignerClothes(h.clothingService, actorFromContext(c), id, params)
	if err != nil {
		respondServiceError(c, err, "designer")
		return
	}

	result := utils.CreatePaginationResult(clothes, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /designers (staff)
func (h *DesignerHandler) CreateDesigner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	designer, err := h.designerService.CreateDesigner(&req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDesignerCreated),
		"designer": designer,
	})
}

// PUT /designers/:id
func (h *DesignerHandler) UpdateDesigner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := actorFromContext(c)
	if actor == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	designer, err := h.designerService.UpdateDesigner(actor, id, &req)
	if err != nil {
		respondServiceError(c, err, "designer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDesignerUpdated),
		"designer": designer,
	})
}

// DELETE /designers/:id (staff)
func (h *DesignerHandler) DeleteDesigner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.designerService.DeleteDesigner(id); err != nil {
		respondServiceError(c, err, "designer")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyDesignerDeleted)})
}
