// internal/handlers/clothing.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/i18n"
	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type ClothingHandler struct {
	clothingService *services.ClothingService
}

func NewClothingHandler(clothingService *services.ClothingService) *ClothingHandler {
	return &ClothingHandler{clothingService: clothingService}
}

// clothingSearchParams reads the shared filter set used by both the list and
// search endpoints.
func clothingSearchParams(c *gin.Context) services.ClothingSearchParams {
	params := services.ClothingSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if idStr := c.Query("designer_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.DesignerID = &id
		}
	}

	if idStr := c.Query("category_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.CategoryID = &id
		}
	}

	if idStr := c.Query("season_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.SeasonID = &id
		}
	}

	if gender := c.Query("gender"); gender != "" {
		g := models.Gender(gender)
		params.Gender = &g
	}

	if status := c.Query("status"); status != "" {
		s := models.ClothingStatus(status)
		params.Status = &s
	}

	if isPublicStr := c.Query("is_public"); isPublicStr != "" {
		if isPublic, err := strconv.ParseBool(isPublicStr); err == nil {
			params.IsPublic = &isPublic
		}
	}

	params.Color = c.Query("color")

	if tags := c.Query("tags"); tags != "" {
		for _, idStr := range strings.Split(tags, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				params.TagIDs = append(params.TagIDs, id)
			}
		}
	}

	if materials := c.Query("materials"); materials != "" {
		for _, idStr := range strings.Split(materials, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				params.MaterialIDs = append(params.MaterialIDs, id)
			}
		}
	}

	return params
}

// GET /clothes
func (h *ClothingHandler) GetClothes(c *gin.Context) {
	actor := actorFromContext(c)
	params := clothingSearchParams(c)

	clothes, total, err := h.clothingService.SearchClothes(actor, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(clothes, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /clothes/search
func (h *ClothingHandler) SearchClothes(c *gin.Context) {
	h.GetClothes(c)
}

// GET /clothes/:id
func (h *ClothingHandler) GetClothing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	clothing, err := h.clothingService.GetClothing(actorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	utils.SuccessResponse(c, gin.H{"clothing": clothing})
}

// POST /clothes
func (h *ClothingHandler) CreateClothing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor := actorFromContext(c)
	if actor == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	clothing, err := h.clothingService.CreateClothing(actor, &req)
	if err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyClothingCreated),
		"clothing": clothing,
	})
}

// PUT /clothes/:id
func (h *ClothingHandler) UpdateClothing(c *gin.Context) {
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

	var req services.UpdateClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	clothing, err := h.clothingService.UpdateClothing(actor, id, &req)
	if err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyClothingUpdated),
		"clothing": clothing,
	})
}

// DELETE /clothes/:id
func (h *ClothingHandler) DeleteClothing(c *gin.Context) {
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

	if err := h.clothingService.DeleteClothing(actor, id); err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyClothingDeleted)})
}

// POST /clothes/:id/publish
func (h *ClothingHandler) PublishClothing(c *gin.Context) {
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

	clothing, err := h.clothingService.PublishClothing(actor, id)
	if err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyClothingPublished),
		"clothing": clothing,
	})
}

// GET /clothes/:id/history
func (h *ClothingHandler) GetClothingHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	history, total, err := h.clothingService.GetClothingHistory(actorFromContext(c), id, params)
	if err != nil {
		respondServiceError(c, err, "clothing")
		return
	}

	result := utils.CreatePaginationResult(history, total, params)
	utils.PaginatedResponse(c, result)
}
