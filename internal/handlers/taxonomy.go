// internal/handlers/taxonomy.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stylehaus/atelier-backend/internal/i18n"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// TaxonomyHandler serves the four classification vocabularies. The four
// groups are intentionally uniform; reads are public, writes staff-only.
type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

func bindAndValidate(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}

	return true
}

// Categories

// GET /categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:id
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.taxonomyService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}

// POST /categories (staff)
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category, err := h.taxonomyService.CreateCategory(&req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTaxonomyCreated),
		"category": category,
	})
}

// PUT /categories/:id (staff)
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category, err := h.taxonomyService.UpdateCategory(id, &req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTaxonomyUpdated),
		"category": category,
	})
}

// DELETE /categories/:id (staff)
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyTaxonomyDeleted)})
}

// Tags

// GET /tags
func (h *TaxonomyHandler) GetTags(c *gin.Context) {
	tags, err := h.taxonomyService.ListTags()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"tags": tags})
}

// GET /tags/:id
func (h *TaxonomyHandler) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tag, err := h.taxonomyService.GetTag(id)
	if err != nil {
		respondServiceError(c, err, "tag")
		return
	}
	utils.SuccessResponse(c, gin.H{"tag": tag})
}

// POST /tags (staff)
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TagRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tag, err := h.taxonomyService.CreateTag(&req)
	if err != nil {
		respondServiceError(c, err, "tag")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTaxonomyCreated),
		"tag":     tag,
	})
}

// PUT /tags/:id (staff)
func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.TagRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tag, err := h.taxonomyService.UpdateTag(id, &req)
	if err != nil {
		respondServiceError(c, err, "tag")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTaxonomyUpdated),
		"tag":     tag,
	})
}

// DELETE /tags/:id (staff)
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.DeleteTag(id); err != nil {
		respondServiceError(c, err, "tag")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyTaxonomyDeleted)})
}

// Seasons

// GET /seasons
func (h *TaxonomyHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.taxonomyService.ListSeasons()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"seasons": seasons})
}

// GET /seasons/:id
func (h *TaxonomyHandler) GetSeason(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	season, err := h.taxonomyService.GetSeason(id)
	if err != nil {
		respondServiceError(c, err, "season")
		return
	}
	utils.SuccessResponse(c, gin.H{"season": season})
}

// POST /seasons (staff)
func (h *TaxonomyHandler) CreateSeason(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SeasonRequest
	if !bindAndValidate(c, &req) {
		return
	}

	season, err := h.taxonomyService.CreateSeason(&req)
	if err != nil {
		respondServiceError(c, err, "season")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTaxonomyCreated),
		"season":  season,
	})
}

// PUT /seasons/:id (staff)
func (h *TaxonomyHandler) UpdateSeason(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.SeasonRequest
	if !bindAndValidate(c, &req) {
		return
	}

	season, err := h.taxonomyService.UpdateSeason(id, &req)
	if err != nil {
		respondServiceError(c, err, "season")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTaxonomyUpdated),
		"season":  season,
	})
}

// DELETE /seasons/:id (staff)
func (h *TaxonomyHandler) DeleteSeason(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.DeleteSeason(id); err != nil {
		respondServiceError(c, err, "season")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyTaxonomyDeleted)})
}

// Materials

// GET /materials
func (h *TaxonomyHandler) GetMaterials(c *gin.Context) {
	materials, err := h.taxonomyService.ListMaterials()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"materials": materials})
}

// GET /materials/:id
func (h *TaxonomyHandler) GetMaterial(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	material, err := h.taxonomyService.GetMaterial(id)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}
	utils.SuccessResponse(c, gin.H{"material": material})
}

// POST /materials (staff)
func (h *TaxonomyHandler) CreateMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.MaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}

	material, err := h.taxonomyService.CreateMaterial(&req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTaxonomyCreated),
		"material": material,
	})
}

// PUT /materials/:id (staff)
func (h *TaxonomyHandler) UpdateMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.MaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}

	material, err := h.taxonomyService.UpdateMaterial(id, &req)
	if err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTaxonomyUpdated),
		"material": material,
	})
}

// DELETE /materials/:id (staff)
func (h *TaxonomyHandler) DeleteMaterial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.DeleteMaterial(id); err != nil {
		respondServiceError(c, err, "material")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyTaxonomyDeleted)})
}
