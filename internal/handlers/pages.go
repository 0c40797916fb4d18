// internal/handlers/pages.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// PageHandler renders the server-side HTML pages for human browsing. The
// pages mirror the API filters and go through the same visibility scope, so
// a browser session sees exactly what the equivalent API call would return.
type PageHandler struct {
	clothingService *services.ClothingService
	designerService *services.DesignerService
	taxonomyService *services.TaxonomyService
}

func NewPageHandler(clothingService *services.ClothingService, designerService *services.DesignerService, taxonomyService *services.TaxonomyService) *PageHandler {
	return &PageHandler{
		clothingService: clothingService,
		designerService: designerService,
		taxonomyService: taxonomyService,
	}
}

// GET /
func (h *PageHandler) ClothingListPage(c *gin.Context) {
	actor := actorFromContext(c)
	params := clothingSearchParams(c)

	clothes, total, err := h.clothingService.SearchClothes(actor, params)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	categories, _ := h.taxonomyService.ListCategories()
	seasons, _ := h.taxonomyService.ListSeasons()

	result := utils.CreatePaginationResult(clothes, total, params.PaginationParams)

	c.HTML(http.StatusOK, "clothing_list.html", gin.H{
		"clothes":    clothes,
		"categories": categories,
		"seasons":    seasons,
		"query":      params.Search,
		"color":      params.Color,
		"pagination": result,
	})
}

// pageIDParam parses the :id segment, rendering the error page on failure
// so page routes never answer with the JSON envelope.
func pageIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

// GET /clothing/:id
func (h *PageHandler) ClothingDetailPage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	actor := actorFromContext(c)

	clothing, err := h.clothingService.GetClothing(actor, id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Clothing record not found"})
		return
	}

	history, _, err := h.clothingService.GetClothingHistory(actor, id, utils.PaginationParams{
		Page: 1, Limit: 20, Sort: "created_at", Order: "desc",
	})
	if err != nil {
		history = nil
	}

	c.HTML(http.StatusOK, "clothing_detail.html", gin.H{
		"clothing": clothing,
		"history":  history,
	})
}

// GET /designers/browse
func (h *PageHandler) DesignerListPage(c *gin.Context) {
	params := services.DesignerListParams{
		PaginationParams: utils.GetPaginationParams(c),
		ActiveOnly:       true,
	}

	designers, total, err := h.designerService.ListDesigners(params)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	result := utils.CreatePaginationResult(designers, total, params.PaginationParams)

	c.HTML(http.StatusOK, "designer_list.html", gin.H{
		"designers":  designers,
		"pagination": result,
	})
}

// GET /designer/:id
func (h *PageHandler) DesignerDetailPage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	designer, err := h.designerService.GetDesigner(id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Designer not found"})
		return
	}

	clothes, _, err := h.designerService.DesignerClothes(h.clothingService, actorFromContext(c), id, utils.PaginationParams{
		Page: 1, Limit: 50, Sort: "created_at", Order: "desc",
	})
	if err != nil {
		clothes = nil
	}

	c.HTML(http.StatusOK, "designer_detail.html", gin.H{
		"designer": designer,
		"clothes":  clothes,
	})
}
