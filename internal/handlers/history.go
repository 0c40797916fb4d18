// internal/handlers/history.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/services"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GET /history
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	params := services.HistoryListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if idStr := c.Query("clothing_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.ClothingID = &id
		}
	}

	if idStr := c.Query("designer_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			params.DesignerID = &id
		}
	}

	if action := c.Query("action"); action != "" {
		a := models.HistoryAction(action)
		params.Action = &a
	}

	history, total, err := h.historyService.ListHistory(actorFromContext(c), params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(history, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /history/:id
func (h *HistoryHandler) GetHistoryEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.historyService.GetHistory(actorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err, "history")
		return
	}

	utils.SuccessResponse(c, gin.H{"history": entry})
}
