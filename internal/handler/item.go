package handler

import (
	"net/http"

	"feelre/internal/catalog"

	"github.com/gin-gonic/gin"
)

// ItemHandler serves single catalog item lookups
type ItemHandler struct {
	store catalog.ItemStore
}

// NewItemHandler creates a new item handler
func NewItemHandler(store catalog.ItemStore) *ItemHandler {
	return &ItemHandler{store: store}
}

// GetItem handles GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID := c.Param("id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.store.GetItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get item: " + err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}
