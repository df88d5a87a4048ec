package handler

import (
	"fmt"
	"net/http"

	"feelre/internal/catalog"
	"feelre/internal/model"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler accepts precomputed item embeddings from offline jobs
type EmbeddingHandler struct {
	store      catalog.EmbeddingStore
	dimensions int
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(store catalog.EmbeddingStore, dimensions int) *EmbeddingHandler {
	return &EmbeddingHandler{store: store, dimensions: dimensions}
}

// BatchUpdate handles POST /api/v1/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	for _, item := range req.Embeddings {
		if len(item.Embedding) != h.dimensions {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("item %s: expected %d dimensions, got %d", item.ItemID, h.dimensions, len(item.Embedding)),
			})
			return
		}
	}

	success, errors := h.store.BatchUpdateEmbeddings(c.Request.Context(), req.Embeddings)

	resp := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errors,
	}

	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusPartialContent
	}
	c.JSON(status, resp)
}
