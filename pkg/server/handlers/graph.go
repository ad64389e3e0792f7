package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietlaw/trafficqa"
	"github.com/vietlaw/trafficqa/pkg/server/dto"
)

// GraphHandler serves read-only views of the knowledge graph
type GraphHandler struct {
	client *trafficqa.Client
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(client *trafficqa.Client) *GraphHandler {
	return &GraphHandler{client: client}
}

// SimilarBehaviors handles GET /api/v1/behaviors/:id/similar
func (h *GraphHandler) SimilarBehaviors(c *gin.Context) {
	behaviorID := c.Param("id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a non-negative integer",
			})
			return
		}
		limit = n
	}

	cases, err := h.client.SimilarCases(behaviorID, limit)
	if err != nil {
		if errors.Is(err, trafficqa.ErrNodeNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "similar_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"behavior_id": behaviorID,
		"similar":     cases,
	})
}

// Stats handles GET /api/v1/graph/stats
func (h *GraphHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.client.Stats())
}
