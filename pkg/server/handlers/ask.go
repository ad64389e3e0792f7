package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietlaw/trafficqa"
	"github.com/vietlaw/trafficqa/pkg/server/dto"
)

// AskHandler handles question answering requests
type AskHandler struct {
	client *trafficqa.Client
}

// NewAskHandler creates a new ask handler
func NewAskHandler(client *trafficqa.Client) *AskHandler {
	return &AskHandler{client: client}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	answer, err := h.client.Ask(c.Request.Context(), req.Question)
	if err != nil {
		status := http.StatusInternalServerError
		code := "ask_failed"
		if errors.Is(err, trafficqa.ErrEmbeddingUnavailable) {
			status = http.StatusServiceUnavailable
			code = "embedding_unavailable"
		}
		c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}
