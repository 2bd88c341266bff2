package controllers

import (
	"net/http"

	"github.com/corexathletics/storefront/services/assistant-service/models"
	"github.com/corexathletics/storefront/services/assistant-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	service services.ChatService
}

func NewAssistantController(service services.ChatService) *AssistantController {
	return &AssistantController{service: service}
}

// Chat handles POST /assistant/chat.
func (ac *AssistantController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reply, err := ac.service.Chat(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Samples handles GET /assistant/samples.
func (ac *AssistantController) Samples(c *gin.Context) {
	c.JSON(http.StatusOK, models.SamplesResponse{Questions: ac.service.Samples()})
}
