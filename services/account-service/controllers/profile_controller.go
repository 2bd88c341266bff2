package controllers

import (
	"net/http"

	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	service services.ProfileService
}

func NewProfileController(service services.ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

// userID reads the caller set by middleware.RequireUser.
func userID(c *gin.Context) (string, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
	}
	return id, ok
}

func (pc *ProfileController) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	p, err := pc.service.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *ProfileController) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}
	p, err := pc.service.Update(c.Request.Context(), id, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *ProfileController) AvatarUploadURL(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}
	up, err := pc.service.AvatarUploadURL(c.Request.Context(), id, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
