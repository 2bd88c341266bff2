package controllers

import (
	"net/http"

	"github.com/corexathletics/storefront/services/account-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	service services.WishlistService
}

func NewWishlistController(service services.WishlistService) *WishlistController {
	return &WishlistController{service: service}
}

func (wc *WishlistController) List(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	view, err := wc.service.List(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (wc *WishlistController) Add(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	view, err := wc.service.Add(c.Request.Context(), id, c.Param("product_id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (wc *WishlistController) Remove(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	view, err := wc.service.Remove(c.Request.Context(), id, c.Param("product_id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
