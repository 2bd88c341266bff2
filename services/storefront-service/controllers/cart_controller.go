package controllers

import (
	"net/http"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/checkout"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/middleware"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	service services.CartService
}

func NewCartController(service services.CartService) *CartController {
	return &CartController{service: service}
}

// lineKey builds a key from binder-validated fields, so parse errors cannot occur.
func lineKey(productID, size, color string) checkout.LineKey {
	s, _ := catalog.ParseSize(size)
	col, _ := catalog.ParseColor(color)
	return checkout.LineKey{ProductID: productID, Size: s, Color: col}
}

func owner(c *gin.Context) (models.Owner, bool) {
	o, ok := middleware.GetOwner(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
	}
	return o, ok
}

func (cc *CartController) GetCart(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	view, err := cc.service.GetCart(c.Request.Context(), o)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *CartController) AddItem(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	view, err := cc.service.AddItem(c.Request.Context(), o, lineKey(req.ProductID, req.Size, req.Color), req.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	view, err := cc.service.UpdateQuantity(c.Request.Context(), o, lineKey(req.ProductID, req.Size, req.Color), req.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var q models.CartLineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	view, err := cc.service.RemoveItem(c.Request.Context(), o, lineKey(q.ProductID, q.Size, q.Color))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if err := cc.service.ClearCart(c.Request.Context(), o); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
