package controllers

import (
	"context"
	"net/http"

	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/services"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	service services.CheckoutService
}

func NewCheckoutController(service services.CheckoutService) *CheckoutController {
	return &CheckoutController{service: service}
}

type sessionOp func(ctx context.Context, o models.Owner) (*models.CheckoutView, error)

// respond runs op for the request's owner and writes the session view.
func (cc *CheckoutController) respond(c *gin.Context, status int, op sessionOp) {
	o, ok := owner(c)
	if !ok {
		return
	}
	view, err := op(c.Request.Context(), o)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(status, view)
}

func (cc *CheckoutController) Start(c *gin.Context) {
	cc.respond(c, http.StatusCreated, cc.service.Start)
}

func (cc *CheckoutController) Get(c *gin.Context) {
	cc.respond(c, http.StatusOK, cc.service.Get)
}

func (cc *CheckoutController) Next(c *gin.Context) {
	cc.respond(c, http.StatusOK, cc.service.Next)
}

func (cc *CheckoutController) Previous(c *gin.Context) {
	cc.respond(c, http.StatusOK, cc.service.Previous)
}

func (cc *CheckoutController) RemoveDiscount(c *gin.Context) {
	cc.respond(c, http.StatusOK, cc.service.RemoveDiscount)
}

func (cc *CheckoutController) SelectLine(c *gin.Context) {
	var req models.SelectLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	cc.respond(c, http.StatusOK, func(ctx context.Context, o models.Owner) (*models.CheckoutView, error) {
		return cc.service.SetSelected(ctx, o, lineKey(req.ProductID, req.Size, req.Color), *req.Selected)
	})
}

func (cc *CheckoutController) UpdateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	cc.respond(c, http.StatusOK, func(ctx context.Context, o models.Owner) (*models.CheckoutView, error) {
		return cc.service.UpdateAddress(ctx, o, req.ToAddress())
	})
}

func (cc *CheckoutController) SelectPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	cc.respond(c, http.StatusOK, func(ctx context.Context, o models.Owner) (*models.CheckoutView, error) {
		return cc.service.SelectPaymentMethod(ctx, o, req.Method)
	})
}

func (cc *CheckoutController) ApplyDiscount(c *gin.Context) {
	var req models.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	cc.respond(c, http.StatusOK, func(ctx context.Context, o models.Owner) (*models.CheckoutView, error) {
		return cc.service.ApplyDiscount(ctx, o, req.Code)
	})
}

func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	conf, err := cc.service.PlaceOrder(c.Request.Context(), o)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, conf)
}
