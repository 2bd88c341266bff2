package routes

import (
	"github.com/corexathletics/storefront/services/storefront-service/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterCatalogRoutes(r gin.IRouter, cc *controllers.CatalogController) {
	g := r.Group("/catalog")
	{
		g.GET("/products", cc.ListProducts)
		g.GET("/products/:id", cc.GetProduct)
		g.GET("/options", cc.Options)
	}
}

// RegisterCartRoutes expects shopper resolution middleware on r.
func RegisterCartRoutes(r gin.IRouter, cc *controllers.CartController) {
	g := r.Group("/cart")
	{
		g.GET("", cc.GetCart)
		g.DELETE("", cc.ClearCart)
		g.POST("/items", cc.AddItem)
		g.PATCH("/items", cc.UpdateItem)
		g.DELETE("/items", cc.RemoveItem)
	}
}

// RegisterCheckoutRoutes expects shopper resolution middleware on r.
func RegisterCheckoutRoutes(r gin.IRouter, cc *controllers.CheckoutController) {
	g := r.Group("/checkout")
	{
		g.POST("", cc.Start)
		g.GET("", cc.Get)
		g.PATCH("/lines", cc.SelectLine)
		g.PUT("/address", cc.UpdateAddress)
		g.PUT("/payment", cc.SelectPayment)
		g.POST("/discount", cc.ApplyDiscount)
		g.DELETE("/discount", cc.RemoveDiscount)
		g.POST("/next", cc.Next)
		g.POST("/previous", cc.Previous)
		g.POST("/place-order", cc.PlaceOrder)
	}
}
