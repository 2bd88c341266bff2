package routes

import (
	"github.com/corexathletics/storefront/services/account-service/controllers"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
)

// AuthLimits bounds sign-in style requests per client IP.
type AuthLimits struct {
	PerMinute int
	Burst     int
}

// RegisterAuthRoutes expects middleware.Authenticate on r.
func RegisterAuthRoutes(r gin.IRouter, ac *controllers.AuthController, limits AuthLimits) {
	g := r.Group("/auth")
	{
		limited := g.Group("", middleware.RateLimit(limits.PerMinute, limits.Burst))
		limited.POST("/signup", ac.SignUp)
		limited.POST("/signin", ac.SignIn)
		limited.POST("/refresh", ac.Refresh)

		g.POST("/signout", ac.SignOut)
		g.GET("/me", ac.Me)
	}
}

func RegisterProfileRoutes(r gin.IRouter, pc *controllers.ProfileController) {
	g := r.Group("/profile", middleware.RequireUser())
	{
		g.GET("", pc.Get)
		g.PUT("", pc.Update)
		g.POST("/avatar-upload-url", pc.AvatarUploadURL)
	}
}

func RegisterWishlistRoutes(r gin.IRouter, wc *controllers.WishlistController) {
	g := r.Group("/wishlist", middleware.RequireUser())
	{
		g.GET("", wc.List)
		g.POST("/:product_id", wc.Add)
		g.DELETE("/:product_id", wc.Remove)
	}
}
