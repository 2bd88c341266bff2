package routes

import (
	"github.com/corexathletics/storefront/services/assistant-service/controllers"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes rate limits chat per client IP. A perMinute of zero
// disables the limit.
func RegisterAssistantRoutes(r gin.IRouter, ac *controllers.AssistantController, perMinute, burst int) {
	g := r.Group("/assistant")
	{
		chat := g.Group("")
		if perMinute > 0 {
			chat.Use(middleware.RateLimit(perMinute, burst))
		}
		chat.POST("/chat", ac.Chat)

		g.GET("/samples", ac.Samples)
	}
}
