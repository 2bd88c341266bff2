package middleware

import (
	"net/http"

	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	OwnerKey      = "owner"
	CartCookie    = "cart_id"
	cartCookieTTL = 30 * 24 * 60 * 60
)

// Shopper resolves the cart owner. Signed-in users (set by
// middleware.Authenticate) own their cart; everyone else gets a guest ID
// from the X-Cart-ID header or cart_id cookie, minted when absent or malformed.
func Shopper(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := middleware.UserID(c); ok {
			c.Set(OwnerKey, models.Owner{ID: userID})
			c.Next()
			return
		}

		guestID := c.GetHeader(middleware.CartIDHeader)
		if guestID == "" {
			guestID, _ = c.Cookie(CartCookie)
		}
		if _, err := uuid.Parse(guestID); err != nil {
			guestID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartCookie, guestID, cartCookieTTL, "/", "", secureCookies, true)
		c.Header(middleware.CartIDHeader, guestID)
		c.Set(OwnerKey, models.Owner{ID: guestID, Guest: true})
		c.Next()
	}
}

// GetOwner returns the owner resolved by Shopper.
func GetOwner(c *gin.Context) (models.Owner, bool) {
	v, ok := c.Get(OwnerKey)
	if !ok {
		return models.Owner{}, false
	}
	o, ok := v.(models.Owner)
	return o, ok
}
