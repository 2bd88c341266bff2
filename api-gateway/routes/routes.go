package routes

import (
	"github.com/corexathletics/storefront/api-gateway/proxy"
	"github.com/gin-gonic/gin"
)

type Upstreams struct {
	Storefront *proxy.Forwarder
	Account    *proxy.Forwarder
	Assistant  *proxy.Forwarder
}

func RegisterAllRoutes(r gin.IRouter, up Upstreams) {
	mount := func(prefix string, f *proxy.Forwarder) {
		r.Any(prefix, f.Handle)
		r.Any(prefix+"/*any", f.Handle)
	}

	// Catalog, cart and checkout
	mount("/catalog", up.Storefront)
	mount("/cart", up.Storefront)
	mount("/checkout", up.Storefront)

	// Accounts
	mount("/auth", up.Account)
	mount("/profile", up.Account)
	mount("/wishlist", up.Account)

	mount("/assistant", up.Assistant)
}
