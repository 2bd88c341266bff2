package controllers

import (
	"net/http"
	"strings"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/money"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/services"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	service services.CatalogService
}

func NewCatalogController(service services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// ListProducts handles GET /catalog/products.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		apperrors.Respond(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, cc.service.List(filter))
}

// GetProduct handles GET /catalog/products/:id.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	p, err := cc.service.Get(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Options handles GET /catalog/options.
func (cc *CatalogController) Options(c *gin.Context) {
	c.JSON(http.StatusOK, cc.service.Options())
}

// queryValues accepts both repeated keys and comma separated lists.
func queryValues(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseFilter(c *gin.Context) (catalog.Filter, error) {
	var f catalog.Filter

	for _, v := range queryValues(c, "category") {
		if strings.EqualFold(v, catalog.CategoryAll) {
			continue
		}
		cat, err := catalog.ParseCategory(v)
		if err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, cat)
	}
	for _, v := range queryValues(c, "size") {
		s, err := catalog.ParseSize(v)
		if err != nil {
			return f, err
		}
		f.Sizes = append(f.Sizes, s)
	}
	for _, v := range queryValues(c, "color") {
		col, err := catalog.ParseColor(v)
		if err != nil {
			return f, err
		}
		f.Colors = append(f.Colors, col)
	}

	var err error
	if f.MinPrice, err = parsePrice(c.Query("min_price")); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(c.Query("max_price")); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, errInvalidRange
	}

	f.Query = c.Query("q")
	if f.Sort, err = catalog.ParseSortKey(c.Query("sort")); err != nil {
		return f, err
	}
	return f, nil
}

func parsePrice(raw string) (*money.Amount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	a, err := money.Parse(raw)
	if err != nil {
		return nil, err
	}
	if a < 0 {
		return nil, errNegativePrice
	}
	return &a, nil
}
