package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/checkout"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/repository"
	"go.uber.org/zap"
)

// LoadCatalog builds the immutable catalog snapshot from src. An empty source
// falls back to the reference collection.
func LoadCatalog(ctx context.Context, src repository.CatalogSource, logger *zap.Logger) (*catalog.Catalog, error) {
	products, err := src.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		logger.Warn("Catalog source is empty, serving the reference catalog")
		return catalog.Default(), nil
	}
	c, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	logger.Info("Catalog loaded", zap.Int("products", c.Len()))
	return c, nil
}

type CatalogService interface {
	List(f catalog.Filter) *models.ProductListResponse
	Get(id string) (*catalog.Product, error)
	Options() *models.CatalogOptions
}

type catalogService struct {
	catalog *catalog.Catalog
}

func NewCatalogService(c *catalog.Catalog) CatalogService {
	return &catalogService{catalog: c}
}

func (s *catalogService) List(f catalog.Filter) *models.ProductListResponse {
	res := s.catalog.Filter(f)
	return &models.ProductListResponse{
		Products: res.Products,
		Meta: models.ProductListMeta{
			Filtered:      res.Filtered,
			Total:         res.Total,
			FiltersActive: res.FiltersActive,
		},
	}
}

func (s *catalogService) Get(id string) (*catalog.Product, error) {
	p, err := s.catalog.Get(id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return nil, apperrors.NotFound("Product not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return &p, nil
}

func (s *catalogService) Options() *models.CatalogOptions {
	min, max := s.catalog.PriceBounds()
	opts := &models.CatalogOptions{
		Categories: []models.Option{{Value: catalog.CategoryAll, Label: "All Products"}},
		Sizes:      catalog.AllSizes(),
		Colors:     catalog.AllColors(),
		PriceRange: models.PriceRange{Min: min, Max: max},
	}
	for _, c := range catalog.AllCategories() {
		opts.Categories = append(opts.Categories, models.Option{Value: string(c), Label: c.Label()})
	}
	for _, k := range catalog.AllSortKeys() {
		opts.SortOptions = append(opts.SortOptions, models.Option{Value: string(k), Label: k.Label()})
	}
	for _, r := range checkout.AllRegions() {
		opts.Regions = append(opts.Regions, string(r))
	}
	for _, m := range checkout.AllPaymentMethods() {
		opts.PaymentMethods = append(opts.PaymentMethods, models.Option{Value: string(m), Label: m.Label()})
	}
	return opts
}
