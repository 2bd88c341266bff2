package services

import (
	"context"
	"errors"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"go.uber.org/zap"
)

// ProductLookup resolves catalog products by ID.
type ProductLookup interface {
	Get(id string) (catalog.Product, error)
}

type WishlistService interface {
	List(ctx context.Context, userID string) (*models.WishlistView, error)
	Add(ctx context.Context, userID, productID string) (*models.WishlistView, error)
	Remove(ctx context.Context, userID, productID string) (*models.WishlistView, error)
}

type wishlistService struct {
	repo     repository.WishlistRepository
	products ProductLookup
	logger   *zap.Logger
}

func NewWishlistService(repo repository.WishlistRepository, products ProductLookup, logger *zap.Logger) WishlistService {
	return &wishlistService{repo: repo, products: products, logger: logger}
}

func (s *wishlistService) List(ctx context.Context, userID string) (*models.WishlistView, error) {
	if _, err := parseUserID(userID); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load wishlist", err)
	}
	view := &models.WishlistView{ProductIDs: make([]string, 0, len(items)), Items: items}
	if view.Items == nil {
		view.Items = []models.WishlistItem{}
	}
	for _, it := range items {
		view.ProductIDs = append(view.ProductIDs, it.ProductID)
	}
	return view, nil
}

func (s *wishlistService) Add(ctx context.Context, userID, productID string) (*models.WishlistView, error) {
	if _, err := parseUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.products.Get(productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, apperrors.NotFound("Product not found", err)
		}
		return nil, apperrors.Internal("Failed to look up product", err)
	}
	if err := s.repo.Add(ctx, models.WishlistItem{UserID: userID, ProductID: productID}); err != nil {
		return nil, apperrors.Internal("Failed to update wishlist", err)
	}
	return s.List(ctx, userID)
}

// Remove succeeds whether or not the product was wishlisted.
func (s *wishlistService) Remove(ctx context.Context, userID, productID string) (*models.WishlistView, error) {
	if _, err := parseUserID(userID); err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, apperrors.Internal("Failed to update wishlist", err)
	}
	return s.List(ctx, userID)
}
