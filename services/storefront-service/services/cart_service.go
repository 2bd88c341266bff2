package services

import (
	"context"
	"fmt"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/checkout"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/repository"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, owner models.Owner) (*models.CartView, error)
	AddItem(ctx context.Context, owner models.Owner, key checkout.LineKey, qty int) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, owner models.Owner, key checkout.LineKey, qty int) (*models.CartView, error)
	RemoveItem(ctx context.Context, owner models.Owner, key checkout.LineKey) (*models.CartView, error)
	ClearCart(ctx context.Context, owner models.Owner) error
	// CheckoutLines prices the cart for a new checkout session.
	CheckoutLines(ctx context.Context, owner models.Owner) ([]checkout.Line, error)
}

type cartService struct {
	repo    repository.CartRepository
	catalog *catalog.Catalog
	metrics awspkg.MetricsRecorder
	logger  *zap.Logger
}

func NewCartService(repo repository.CartRepository, c *catalog.Catalog, metrics awspkg.MetricsRecorder, logger *zap.Logger) CartService {
	return &cartService{repo: repo, catalog: c, metrics: metrics, logger: logger}
}

func (s *cartService) load(ctx context.Context, owner models.Owner) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, owner.Key())
	if err != nil {
		s.logger.Error("load cart failed", zap.String("owner", owner.Key()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{OwnerID: owner.Key(), Items: []models.CartItem{}}
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, owner models.Owner, cart *models.Cart) (*models.CartView, error) {
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("save cart failed", zap.String("owner", owner.Key()), zap.Error(err))
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return s.view(cart), nil
}

// validateLine checks the product exists and offers the requested variant.
func (s *cartService) validateLine(key checkout.LineKey) error {
	p, err := s.catalog.Get(key.ProductID)
	if err != nil {
		return apperrors.NotFound("Product not found", err)
	}
	if !p.OffersSize(key.Size) {
		return apperrors.BadRequest("Size "+string(key.Size)+" is not available for "+p.Name, nil)
	}
	if !p.OffersColor(key.Color) {
		return apperrors.BadRequest("Color "+string(key.Color)+" is not available for "+p.Name, nil)
	}
	return nil
}

func (s *cartService) GetCart(ctx context.Context, owner models.Owner) (*models.CartView, error) {
	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddItem merges into an existing line with the same product, size and color.
func (s *cartService) AddItem(ctx context.Context, owner models.Owner, key checkout.LineKey, qty int) (*models.CartView, error) {
	if qty <= 0 {
		qty = 1
	}
	if qty > models.MaxLineQuantity {
		return nil, apperrors.BadRequest(fmt.Sprintf("Quantity cannot exceed %d", models.MaxLineQuantity), nil)
	}
	if err := s.validateLine(key); err != nil {
		return nil, err
	}
	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Key() == key {
			if cart.Items[i].Quantity+qty > models.MaxLineQuantity {
				return nil, apperrors.BadRequest(fmt.Sprintf("Quantity cannot exceed %d", models.MaxLineQuantity), nil)
			}
			cart.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: key.ProductID,
			Size:      key.Size,
			Color:     key.Color,
			Quantity:  qty,
			AddedAt:   time.Now().UTC(),
		})
	}

	view, err := s.save(ctx, owner, cart)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		_ = s.metrics.RecordCount(ctx, awspkg.MetricCartItemsAdded, map[string]string{"Service": "storefront-service"})
	}
	return view, nil
}

// UpdateQuantity sets quantity on an existing line. Removal goes through
// RemoveItem, never through a zero quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, owner models.Owner, key checkout.LineKey, qty int) (*models.CartView, error) {
	if qty < 1 {
		return nil, apperrors.BadRequest("Quantity must be at least 1", checkout.ErrInvalidQuantity)
	}
	if qty > models.MaxLineQuantity {
		return nil, apperrors.BadRequest(fmt.Sprintf("Quantity cannot exceed %d", models.MaxLineQuantity), nil)
	}
	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].Key() == key {
			cart.Items[i].Quantity = qty
			return s.save(ctx, owner, cart)
		}
	}
	return nil, apperrors.NotFound("Item not in cart", nil)
}

func (s *cartService) RemoveItem(ctx context.Context, owner models.Owner, key checkout.LineKey) (*models.CartView, error) {
	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, apperrors.NotFound("Item not in cart", nil)
	}
	cart.Items = kept
	return s.save(ctx, owner, cart)
}

func (s *cartService) ClearCart(ctx context.Context, owner models.Owner) error {
	if err := s.repo.DeleteCart(ctx, owner.Key()); err != nil {
		s.logger.Error("clear cart failed", zap.String("owner", owner.Key()), zap.Error(err))
		return apperrors.Internal("Failed to clear cart", err)
	}
	return nil
}

func (s *cartService) CheckoutLines(ctx context.Context, owner models.Owner) ([]checkout.Line, error) {
	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	lines := make([]checkout.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, err := s.catalog.Get(item.ProductID)
		if err != nil {
			continue
		}
		lines = append(lines, checkout.Line{
			LineKey:   item.Key(),
			Name:      p.Name,
			Image:     p.Image,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			Selected:  true,
		})
	}
	return lines, nil
}

// view prices the cart against the current catalog. Lines whose product has
// left the catalog are skipped.
func (s *cartService) view(cart *models.Cart) *models.CartView {
	v := &models.CartView{Lines: make([]models.CartLineView, 0, len(cart.Items))}
	for _, item := range cart.Items {
		p, err := s.catalog.Get(item.ProductID)
		if err != nil {
			s.logger.Warn("cart references unknown product", zap.String("product_id", item.ProductID))
			continue
		}
		line := models.CartLineView{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			LineTotal: p.Price.MulQty(item.Quantity),
		}
		v.Lines = append(v.Lines, line)
		v.ItemCount += item.Quantity
		v.Total += line.LineTotal
	}
	if !cart.UpdatedAt.IsZero() {
		t := cart.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}
