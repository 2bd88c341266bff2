package services

import (
	"context"
	"errors"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/checkout"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Start(ctx context.Context, owner models.Owner) (*models.CheckoutView, error)
	Get(ctx context.Context, owner models.Owner) (*models.CheckoutView, error)
	SetSelected(ctx context.Context, owner models.Owner, key checkout.LineKey, selected bool) (*models.CheckoutView, error)
	UpdateAddress(ctx context.Context, owner models.Owner, addr checkout.Address) (*models.CheckoutView, error)
	SelectPaymentMethod(ctx context.Context, owner models.Owner, method string) (*models.CheckoutView, error)
	ApplyDiscount(ctx context.Context, owner models.Owner, code string) (*models.CheckoutView, error)
	RemoveDiscount(ctx context.Context, owner models.Owner) (*models.CheckoutView, error)
	Next(ctx context.Context, owner models.Owner) (*models.CheckoutView, error)
	Previous(ctx context.Context, owner models.Owner) (*models.CheckoutView, error)
	PlaceOrder(ctx context.Context, owner models.Owner) (*models.OrderConfirmation, error)
}

// CartClearer empties an owner's cart once an order is placed.
type CartClearer interface {
	ClearCart(ctx context.Context, owner models.Owner) error
}

// CartLineSource prices an owner's cart for a new checkout.
type CartLineSource interface {
	CheckoutLines(ctx context.Context, owner models.Owner) ([]checkout.Line, error)
}

// CheckoutCart is the cart access checkout needs.
type CheckoutCart interface {
	CartClearer
	CartLineSource
}

type CheckoutDeps struct {
	Sessions   repository.SessionRepository
	Cart       CheckoutCart
	Pricing    checkout.Pricing
	Discounts  checkout.DiscountTable
	Publisher  awspkg.EventPublisher
	OrderTopic string
	Metrics    awspkg.MetricsRecorder
	Logger     *zap.Logger
}

type checkoutService struct {
	CheckoutDeps
	now func() time.Time
}

func NewCheckoutService(deps CheckoutDeps) CheckoutService {
	if deps.Discounts == nil {
		deps.Discounts = checkout.DefaultDiscounts()
	}
	return &checkoutService{CheckoutDeps: deps, now: time.Now}
}

// checkoutError maps state machine refusals to HTTP errors.
func checkoutError(err error) error {
	var addrErr *checkout.AddressError
	switch {
	case errors.As(err, &addrErr):
		return apperrors.Unprocessable("Please complete all required address fields", err).
			WithDetails(map[string]any{"missing_fields": addrErr.Missing})
	case errors.Is(err, checkout.ErrEmptyCart):
		return apperrors.Unprocessable("Your cart is empty", err)
	case errors.Is(err, checkout.ErrNoItemsSelected):
		return apperrors.Unprocessable("Please select at least one item to proceed", err)
	case errors.Is(err, checkout.ErrInvalidDiscountCode):
		return apperrors.Unprocessable("Invalid discount code", err)
	case errors.Is(err, checkout.ErrInvalidTransition):
		return apperrors.Conflict("That step is not available from here", err)
	case errors.Is(err, checkout.ErrUnknownLine):
		return apperrors.NotFound("Item is not part of this checkout", err)
	case errors.Is(err, checkout.ErrUnknownPaymentMethod):
		return apperrors.BadRequest("Unknown payment method", err)
	case errors.Is(err, checkout.ErrInvalidQuantity):
		return apperrors.BadRequest("Quantity must be at least 1", err)
	default:
		return apperrors.Internal("Checkout failed", err)
	}
}

func (s *checkoutService) view(sess checkout.Session) *models.CheckoutView {
	return models.NewCheckoutView(sess, sess.Quote(s.Pricing))
}

func (s *checkoutService) load(ctx context.Context, owner models.Owner) (*models.CheckoutRecord, error) {
	rec, err := s.Sessions.GetSession(ctx, owner.Key())
	if err != nil {
		logger.For(ctx, s.Logger).Error("load checkout session failed", zap.String("owner", owner.Key()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load checkout", err)
	}
	if rec == nil {
		return nil, apperrors.NotFound("No checkout in progress", nil)
	}
	return rec, nil
}

func (s *checkoutService) store(ctx context.Context, rec *models.CheckoutRecord) error {
	if err := s.Sessions.SaveSession(ctx, rec); err != nil {
		logger.For(ctx, s.Logger).Error("save checkout session failed", zap.String("owner", rec.OwnerID), zap.Error(err))
		return apperrors.Internal("Failed to save checkout", err)
	}
	return nil
}

// mutate loads the session, applies fn and persists the result. A refused
// operation is never written back.
func (s *checkoutService) mutate(ctx context.Context, owner models.Owner, fn func(checkout.Session) (checkout.Session, error)) (*models.CheckoutView, error) {
	rec, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	next, err := fn(rec.Session)
	if err != nil {
		return nil, checkoutError(err)
	}
	rec.Session = next
	if err := s.store(ctx, rec); err != nil {
		return nil, err
	}
	return s.view(next), nil
}

// Start opens a checkout from the current cart, replacing any earlier one.
func (s *checkoutService) Start(ctx context.Context, owner models.Owner) (*models.CheckoutView, error) {
	lines, err := s.Cart.CheckoutLines(ctx, owner)
	if err != nil {
		return nil, err
	}
	sess, err := checkout.Start(lines)
	if err != nil {
		return nil, checkoutError(err)
	}
	sess.ID = uuid.NewString()

	now := s.now().UTC()
	rec := &models.CheckoutRecord{Session: sess, OwnerID: owner.Key(), StartedAt: now}
	if err := s.store(ctx, rec); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *checkoutService) Get(ctx context.Context, owner models.Owner) (*models.CheckoutView, error) {
	rec, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(rec.Session), nil
}

func (s *checkoutService) SetSelected(ctx context.Context, owner models.Owner, key checkout.LineKey, selected bool) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.SetSelected(key, selected)
	})
}

func (s *checkoutService) UpdateAddress(ctx context.Context, owner models.Owner, addr checkout.Address) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.UpdateAddress(addr), nil
	})
}

func (s *checkoutService) SelectPaymentMethod(ctx context.Context, owner models.Owner, method string) (*models.CheckoutView, error) {
	m, err := checkout.ParsePaymentMethod(method)
	if err != nil {
		return nil, checkoutError(err)
	}
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.SelectPaymentMethod(m)
	})
}

func (s *checkoutService) ApplyDiscount(ctx context.Context, owner models.Owner, code string) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.ApplyDiscount(code, s.Discounts)
	})
}

func (s *checkoutService) RemoveDiscount(ctx context.Context, owner models.Owner) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.ClearDiscount(), nil
	})
}

func (s *checkoutService) Next(ctx context.Context, owner models.Owner) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, checkout.Session.Next)
}

func (s *checkoutService) Previous(ctx context.Context, owner models.Owner) (*models.CheckoutView, error) {
	return s.mutate(ctx, owner, func(sess checkout.Session) (checkout.Session, error) {
		return sess.Previous(), nil
	})
}

// PlaceOrder completes the checkout: the session is dropped, the cart is
// emptied and an order.placed event is published. No order is stored here.
func (s *checkoutService) PlaceOrder(ctx context.Context, owner models.Owner) (*models.OrderConfirmation, error) {
	log := logger.For(ctx, s.Logger)

	rec, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	receipt, err := rec.Session.PlaceOrder(s.Pricing)
	if err != nil {
		return nil, checkoutError(err)
	}

	// The session goes first so a failed delete cannot leave a placeable order.
	if err := s.Sessions.DeleteSession(ctx, owner.Key()); err != nil {
		return nil, apperrors.Internal("Failed to complete checkout", err)
	}
	if err := s.Cart.ClearCart(ctx, owner); err != nil {
		log.Warn("clear cart after order failed", zap.String("owner", owner.Key()), zap.Error(err))
	}

	conf := &models.OrderConfirmation{
		OrderID:       uuid.NewString(),
		Total:         receipt.Quote.Total,
		Quote:         receipt.Quote,
		PaymentMethod: receipt.Payment.Method,
		PlacedAt:      s.now().UTC(),
		Redirect:      "/",
	}
	s.publishOrderPlaced(ctx, owner, receipt, conf)

	if s.Metrics != nil {
		dims := map[string]string{"Service": "storefront-service", "PaymentMethod": string(receipt.Payment.Method)}
		_ = s.Metrics.RecordCount(ctx, awspkg.MetricCartCheckouts, dims)
		_ = s.Metrics.RecordCount(ctx, awspkg.MetricOrdersCreated, dims)
	}

	log.Info("order placed",
		zap.String("order_id", conf.OrderID),
		zap.String("owner", owner.Key()),
		zap.String("total", conf.Total.String()),
		zap.String("payment_method", string(conf.PaymentMethod)),
	)
	return conf, nil
}

func (s *checkoutService) publishOrderPlaced(ctx context.Context, owner models.Owner, receipt checkout.Receipt, conf *models.OrderConfirmation) {
	log := logger.For(ctx, s.Logger)
	if s.Publisher == nil || s.OrderTopic == "" {
		log.Warn("order topic not configured, skipping order.placed event", zap.String("order_id", conf.OrderID))
		return
	}

	event := models.OrderPlacedEvent{
		OrderID:       conf.OrderID,
		OwnerID:       owner.ID,
		Guest:         owner.Guest,
		Lines:         receipt.Lines,
		Quote:         receipt.Quote,
		Address:       receipt.Address,
		PaymentMethod: receipt.Payment.Method,
		DiscountCode:  receipt.Payment.DiscountCode,
		PlacedAt:      conf.PlacedAt,
	}
	if err := s.Publisher.Publish(ctx, s.OrderTopic, models.EventOrderPlaced, event); err != nil {
		log.Error("publish order.placed failed", zap.String("order_id", conf.OrderID), zap.Error(err))
	}
}
