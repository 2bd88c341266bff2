package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/checkout"
	"github.com/corexathletics/storefront/pkg/money"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/corexathletics/storefront/services/storefront-service/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	carts     *memCartRepo
	sessions  *memSessionRepo
	publisher *mockPublisher
	metrics   *mockMetrics
	cart      services.CartService
	svc       services.CheckoutService
}

func newCheckoutFixture(topic string) *checkoutFixture {
	f := &checkoutFixture{
		carts:     newMemCartRepo(),
		sessions:  newMemSessionRepo(),
		publisher: &mockPublisher{},
		metrics:   newMockMetrics(),
	}
	f.cart = services.NewCartService(f.carts, catalog.Default(), nil, zap.NewNop())
	f.svc = services.NewCheckoutService(services.CheckoutDeps{
		Sessions:   f.sessions,
		Cart:       f.cart,
		Pricing:    checkout.DefaultPricing(),
		Discounts:  checkout.DefaultDiscounts(),
		Publisher:  f.publisher,
		OrderTopic: topic,
		Metrics:    f.metrics,
		Logger:     zap.NewNop(),
	})
	return f
}

func validAddress() checkout.Address {
	return checkout.Address{
		FullName:    "Asha Rao",
		PhoneNumber: "9876543210",
		Street:      "12 MG Road",
		City:        "Pune",
		Region:      "Maharashtra",
		PostalCode:  "411001",
	}
}

func TestStartRejectsEmptyCart(t *testing.T) {
	f := newCheckoutFixture("")
	_, err := f.svc.Start(context.Background(), guest)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err))
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestGetWithoutSessionIsNotFound(t *testing.T) {
	f := newCheckoutFixture("")
	_, err := f.svc.Get(context.Background(), guest)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := newCheckoutFixture("arn:aws:sns:ap-south-1:000000000000:orders")
	ctx := context.Background()
	tee := key("xt-001", catalog.SizeM, catalog.ColorBlack)
	shorts := key("cs-002", catalog.SizeM, catalog.ColorNavy)

	_, err := f.cart.AddItem(ctx, guest, tee, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, guest, shorts, 1)
	require.NoError(t, err)

	view, err := f.svc.Start(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Step)
	assert.Equal(t, money.FromCents(12800), view.Quote.Subtotal)

	view, err = f.svc.SetSelected(ctx, guest, shorts, false)
	require.NoError(t, err)
	assert.Equal(t, money.FromCents(9000), view.Quote.Subtotal)

	view, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, "address", view.StepName)

	_, err = f.svc.UpdateAddress(ctx, guest, validAddress())
	require.NoError(t, err)
	view, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, "payment", view.StepName)

	view, err = f.svc.SelectPaymentMethod(ctx, guest, "upi")
	require.NoError(t, err)
	assert.Equal(t, money.FromCents(1000), view.Quote.Shipping)
	assert.Equal(t, money.FromCents(720), view.Quote.Tax)
	assert.Equal(t, money.FromCents(10720), view.Quote.Total)

	conf, err := f.svc.PlaceOrder(ctx, guest)
	require.NoError(t, err)
	assert.NotEmpty(t, conf.OrderID)
	assert.Equal(t, money.FromCents(10720), conf.Total)
	assert.Equal(t, checkout.PaymentUPI, conf.PaymentMethod)
	assert.Equal(t, "/", conf.Redirect)

	cartView, err := f.cart.GetCart(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, cartView.Lines)
	_, err = f.svc.Get(ctx, guest)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, models.EventOrderPlaced, f.publisher.events[0].eventType)
	event := f.publisher.events[0].payload.(models.OrderPlacedEvent)
	assert.True(t, event.Guest)
	require.Len(t, event.Lines, 1)
	assert.Equal(t, "xt-001", event.Lines[0].ProductID)
	assert.Equal(t, 1, f.metrics.counts[awspkg.MetricOrdersCreated])
	assert.Equal(t, 1, f.metrics.counts[awspkg.MetricCartCheckouts])
}

func TestRefusedTransitionIsNotPersisted(t *testing.T) {
	f := newCheckoutFixture("")
	ctx := context.Background()
	tee := key("xt-001", catalog.SizeM, catalog.ColorBlack)

	_, err := f.cart.AddItem(ctx, guest, tee, 1)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.UpdateAddress(ctx, guest, validAddress())
	require.NoError(t, err)
	_, err = f.svc.SetSelected(ctx, guest, tee, false)
	require.NoError(t, err)
	savesBefore := f.sessions.saves

	_, err = f.svc.Next(ctx, guest)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err))
	assert.ErrorIs(t, err, checkout.ErrNoItemsSelected)
	assert.Equal(t, savesBefore, f.sessions.saves)

	view, err := f.svc.Get(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Step)
	assert.Equal(t, validAddress(), view.Address)
}

func TestAddressGateReportsMissingFields(t *testing.T) {
	f := newCheckoutFixture("")
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, guest, key("xt-006", catalog.SizeS, catalog.ColorGreen), 1)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)

	addr := validAddress()
	addr.PostalCode = " "
	_, err = f.svc.UpdateAddress(ctx, guest, addr)
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, guest)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Equal(t, map[string]any{"missing_fields": []string{"pincode"}}, appErr.Details)
}

func TestDiscountThroughService(t *testing.T) {
	f := newCheckoutFixture("")
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, guest, key("xh-005", catalog.SizeL, catalog.ColorGray), 2)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)

	view, err := f.svc.ApplyDiscount(ctx, guest, "welcome15")
	require.NoError(t, err)
	// 15% of 150.00
	assert.Equal(t, money.FromCents(2250), view.Quote.Discount)
	assert.Equal(t, money.Zero, view.Quote.Shipping)

	_, err = f.svc.ApplyDiscount(ctx, guest, "NOPE")
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err))

	view, err = f.svc.Get(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME15", view.Payment.DiscountCode)

	view, err = f.svc.RemoveDiscount(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, money.Zero, view.Quote.Discount)
}

func TestPlaceOrderBeforePaymentStepConflicts(t *testing.T) {
	f := newCheckoutFixture("")
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, guest, key("xb-003", catalog.SizeS, catalog.ColorPink), 1)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(ctx, guest)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))

	cartView, err := f.cart.GetCart(ctx, guest)
	require.NoError(t, err)
	assert.Len(t, cartView.Lines, 1)
}

func TestPlaceOrderWithoutTopicSkipsPublish(t *testing.T) {
	f := newCheckoutFixture("")
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, guest, key("xj-004", catalog.SizeL, catalog.ColorOlive), 1)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.UpdateAddress(ctx, guest, validAddress())
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)

	_, err = f.svc.SelectPaymentMethod(ctx, guest, "cheque")
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	conf, err := f.svc.PlaceOrder(ctx, guest)
	require.NoError(t, err)
	// 65.00 + 10.00 + 5.20
	assert.Equal(t, money.FromCents(8020), conf.Total)
	assert.Empty(t, f.publisher.events)
}

func TestPlaceOrderKeepsCartWhenSessionDeleteFails(t *testing.T) {
	f := newCheckoutFixture("arn:aws:sns:ap-south-1:000000000000:orders")
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, guest, key("xj-004", catalog.SizeL, catalog.ColorOlive), 1)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.UpdateAddress(ctx, guest, validAddress())
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, guest)
	require.NoError(t, err)

	f.sessions.deleteErr = errors.New("redis: connection refused")
	conf, err := f.svc.PlaceOrder(ctx, guest)
	require.Error(t, err)
	assert.Nil(t, conf)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))

	cartView, err := f.cart.GetCart(ctx, guest)
	require.NoError(t, err)
	assert.Len(t, cartView.Lines, 1)
	assert.Empty(t, f.publisher.events)
	assert.Zero(t, f.metrics.counts[awspkg.MetricOrdersCreated])

	f.sessions.deleteErr = nil
	_, err = f.svc.PlaceOrder(ctx, guest)
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(ctx, guest)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Len(t, f.publisher.events, 1)
}
