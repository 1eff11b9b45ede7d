package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/messaging"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

func retailerSession(id string) *session.Session {
	return &session.Session{Token: "t-" + id, UserID: id, Role: entity.RoleRetailer}
}

func seedProduct(t *testing.T, products *fakeProductRepo, id string, price float64, quantity int) {
	t.Helper()
	err := products.Create(context.Background(), &entity.Product{
		ID:          id,
		FarmerID:    "farmer-1",
		Name:        "Onions " + id,
		Category:    "vegetables",
		Quality:     entity.QualityStandard,
		Price:       price,
		Unit:        "kg",
		Quantity:    quantity,
		IsAvailable: quantity > 0,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	pub := &fakePublisher{}
	svc := NewOrderService(orders, pub)

	seedProduct(t, products, "p1", 20, 10)

	order, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
	assert.Equal(t, float64(80), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, float64(20), order.Items[0].Price)

	p, err := products.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Quantity)
	assert.True(t, p.IsAvailable)

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, messaging.TopicOrderPlaced, events[0].Topic)
	placed, ok := events[0].Event.(entity.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, order.ID, placed.OrderID)
	assert.Equal(t, "farmer-1", placed.SellerID)
}

func TestPlaceOrderBuysOutStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	svc := NewOrderService(orders, &fakePublisher{})

	seedProduct(t, products, "p1", 10, 5)

	_, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-b"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)

	p, err := products.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.False(t, p.IsAvailable, "availability flag must flip when stock hits zero")

	// A later order for the same product must be rejected.
	_, err = svc.PlaceOrder(context.Background(), retailerSession("retailer-c"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, repository.ErrInsufficientStock)
}

func TestPlaceOrderFailingItemLeavesEarlierItemsUntouched(t *testing.T) {
	// Placement is all-or-nothing: when the second line item over-asks,
	// the first item's stock stays where it was.
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	svc := NewOrderService(orders, &fakePublisher{})

	seedProduct(t, products, "p1", 20, 10)
	seedProduct(t, products, "p2", 30, 2)

	_, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items: []entity.OrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 5},
		},
	})
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	p1, err := products.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Quantity, "first item's stock must not be decremented by a failed order")

	p2, err := products.FindByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Quantity)
}

func TestPlaceOrderMissingProduct(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewOrderService(newFakeOrderRepo(products), &fakePublisher{})

	_, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "ghost", Quantity: 1}},
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaceOrderValidation(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewOrderService(newFakeOrderRepo(products), &fakePublisher{})
	seedProduct(t, products, "p1", 20, 10)

	tests := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"no items", PlaceOrderInput{SellerID: "farmer-1"}},
		{"no seller", PlaceOrderInput{Items: []entity.OrderItem{{ProductID: "p1", Quantity: 1}}}},
		{"zero quantity", PlaceOrderInput{SellerID: "farmer-1", Items: []entity.OrderItem{{ProductID: "p1", Quantity: 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), tt.in)
			var invalid *entity.ValidationError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestPlaceOrderRetailerOnly(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(newFakeProductRepo()), &fakePublisher{})

	farmer := &session.Session{UserID: "farmer-1", Role: entity.RoleFarmer}
	_, err := svc.PlaceOrder(context.Background(), farmer, PlaceOrderInput{
		SellerID: "farmer-2",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	})

	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "retailer only", forbidden.Error())
}

func TestPlaceOrderPublishFailureDoesNotFailOrder(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	pub := &fakePublisher{failWith: errors.New("broker down")}
	svc := NewOrderService(orders, pub)

	seedProduct(t, products, "p1", 20, 10)

	order, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err, "notification delivery must never fail the order")
	assert.NotEmpty(t, order.ID)
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	svc := NewOrderService(orders, &fakePublisher{})

	seedProduct(t, products, "p1", 20, 10)

	order, err := svc.PlaceOrder(context.Background(), retailerSession("retailer-1"), PlaceOrderInput{
		SellerID: "farmer-1",
		Items:    []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// Buyer and seller both see it.
	_, err = svc.GetOrder(context.Background(), retailerSession("retailer-1"), order.ID)
	require.NoError(t, err)
	_, err = svc.GetOrder(context.Background(), &session.Session{UserID: "farmer-1", Role: entity.RoleFarmer}, order.ID)
	require.NoError(t, err)

	// A stranger gets not-found, not forbidden.
	_, err = svc.GetOrder(context.Background(), retailerSession("retailer-2"), order.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
