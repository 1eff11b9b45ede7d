package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/messaging"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// OrderService orchestrates order placement and lookup.
type OrderService struct {
	orders    repository.OrderRepository
	publisher messaging.Publisher
}

func NewOrderService(orders repository.OrderRepository, publisher messaging.Publisher) *OrderService {
	return &OrderService{orders: orders, publisher: publisher}
}

// PlaceOrderInput is what the checkout form submits. Line item prices are
// ignored; the placement freezes prices from the product rows.
type PlaceOrderInput struct {
	SellerID        string             `json:"seller_id"`
	TransportID     string             `json:"transport_id"`
	Items           []entity.OrderItem `json:"items"`
	PickupAddress   string             `json:"pickup_address"`
	DeliveryAddress string             `json:"delivery_address"`
}

// PlaceOrder validates the request and runs the transactional placement:
// stock checks, decrements, and the order insert either all land or none
// do. The seller is notified after commit, best effort.
func (s *OrderService) PlaceOrder(ctx context.Context, caller *session.Session, in PlaceOrderInput) (*entity.Order, error) {
	if err := requireRole(caller, entity.RoleRetailer); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, entity.Invalidf("order must have at least one item")
	}
	if in.SellerID == "" {
		return nil, entity.Invalidf("seller is required")
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, entity.Invalidf("line item is missing a product")
		}
		if item.Quantity <= 0 {
			return nil, entity.Invalidf("quantity for product %s must be positive", item.ProductID)
		}
	}

	order := &entity.Order{
		ID:              uuid.NewString(),
		BuyerID:         caller.UserID,
		SellerID:        in.SellerID,
		TransportID:     in.TransportID,
		Items:           in.Items,
		PickupAddress:   in.PickupAddress,
		DeliveryAddress: in.DeliveryAddress,
		Status:          entity.OrderPending,
		PaymentStatus:   entity.PaymentPending,
		CreatedAt:       time.Now(),
	}

	if err := s.orders.Place(ctx, order); err != nil {
		return nil, err
	}
	slog.Info("Order placed", "order_id", order.ID, "buyer_id", order.BuyerID, "total", order.TotalAmount)

	event := entity.OrderPlaced{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		PlacedAt:    order.CreatedAt,
	}
	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrderPlaced, order.ID, event); err != nil {
		slog.Error("Failed to publish event, continuing", "topic", messaging.TopicOrderPlaced, "err", err)
	}
	return order, nil
}

// ListOrders returns the caller's orders, on whichever side of the deal
// they sit.
func (s *OrderService) ListOrders(ctx context.Context, caller *session.Session, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.orders.FindForUser(ctx, caller.UserID, limit)
}

// GetOrder returns one order; callers who are neither buyer nor seller get
// not-found rather than a hint that the order exists.
func (s *OrderService) GetOrder(ctx context.Context, caller *session.Session, id string) (*entity.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != caller.UserID && o.SellerID != caller.UserID {
		return nil, repository.ErrNotFound
	}
	return o, nil
}
