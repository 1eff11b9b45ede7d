package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// NotificationService owns both halves of the notification pipeline: the
// fan-out consumers fed by the broker, and the recipient-facing read flows.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

// actorName resolves the display name for the user who triggered an event.
// A failed lookup falls back to a role placeholder instead of erroring;
// a broken name must not abort a fan-out.
func (s *NotificationService) actorName(ctx context.Context, id string, role entity.Role) string {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "A " + string(role)
	}
	return u.Name
}

// fanOut inserts one notification per audience member. Delivery is at
// least once: rerunning the same event duplicates the batch, which is the
// accepted cost of the best-effort model.
func (s *NotificationService) fanOut(ctx context.Context, audience entity.Role, n entity.Notification) error {
	recipients, err := s.users.FindByRole(ctx, audience)
	if err != nil {
		return fmt.Errorf("failed to resolve %s audience: %w", audience, err)
	}
	if len(recipients) == 0 {
		return nil
	}

	batch := make([]entity.Notification, 0, len(recipients))
	now := time.Now()
	for _, r := range recipients {
		out := n
		out.ID = uuid.NewString()
		out.RecipientID = r.ID
		out.IsRead = false
		out.CreatedAt = now
		batch = append(batch, out)
	}

	if err := s.notifications.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to insert %d notifications: %w", len(batch), err)
	}

	slog.Info("Notifications fanned out", "type", n.Type, "recipients", len(batch))
	return nil
}

// HandleDemandPosted notifies every farmer about a retailer's new demand.
func (s *NotificationService) HandleDemandPosted(ctx context.Context, event *entity.DemandPosted) error {
	name := s.actorName(ctx, event.RetailerID, entity.RoleRetailer)
	return s.fanOut(ctx, entity.RoleFarmer, entity.Notification{
		SenderID:  event.RetailerID,
		Type:      entity.NotificationDemand,
		Title:     "New demand: " + event.Title,
		Message:   fmt.Sprintf("%s is looking for %s.", name, event.Title),
		RelatedID: event.DemandID,
	})
}

// HandleProductListed notifies every retailer about a farmer's new listing.
func (s *NotificationService) HandleProductListed(ctx context.Context, event *entity.ProductListed) error {
	name := s.actorName(ctx, event.FarmerID, entity.RoleFarmer)
	msg := fmt.Sprintf("%s listed %s.", name, event.Name)
	if event.Location != "" {
		msg = fmt.Sprintf("%s listed %s near %s.", name, event.Name, event.Location)
	}
	return s.fanOut(ctx, entity.RoleRetailer, entity.Notification{
		SenderID:  event.FarmerID,
		Type:      entity.NotificationProduct,
		Title:     "New produce: " + event.Name,
		Message:   msg,
		RelatedID: event.ProductID,
	})
}

// HandleOrderPlaced notifies the selling farmer about a new order.
func (s *NotificationService) HandleOrderPlaced(ctx context.Context, event *entity.OrderPlaced) error {
	name := s.actorName(ctx, event.BuyerID, entity.RoleRetailer)
	n := entity.Notification{
		ID:          uuid.NewString(),
		RecipientID: event.SellerID,
		SenderID:    event.BuyerID,
		Type:        entity.NotificationOrder,
		Title:       "New order received",
		Message:     fmt.Sprintf("%s placed an order of %d items for %.2f.", name, event.ItemCount, event.TotalAmount),
		RelatedID:   event.OrderID,
		CreatedAt:   time.Now(),
	}
	if err := s.notifications.InsertBatch(ctx, []entity.Notification{n}); err != nil {
		return fmt.Errorf("failed to insert order notification: %w", err)
	}
	return nil
}

// NotificationList is a page of notifications with the recipient's total
// unread count alongside.
type NotificationList struct {
	Notifications []entity.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// List returns the caller's own notifications, newest first.
func (s *NotificationService) List(ctx context.Context, caller *session.Session, onlyUnread bool, limit int) (*NotificationList, error) {
	if limit <= 0 {
		limit = 20
	}
	ns, err := s.notifications.FindForRecipient(ctx, caller.UserID, onlyUnread, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: ns, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, caller *session.Session, id string) error {
	return s.notifications.MarkRead(ctx, id, caller.UserID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, caller *session.Session) (int64, error) {
	return s.notifications.MarkAllRead(ctx, caller.UserID)
}

func (s *NotificationService) Delete(ctx context.Context, caller *session.Session, id string) error {
	return s.notifications.Delete(ctx, id, caller.UserID)
}
