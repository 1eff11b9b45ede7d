package repository

import (
	"context"
	"errors"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
)

// Sentinel errors mapped to HTTP status codes at the delivery layer.
var (
	// ErrNotFound covers both genuinely missing documents and ownership
	// mismatches, which deliberately surface as not-found.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock rejects an order line item asking for more
	// than the product has left.
	ErrInsufficientStock = errors.New("not enough quantity")

	// ErrEmailTaken rejects registration with an already used email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository handles persistence for Users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByRole returns every user holding the given role; this is the
	// audience query behind notification fan-out.
	FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
}

// ProductFilter narrows a product listing query. Zero values mean "no
// constraint".
type ProductFilter struct {
	Category  string
	FarmerID  string
	Quality   entity.Quality
	Available *bool
}

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	// Find returns products newest first with the farmer reference populated.
	Find(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	// Update writes the mutable fields of a product owned by ownerID;
	// ErrNotFound when the product is missing or owned by someone else.
	Update(ctx context.Context, p *entity.Product, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	Seed(ctx context.Context, products []entity.Product) error
}

// DemandFilter narrows a demand listing query.
type DemandFilter struct {
	Category   string
	RetailerID string
}

// DemandRepository handles persistence for Demands.
type DemandRepository interface {
	Create(ctx context.Context, d *entity.Demand) error
	FindByID(ctx context.Context, id string) (*entity.Demand, error)
	// Find returns demands newest first with the retailer reference populated.
	Find(ctx context.Context, f DemandFilter) ([]entity.Demand, error)
	Update(ctx context.Context, d *entity.Demand, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// TransportFilter narrows a transport listing query. Departure and
// Destination match as case-insensitive substrings.
type TransportFilter struct {
	Departure     string
	Destination   string
	TransporterID string
}

// TransportRepository handles persistence for Transport listings.
type TransportRepository interface {
	Create(ctx context.Context, t *entity.Transport) error
	FindByID(ctx context.Context, id string) (*entity.Transport, error)
	// Find returns listings soonest departure first with the transporter
	// reference populated.
	Find(ctx context.Context, f TransportFilter) ([]entity.Transport, error)
	Update(ctx context.Context, t *entity.Transport, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// OrderRepository handles persistence for Orders.
type OrderRepository interface {
	// Place atomically checks stock for every line item, decrements it,
	// freezes each item's name and price from the product row, computes
	// the total, and inserts the order. Any line item failing leaves no
	// partial writes behind. Returns ErrNotFound for a missing product
	// and ErrInsufficientStock for an over-ask.
	Place(ctx context.Context, o *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	// FindForUser returns orders where the user is buyer or seller,
	// newest first.
	FindForUser(ctx context.Context, userID string, limit int) ([]entity.Order, error)
}

// NotificationRepository handles persistence for Notifications.
type NotificationRepository interface {
	// InsertBatch writes one notification per element; used by fan-out.
	InsertBatch(ctx context.Context, ns []entity.Notification) error
	// FindForRecipient returns the recipient's notifications newest
	// first; onlyUnread narrows to unread ones.
	FindForRecipient(ctx context.Context, recipientID string, onlyUnread bool, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	// MarkAllRead flips every unread notification of the recipient and
	// returns how many were modified.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id, recipientID string) error
}

// AnalyticsRepository computes the role-scoped dashboard aggregates.
type AnalyticsRepository interface {
	Summarize(ctx context.Context, u *entity.User) (*entity.Analytics, error)
}
