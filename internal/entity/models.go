package entity

import (
	"strings"
	"time"
)

// Role identifies which side of the marketplace a user belongs to.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleRetailer    Role = "retailer"
	RoleTransporter Role = "transporter"
	RoleAdmin       Role = "admin"
)

// Valid reports whether the role is one of the known marketplace roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleRetailer, RoleTransporter, RoleAdmin:
		return true
	}
	return false
}

// User is a registered participant. The role is fixed at registration and
// never changes afterwards.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return invalidf("name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return invalidf("invalid email %q", u.Email)
	}
	if !u.Role.Valid() {
		return invalidf("invalid role %q", u.Role)
	}
	return nil
}

// Quality grades for produce listings.
type Quality string

const (
	QualityPremium  Quality = "premium"
	QualityStandard Quality = "standard"
	QualityEconomy  Quality = "economy"
)

func (q Quality) Valid() bool {
	switch q {
	case QualityPremium, QualityStandard, QualityEconomy:
		return true
	}
	return false
}

// Product is a produce listing owned by a farmer. Quantity is the remaining
// stock; IsAvailable tracks quantity > 0 and is maintained by the order flow.
type Product struct {
	ID          string    `json:"id"`
	FarmerID    string    `json:"farmer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quality     Quality   `json:"quality"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Quantity    int       `json:"quantity"`
	IsAvailable bool      `json:"is_available"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated on reads, not stored on the product row.
	Farmer *UserRef `json:"farmer,omitempty"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("name is required")
	}
	if p.Price < 0 {
		return invalidf("price must not be negative")
	}
	if p.Quantity < 0 {
		return invalidf("quantity must not be negative")
	}
	if !p.Quality.Valid() {
		return invalidf("invalid quality %q", p.Quality)
	}
	return nil
}

// UserRef is the subset of a user exposed when populating owner references.
type UserRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// DemandStatus values. Only "open" is ever written by the current flows;
// the remaining values are reserved for a fulfilment workflow that does
// not exist yet.
type DemandStatus string

const (
	DemandOpen      DemandStatus = "open"
	DemandFulfilled DemandStatus = "fulfilled"
	DemandExpired   DemandStatus = "expired"
	DemandCancelled DemandStatus = "cancelled"
)

// PriceRange bounds what a retailer is willing to pay per unit.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Demand is a request for produce posted by a retailer.
type Demand struct {
	ID         string       `json:"id"`
	RetailerID string       `json:"retailer_id"`
	Title      string       `json:"title"`
	Category   string       `json:"category"`
	Quantity   int          `json:"quantity"`
	Unit       string       `json:"unit"`
	PriceRange PriceRange   `json:"price_range"`
	RequiredBy time.Time    `json:"required_by"`
	Location   string       `json:"location"`
	Status     DemandStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`

	Retailer *UserRef `json:"retailer,omitempty"`
}

func (d *Demand) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalidf("title is required")
	}
	if d.Quantity <= 0 {
		return invalidf("quantity must be positive")
	}
	if d.PriceRange.Min < 0 || d.PriceRange.Max < d.PriceRange.Min {
		return invalidf("invalid price range [%v, %v]", d.PriceRange.Min, d.PriceRange.Max)
	}
	return nil
}

// OrderStatus values. The create path only ever writes "pending"; the rest
// of the lifecycle exists as enum values awaiting the fulfilment flows.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// OrderItem is a line item within an order. Price is the product's price at
// the time the order was placed, frozen thereafter.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order records a retailer buying from one farmer, optionally hauled by a
// transporter. TotalAmount is computed server side at creation and frozen.
type Order struct {
	ID              string        `json:"id"`
	BuyerID         string        `json:"buyer_id"`
	SellerID        string        `json:"seller_id"`
	TransportID     string        `json:"transport_id,omitempty"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	PickupAddress   string        `json:"pickup_address"`
	DeliveryAddress string        `json:"delivery_address"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TransportStatus values for a capacity listing.
type TransportStatus string

const (
	TransportAvailable TransportStatus = "available"
	TransportBooked    TransportStatus = "booked"
	TransportInTransit TransportStatus = "in-transit"
	TransportCompleted TransportStatus = "completed"
	TransportCancelled TransportStatus = "cancelled"
)

// Capacity of a transport listing.
type Capacity struct {
	WeightKg int `json:"weight_kg"`
	VolumeM3 int `json:"volume_m3"`
}

// Transport is a haulage capacity listing owned by a transporter.
type Transport struct {
	ID            string          `json:"id"`
	TransporterID string          `json:"transporter_id"`
	VehicleType   string          `json:"vehicle_type"`
	Capacity      Capacity        `json:"capacity"`
	Departure     string          `json:"departure"`
	Destination   string          `json:"destination"`
	DepartureAt   time.Time       `json:"departure_at"`
	PricePerKm    float64         `json:"price_per_km"`
	PricePerKg    float64         `json:"price_per_kg"`
	Status        TransportStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`

	Transporter *UserRef `json:"transporter,omitempty"`
}

func (t *Transport) Validate() error {
	if strings.TrimSpace(t.Departure) == "" || strings.TrimSpace(t.Destination) == "" {
		return invalidf("departure and destination are required")
	}
	if t.PricePerKm < 0 || t.PricePerKg < 0 {
		return invalidf("prices must not be negative")
	}
	return nil
}

// NotificationType categorises what triggered a notification.
type NotificationType string

const (
	NotificationDemand    NotificationType = "demand"
	NotificationProduct   NotificationType = "product"
	NotificationTransport NotificationType = "transport"
	NotificationOrder     NotificationType = "order"
	NotificationSystem    NotificationType = "system"
)

// Notification is delivered to exactly one recipient and mutated only by
// that recipient.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	SenderID    string           `json:"sender_id,omitempty"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedID   string           `json:"related_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
