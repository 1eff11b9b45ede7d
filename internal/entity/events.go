package entity

import "time"

// Event is a domain event carried over the message broker.
type Event interface {
	EventType() string
}

// DemandPosted is emitted when a retailer posts a new demand. Consumers
// fan it out as notifications to every farmer.
type DemandPosted struct {
	DemandID   string    `json:"demand_id"`
	RetailerID string    `json:"retailer_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	PostedAt   time.Time `json:"posted_at"`
}

func (e DemandPosted) EventType() string { return "DemandPosted" }

// ProductListed is emitted when a farmer lists a new product. Consumers
// fan it out as notifications to every retailer; Location lets the message
// mention where the produce is.
type ProductListed struct {
	ProductID string    `json:"product_id"`
	FarmerID  string    `json:"farmer_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ListedAt  time.Time `json:"listed_at"`
}

func (e ProductListed) EventType() string { return "ProductListed" }

// OrderPlaced is emitted after an order commits. Consumers notify the
// selling farmer.
type OrderPlaced struct {
	OrderID     string    `json:"order_id"`
	BuyerID     string    `json:"buyer_id"`
	SellerID    string    `json:"seller_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	PlacedAt    time.Time `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }
